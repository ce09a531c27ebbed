package uow

import (
	"context"

	"crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/user"
)

// Repos are bound to the same transaction.
type Repos struct {
	Commissions commission.Repository
	Users       user.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
