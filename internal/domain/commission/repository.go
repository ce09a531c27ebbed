package commission

import (
	"context"

	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/entity"
)

type Filter struct {
	AdvisorID *uint64
	Period    string
	Status    Status
}

type Repository interface {
	// QualifyingAdvisors lists advisors with at least one commissionable
	// credit requested inside w, ordered by name.
	QualifyingAdvisors(ctx context.Context, w Window) ([]advisor.Advisor, error)
	// CreditLines returns commissionable credits financed through lenders of
	// type t, optionally restricted to advisorIDs (nil means all).
	CreditLines(ctx context.Context, t entity.Type, w Window, advisorIDs []uint64) ([]CreditLine, error)
	// AdvisorsWithCommissions lists the distinct advisors holding rows for period.
	AdvisorsWithCommissions(ctx context.Context, period string) ([]advisor.Advisor, error)
	ExistsForAdvisor(ctx context.Context, period string, advisorID uint64) (bool, error)

	// CreateIfAbsent inserts c unless the unique key already exists.
	CreateIfAbsent(ctx context.Context, c *Commission) (bool, error)
	DeleteByPeriod(ctx context.Context, period string, advisorID *uint64) (int64, error)

	GetByID(ctx context.Context, id uint64) (*Commission, error)
	List(ctx context.Context, f Filter) ([]Commission, error)
	Save(ctx context.Context, c *Commission) error
	Delete(ctx context.Context, id uint64) error
	Summary(ctx context.Context, limit int) ([]PeriodSummary, error)
}
