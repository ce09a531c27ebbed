package user

import (
	"context"

	"crediasesor-backoffice/internal/domain/permission"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint64) error

	// GetByID and GetByUsername load the permission grants too.
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// EmailInUse reports whether another user (not exceptID) owns email.
	EmailInUse(ctx context.Context, email string, exceptID uint64) (bool, error)

	List(ctx context.Context, f ListFilter) ([]User, int64, error)
	// ListExcept returns every user but id, ordered by username.
	ListExcept(ctx context.Context, id uint64) ([]User, error)
	Stats(ctx context.Context) (Stats, error)

	SetRefreshToken(ctx context.Context, id uint64, token *string) error
	// ReplacePermissions swaps the user's grants for set.
	ReplacePermissions(ctx context.Context, id uint64, set permission.Set) error
}
