package usermock

import (
	"context"
	"errors"

	"crediasesor-backoffice/internal/domain/permission"
	domain "crediasesor-backoffice/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var ErrUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Nil writes are no-ops; nil reads return ErrUnimplemented.
type Repo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	SaveFn               func(ctx context.Context, u *domain.User) error
	DeleteFn             func(ctx context.Context, id uint64) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUsernameFn      func(ctx context.Context, username string) (*domain.User, error)
	EmailInUseFn         func(ctx context.Context, email string, exceptID uint64) (bool, error)
	ListFn               func(ctx context.Context, f domain.ListFilter) ([]domain.User, int64, error)
	ListExceptFn         func(ctx context.Context, id uint64) ([]domain.User, error)
	StatsFn              func(ctx context.Context) (domain.Stats, error)
	SetRefreshTokenFn    func(ctx context.Context, id uint64, token *string) error
	ReplacePermissionsFn func(ctx context.Context, id uint64, set permission.Set) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) EmailInUse(ctx context.Context, email string, exceptID uint64) (bool, error) {
	if m.EmailInUseFn != nil {
		return m.EmailInUseFn(ctx, email, exceptID)
	}
	return false, nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, ErrUnimplemented
}

func (m *Repo) ListExcept(ctx context.Context, id uint64) ([]domain.User, error) {
	if m.ListExceptFn != nil {
		return m.ListExceptFn(ctx, id)
	}
	return nil, ErrUnimplemented
}

func (m *Repo) Stats(ctx context.Context) (domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return domain.Stats{}, ErrUnimplemented
}

func (m *Repo) SetRefreshToken(ctx context.Context, id uint64, token *string) error {
	if m.SetRefreshTokenFn != nil {
		return m.SetRefreshTokenFn(ctx, id, token)
	}
	return nil
}

func (m *Repo) ReplacePermissions(ctx context.Context, id uint64, set permission.Set) error {
	if m.ReplacePermissionsFn != nil {
		return m.ReplacePermissionsFn(ctx, id, set)
	}
	return nil
}
