package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crediasesor-backoffice/internal/domain/permission"
	domain "crediasesor-backoffice/internal/domain/user"
	"crediasesor-backoffice/internal/domain/uow"
	"crediasesor-backoffice/internal/usecase/auth"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrProtectedAccount        = errors.New("superadmin accounts cannot be deleted")
	ErrCurrentPasswordRequired = errors.New("current password is required to change it")
	ErrPasswordTooShort        = errors.New("new password must have at least 8 characters")
)

const (
	defaultPageSize = 10
	minPasswordLen  = 8
)

type Usecase struct {
	uow   uow.UnitOfWork
	users domain.Repository
	log   *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, users domain.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, users: users, log: log}
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*Page, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultPageSize
	}
	f := domain.ListFilter{
		Search: strings.TrimSpace(in.Search),
		Role:   in.Role,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	}
	if f.Status == "todos" {
		f.Status = ""
	}
	rows, total, err := u.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(rows))
	for i := range rows {
		views = append(views, viewOf(&rows[i]))
	}
	return &Page{
		Users: views,
		Pagination: Pagination{
			CurrentPage:  in.Page,
			TotalPages:   int((total + int64(in.Limit) - 1) / int64(in.Limit)),
			TotalItems:   total,
			ItemsPerPage: in.Limit,
		},
	}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*View, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := viewOf(usr)
	return &v, nil
}

// Create starts from the role's default capabilities; explicit permisos
// entries are laid on top.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*View, error) {
	username := strings.TrimSpace(in.Username)
	_, err := u.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	var email *string
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		e := strings.ToLower(strings.TrimSpace(*in.Email))
		taken, err := u.users.EmailInUse(ctx, e, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
		email = &e
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = permission.RoleUser
	}
	usr := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstNames:   strings.TrimSpace(in.FirstNames),
		LastNames:    strings.TrimSpace(in.LastNames),
		Email:        email,
		Phone:        in.Phone,
		Branch:       in.Branch,
		Theme:        in.Theme,
		Status:       in.Status,
		Grants:       permission.Apply(permission.DefaultFor(role), in.Permissions).Grants(0),
	}
	if usr.Theme == "" {
		usr.Theme = domain.ThemeSystem
	}
	if usr.Status == "" {
		usr.Status = domain.StatusActive
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	u.log.Info("user created", zap.Uint64("user_id", usr.ID), zap.String("role", string(role)))
	v := viewOf(usr)
	return &v, nil
}

// Update applies the non-nil fields. A role change resets the capabilities to
// the role's defaults before explicit permisos are applied.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*View, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return nil, auth.ErrWrongPassword
		}
		if len(in.NewPassword) < minPasswordLen {
			return nil, ErrPasswordTooShort
		}
		if usr.PasswordHash, err = auth.HashPassword(in.NewPassword); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*in.Email))
		if usr.Email == nil || *usr.Email != e {
			taken, err := u.users.EmailInUse(ctx, e, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrEmailTaken
			}
		}
		usr.Email = &e
	}
	setIf(&usr.FirstNames, in.FirstNames)
	setIf(&usr.LastNames, in.LastNames)
	setIf(&usr.Phone, in.Phone)
	setIf(&usr.Branch, in.Branch)
	setIf(&usr.Theme, in.Theme)
	setIf(&usr.Status, in.Status)

	perms := usr.Permissions()
	replace := false
	if in.Role != nil {
		usr.Role = *in.Role
		perms = permission.DefaultFor(*in.Role)
		replace = true
	}
	if in.Permissions != nil {
		perms = permission.Apply(perms, in.Permissions)
		replace = true
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		if replace {
			return r.Users.ReplacePermissions(ctx, id, perms)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return u.Get(ctx, id)
}

func (u *Usecase) Delete(ctx context.Context, actorID, id uint64) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if usr.Role == permission.RoleSuperAdmin {
		return ErrProtectedAccount
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	u.log.Info("user deleted", zap.Uint64("user_id", id), zap.Uint64("actor_id", actorID))
	return nil
}

func (u *Usecase) Stats(ctx context.Context) (domain.Stats, error) { return u.users.Stats(ctx) }

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
