package auth

import (
	"time"

	"crediasesor-backoffice/internal/domain/permission"
	"crediasesor-backoffice/internal/domain/user"
)

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ProfileInput struct {
	FirstNames string `json:"nombres" validate:"required"`
	LastNames  string `json:"apellidos" validate:"required"`
	Email      string `json:"correo" validate:"required,email"`
	Phone      string `json:"telefono" validate:"omitempty,phone"`
	Branch     string `json:"sucursal"`
}

type ThemeInput struct {
	Theme user.Theme `json:"theme" validate:"required,oneof=light dark system"`
}

// SessionUser is the non-sensitive part of the user sent after login.
type SessionUser struct {
	ID          uint64                                           `json:"id"`
	Username    string                                           `json:"username"`
	Role        permission.Role                                  `json:"role"`
	Theme       user.Theme                                       `json:"theme"`
	Permissions map[permission.Module]map[permission.Action]bool `json:"permisos"`
}

type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         SessionUser `json:"user"`
}

type Profile struct {
	ID          uint64                                           `json:"id"`
	Username    string                                           `json:"username"`
	Email       *string                                          `json:"email"`
	Role        permission.Role                                  `json:"rol"`
	Permissions map[permission.Module]map[permission.Action]bool `json:"permisos"`
	FirstNames  string                                           `json:"nombres"`
	LastNames   string                                           `json:"apellidos"`
	Phone       string                                           `json:"telefono"`
	Branch      string                                           `json:"sucursal"`
	Theme       user.Theme                                       `json:"theme"`
	CreatedAt   time.Time                                        `json:"createdAt"`
}

func sessionUser(u *user.User) SessionUser {
	return SessionUser{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Theme:       u.Theme,
		Permissions: u.Permissions().Matrix(),
	}
}

func profileOf(u *user.User) *Profile {
	return &Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions().Matrix(),
		FirstNames:  u.FirstNames,
		LastNames:   u.LastNames,
		Phone:       u.Phone,
		Branch:      u.Branch,
		Theme:       u.Theme,
		CreatedAt:   u.CreatedAt,
	}
}
