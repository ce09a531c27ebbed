package user

import (
	"errors"
	"time"

	"crediasesor-backoffice/internal/domain/permission"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidTheme  = errors.New("theme must be light, dark or system")
	ErrSelfDelete    = errors.New("users cannot delete their own account")
)

type Status string

const (
	StatusActive    Status = "activo"
	StatusInactive  Status = "inactivo"
	StatusSuspended Status = "suspendido"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark || t == ThemeSystem }

// Table: Users. Capabilities live in user_permissions.
type User struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string          `gorm:"column:username;size:64;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash string          `gorm:"column:password;size:255;not null" json:"-"`
	Role         permission.Role `gorm:"column:role;size:16;not null;default:'user'" json:"role"`
	FirstNames   string          `gorm:"column:nombres;size:120" json:"nombres"`
	LastNames    string          `gorm:"column:apellidos;size:120" json:"apellidos"`
	Email        *string         `gorm:"column:correo;size:160" json:"correo"`
	Phone        string          `gorm:"column:telefono;size:32" json:"telefono"`
	Branch       string          `gorm:"column:sucursal;size:80" json:"sucursal"`
	Theme        Theme           `gorm:"column:theme;size:16;not null;default:'system'" json:"theme"`
	Status       Status          `gorm:"column:estado;size:16;not null;default:'activo'" json:"estado"`
	RefreshToken *string         `gorm:"column:refreshToken;type:text" json:"-"`
	CreatedAt    time.Time       `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`

	Grants []permission.Grant `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "Users" }

// CanSignIn is false for inactive and suspended accounts.
func (u *User) CanSignIn() bool { return u.Status == StatusActive }

func (u *User) Permissions() permission.Set { return permission.FromGrants(u.Grants) }

func (u *User) IsAdmin() bool {
	return u.Role == permission.RoleAdmin || u.Role == permission.RoleSuperAdmin
}

// RoleGroup filters listings: "administrador" (admin + superadmin) or "asesor" (user).
type RoleGroup string

const (
	RoleGroupAll     RoleGroup = "todos"
	RoleGroupAdmins  RoleGroup = "administrador"
	RoleGroupAdvisor RoleGroup = "asesor"
)

type ListFilter struct {
	Search string
	Role   RoleGroup
	Status Status
	Limit  int
	Offset int
}

type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"activos"`
	Admins   int64 `json:"administradores"`
	Advisors int64 `json:"asesores"`
	Inactive int64 `json:"inactivos"`
}
