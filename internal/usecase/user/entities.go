package user

import (
	"time"

	"crediasesor-backoffice/internal/domain/permission"
	domain "crediasesor-backoffice/internal/domain/user"
)

type Matrix = map[permission.Module]map[permission.Action]bool

type ListInput struct {
	Page   int              `query:"page"`
	Limit  int              `query:"limit"`
	Search string           `query:"search"`
	Role   domain.RoleGroup `query:"role"`
	Status domain.Status    `query:"estado"`
}

type CreateInput struct {
	FirstNames  string          `json:"nombres" validate:"required"`
	LastNames   string          `json:"apellidos" validate:"required"`
	Username    string          `json:"username" validate:"required"`
	Email       *string         `json:"correo" validate:"omitempty,email"`
	Password    string          `json:"password" validate:"required"`
	Role        permission.Role `json:"role" validate:"omitempty,oneof=superadmin admin user"`
	Phone       string          `json:"telefono" validate:"omitempty,phone"`
	Branch      string          `json:"sucursal"`
	Theme       domain.Theme    `json:"theme" validate:"omitempty,oneof=light dark system"`
	Status      domain.Status   `json:"estado" validate:"omitempty,oneof=activo inactivo suspendido"`
	Permissions Matrix          `json:"permisos"`
}

// UpdateInput: nil fields are left untouched.
type UpdateInput struct {
	FirstNames      *string          `json:"nombres"`
	LastNames       *string          `json:"apellidos"`
	Email           *string          `json:"correo" validate:"omitempty,email"`
	Role            *permission.Role `json:"role" validate:"omitempty,oneof=superadmin admin user"`
	Phone           *string          `json:"telefono" validate:"omitempty,phone"`
	Branch          *string          `json:"sucursal"`
	Theme           *domain.Theme    `json:"theme" validate:"omitempty,oneof=light dark system"`
	Status          *domain.Status   `json:"estado" validate:"omitempty,oneof=activo inactivo suspendido"`
	Permissions     Matrix           `json:"permisos"`
	CurrentPassword string           `json:"currentPassword"`
	NewPassword     string           `json:"newPassword"`
}

// View is the listing shape: role collapsed to administrador/asesor and the
// theme in Spanish.
type View struct {
	ID          uint64        `json:"id"`
	FirstNames  string        `json:"nombre"`
	LastNames   string        `json:"apellido"`
	Email       string        `json:"email"`
	Username    string        `json:"username"`
	Role        string        `json:"rol"`
	Status      domain.Status `json:"estado"`
	Phone       string        `json:"telefono"`
	Branch      string        `json:"sucursal"`
	Theme       string        `json:"tema"`
	CreatedAt   time.Time     `json:"fechaCreacion"`
	LastSeen    time.Time     `json:"ultimoAcceso"`
	Permissions Matrix        `json:"permisos"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type Page struct {
	Users      []View     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

var themeNames = map[domain.Theme]string{
	domain.ThemeLight:  "claro",
	domain.ThemeDark:   "oscuro",
	domain.ThemeSystem: "sistema",
}

func viewOf(u *domain.User) View {
	v := View{
		ID:          u.ID,
		FirstNames:  u.FirstNames,
		LastNames:   u.LastNames,
		Username:    u.Username,
		Role:        string(domain.RoleGroupAdvisor),
		Status:      u.Status,
		Phone:       u.Phone,
		Branch:      u.Branch,
		Theme:       themeNames[u.Theme],
		CreatedAt:   u.CreatedAt,
		LastSeen:    u.UpdatedAt,
		Permissions: u.Permissions().Matrix(),
	}
	if u.IsAdmin() {
		v.Role = string(domain.RoleGroupAdmins)
	}
	if u.Email != nil {
		v.Email = *u.Email
	}
	if v.Theme == "" {
		v.Theme = themeNames[domain.ThemeSystem]
	}
	if v.Status == "" {
		v.Status = domain.StatusActive
	}
	return v
}
