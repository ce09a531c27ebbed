// Package permission models per-module capabilities as a map of
// module -> action -> granted, with superadmin bypassing every check.
package permission

import (
	"fmt"
	"strings"
)

type Module string

const (
	ModuleCredits      Module = "creditos"
	ModuleClients      Module = "clientes"
	ModuleAdvisors     Module = "asesores"
	ModuleBanks        Module = "bancos"
	ModuleInstitutions Module = "financieras"
	ModuleTargets      Module = "objetivos"
	ModuleReports      Module = "reportes"
	ModuleCommissions  Module = "comisiones"
	ModuleSettings     Module = "configuracion"
	ModuleUsers        Module = "gestionUsuarios"
)

type Action string

const (
	ActionView   Action = "ver"
	ActionCreate Action = "crear"
	ActionEdit   Action = "editar"
	ActionDelete Action = "eliminar"
)

var (
	modules = []Module{
		ModuleCredits, ModuleClients, ModuleAdvisors, ModuleBanks, ModuleInstitutions,
		ModuleTargets, ModuleReports, ModuleCommissions, ModuleSettings, ModuleUsers,
	}
	actions = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}
)

func Modules() []Module { return append([]Module(nil), modules...) }
func Actions() []Action { return append([]Action(nil), actions...) }

func (m Module) Valid() bool {
	for _, v := range modules {
		if v == m {
			return true
		}
	}
	return false
}

func (a Action) Valid() bool {
	for _, v := range actions {
		if v == a {
			return true
		}
	}
	return false
}

// Key renders "module.action" as used in 403 bodies.
func Key(m Module, a Action) string { return string(m) + "." + string(a) }

// ParseKey is the inverse of Key.
func ParseKey(s string) (Module, Action, error) {
	mod, act, ok := strings.Cut(s, ".")
	m, a := Module(mod), Action(act)
	if !ok || !m.Valid() || !a.Valid() {
		return "", "", fmt.Errorf("unknown permission %q", s)
	}
	return m, a, nil
}

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool { return r == RoleSuperAdmin || r == RoleAdmin || r == RoleUser }

// Set holds granted capabilities. Missing entries are denied.
type Set map[Module]map[Action]bool

func (s Set) Grant(m Module, a Action) {
	if s[m] == nil {
		s[m] = make(map[Action]bool, len(actions))
	}
	s[m][a] = true
}

func (s Set) Has(m Module, a Action) bool { return s[m][a] }

// Allows is the capability check; superadmin short-circuits to true.
func Allows(role Role, s Set, m Module, a Action) bool {
	if role == RoleSuperAdmin {
		return true
	}
	return s.Has(m, a)
}

// Matrix expands the set to every module and action, denied ones as false.
func (s Set) Matrix() map[Module]map[Action]bool {
	out := make(map[Module]map[Action]bool, len(modules))
	for _, m := range modules {
		row := make(map[Action]bool, len(actions))
		for _, a := range actions {
			row[a] = s.Has(m, a)
		}
		out[m] = row
	}
	return out
}

// FromMatrix keeps only known, granted entries.
func FromMatrix(in map[Module]map[Action]bool) Set {
	s := Set{}
	for m, row := range in {
		if !m.Valid() {
			continue
		}
		for a, ok := range row {
			if ok && a.Valid() {
				s.Grant(m, a)
			}
		}
	}
	return s
}

func AdminSet() Set {
	s := Set{}
	for _, m := range modules {
		for _, a := range actions {
			s.Grant(m, a)
		}
	}
	return s
}

// DefaultUserSet: view most modules, create and edit credits and clients.
func DefaultUserSet() Set {
	s := Set{}
	for _, m := range []Module{ModuleCredits, ModuleClients} {
		s.Grant(m, ActionView)
		s.Grant(m, ActionCreate)
		s.Grant(m, ActionEdit)
	}
	for _, m := range []Module{ModuleAdvisors, ModuleBanks, ModuleInstitutions, ModuleTargets, ModuleReports, ModuleCommissions} {
		s.Grant(m, ActionView)
	}
	return s
}

// DefaultFor picks the initial set for a new account.
func DefaultFor(role Role) Set {
	if role == RoleUser {
		return DefaultUserSet()
	}
	return AdminSet()
}

// Grant is one row of user_permissions; presence means granted.
type Grant struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:ux_user_permissions,priority:1" json:"-"`
	Module Module `gorm:"column:module;size:32;not null;uniqueIndex:ux_user_permissions,priority:2" json:"module"`
	Action Action `gorm:"column:action;size:16;not null;uniqueIndex:ux_user_permissions,priority:3" json:"action"`
}

func (Grant) TableName() string { return "user_permissions" }

func FromGrants(gs []Grant) Set {
	s := Set{}
	for _, g := range gs {
		s.Grant(g.Module, g.Action)
	}
	return s
}

// Grants flattens the set in module/action declaration order.
func (s Set) Grants(userID uint64) []Grant {
	var out []Grant
	for _, m := range modules {
		for _, a := range actions {
			if s.Has(m, a) {
				out = append(out, Grant{UserID: userID, Module: m, Action: a})
			}
		}
	}
	return out
}

// Apply overlays explicit matrix entries on base: true grants, false revokes.
// Unknown modules and actions are ignored.
func Apply(base Set, overrides map[Module]map[Action]bool) Set {
	out := Set{}
	for m, row := range base {
		for a, ok := range row {
			if ok {
				out.Grant(m, a)
			}
		}
	}
	for m, row := range overrides {
		if !m.Valid() {
			continue
		}
		for a, ok := range row {
			switch {
			case !a.Valid():
			case ok:
				out.Grant(m, a)
			default:
				delete(out[m], a)
			}
		}
	}
	return out
}
