package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"crediasesor-backoffice/internal/domain/permission"
	"crediasesor-backoffice/internal/domain/user"
	"crediasesor-backoffice/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	principalKey = "principal"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      uint64
	Username    string
	Role        permission.Role
	Permissions permission.Set
}

func (p *Principal) Can(m permission.Module, a permission.Action) bool {
	return permission.Allows(p.Role, p.Permissions, m, a)
}

type AccessParser interface {
	ParseAccess(raw string) (*auth.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (*user.User, error)
}

// bearerToken looks at the Authorization header, then the access cookie,
// then ?token= (browsers cannot set headers on websocket upgrades).
func bearerToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if ck, err := c.Cookie(AccessCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return c.QueryParam("token")
}

// Authenticate resolves the access token into a Principal. The user row is
// reloaded on every request so revoked permissions apply immediately.
func Authenticate(tokens AccessParser, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token de acceso requerido"})
			}
			claims, err := tokens.ParseAccess(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token inválido o expirado"})
			}
			uid, err := claims.UserID()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token inválido o expirado"})
			}

			u, err := users.GetByID(c.Request().Context(), uid)
			if errors.Is(err, user.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Usuario no encontrado"})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al verificar usuario"})
			}
			if !u.CanSignIn() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Usuario inactivo"})
			}

			c.Set(principalKey, &Principal{
				UserID:      u.ID,
				Username:    u.Username,
				Role:        u.Role,
				Permissions: u.Permissions(),
			})
			return next(c)
		}
	}
}

// PrincipalFrom returns nil on routes that skipped Authenticate.
func PrincipalFrom(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}

// WithPrincipal is for handlers and tests that build contexts by hand.
func WithPrincipal(c echo.Context, p *Principal) { c.Set(principalKey, p) }

func RequirePermission(m permission.Module, a permission.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Usuario no autenticado"})
			}
			if !p.Can(m, a) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "No tienes permisos para realizar esta acción",
					"required": permission.Key(m, a),
				})
			}
			return next(c)
		}
	}
}
