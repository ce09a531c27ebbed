package http

import (
	"net/http"

	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/domain/permission"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Routes groups the handlers and the middleware the router needs.
// Handlers left nil are not mounted. Authenticate is required whenever a
// protected handler is set; Idempotency is optional.
type Routes struct {
	Health      *Handler
	Auth        *AuthHandler
	Users       *UserHandler
	Commissions *CommissionHandler
	Chat        *ChatHandler
	Search      *SearchHandler
	Reports     *ReportingHandler

	Authenticate echo.MiddlewareFunc
	Idempotency  echo.MiddlewareFunc
}

// NewEcho builds the server with the shared middleware stack. CORS allows
// credentials so the auth cookies travel with cross-origin requests.
func NewEcho(log *zap.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderIdempotencyKey, middleware.HeaderRequestAt},
		AllowCredentials: true,
	}))
	return e
}

func perm(m permission.Module, a permission.Action) echo.MiddlewareFunc {
	return middleware.RequirePermission(m, a)
}

func (r Routes) Register(e *echo.Echo) {
	if r.Health != nil {
		e.GET("/health", r.Health.Health)
		e.GET("/api/health", r.Health.APIHealth)
		e.GET("/api/db-status", r.Health.DBStatus)
	}

	api := e.Group("/api")
	authn := r.Authenticate

	if h := r.Auth; h != nil {
		g := api.Group("/auth")
		g.POST("/login", h.Login)
		g.POST("/logout", h.Logout)
		g.POST("/refresh", h.Refresh)
		g.POST("/cambiar-password", h.ChangePassword, authn)
		g.GET("/perfil", h.Profile, authn)
		g.PUT("/perfil", h.UpdateProfile, authn)
		g.PUT("/tema", h.UpdateTheme, authn)
	}

	if h := r.Users; h != nil {
		g := api.Group("/users", authn)
		g.GET("", h.List, perm(permission.ModuleUsers, permission.ActionView))
		g.GET("/stats", h.Stats, perm(permission.ModuleUsers, permission.ActionView))
		g.GET("/:id", h.Get, perm(permission.ModuleUsers, permission.ActionView))
		g.POST("", h.Create, perm(permission.ModuleUsers, permission.ActionCreate))
		g.PUT("/:id", h.Update, perm(permission.ModuleUsers, permission.ActionEdit))
		g.DELETE("/:id", h.Delete, perm(permission.ModuleUsers, permission.ActionDelete))
	}

	if h := r.Commissions; h != nil {
		g := api.Group("/comisiones", authn)
		compute := []echo.MiddlewareFunc{perm(permission.ModuleCommissions, permission.ActionCreate)}
		if r.Idempotency != nil {
			compute = append(compute, r.Idempotency)
		}
		view := perm(permission.ModuleCommissions, permission.ActionView)
		g.GET("", h.List, view)
		g.GET("/resumen", h.Summary, view)
		g.GET("/asesor/:asesorId", h.ByAdvisor, view)
		g.GET("/periodo/:periodo", h.ByPeriod, view)
		g.POST("/calcular", h.Calculate, compute...)
		g.POST("/recalcular", h.Recalculate, compute...)
		g.PUT("/:id", h.Update, perm(permission.ModuleCommissions, permission.ActionEdit))
		g.DELETE("/:id", h.Delete, perm(permission.ModuleCommissions, permission.ActionDelete))
	}

	if h := r.Chat; h != nil {
		g := api.Group("/chat", authn)
		g.GET("/users", h.Users)
		g.GET("/messages", h.Messages)
		g.GET("/conversation/:userId", h.Conversation)
		g.POST("/send", h.Send)
		g.PUT("/read/:senderId", h.MarkRead)
		g.GET("/unread-counts", h.UnreadCounts)
		g.GET("/ws", h.Socket)
	}

	if h := r.Search; h != nil {
		g := api.Group("/search", authn)
		g.GET("", h.All)
		g.GET("/clientes", h.Clients)
		g.GET("/clientes/:id", h.Client)
		g.GET("/creditos", h.Credits)
		g.GET("/creditos/:id", h.Credit)
	}

	if h := r.Reports; h != nil {
		g := api.Group("/reportes", authn, perm(permission.ModuleReports, permission.ActionView))
		g.GET("/periodo", h.Period)
		g.GET("/bancos", h.Banks)
		g.GET("/financieras", h.Institutions)
		g.GET("/estados", h.Statuses)
		g.GET("/meses", h.Monthly)
		g.GET("/ranking", h.Ranking)
	}
}
