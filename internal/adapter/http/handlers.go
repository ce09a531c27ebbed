package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db  Pinger
	env string
}

func NewHandler(db Pinger, env string) *Handler { return &Handler{db: db, env: env} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// APIHealth is the frontend's liveness probe.
func (h *Handler) APIHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "OK",
		"message":     "Servidor funcionando correctamente",
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"environment": h.env,
	})
}

func (h *Handler) DBStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if h.db == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"message": "Base de datos no configurada", "status": "unhealthy", "timestamp": now,
		})
	}
	if err := h.db.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"message": "Error de conexión a la base de datos", "status": "unhealthy", "error": err.Error(), "timestamp": now,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Conexión a la base de datos exitosa", "status": "healthy", "timestamp": now,
	})
}
