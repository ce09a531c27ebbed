package http

import (
	"net/http"
	"strconv"

	"crediasesor-backoffice/internal/usecase/reporting"

	"github.com/labstack/echo/v4"
)

type ReportingHandler struct{ uc *reporting.Usecase }

func NewReportingHandler(uc *reporting.Usecase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

func reply[T any](c echo.Context, v T, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Period: GET /periodo?fechaInicio=YYYY-MM-DD&fechaFin=YYYY-MM-DD
func (h *ReportingHandler) Period(c echo.Context) error {
	r, err := h.uc.Period(c.Request().Context(), c.QueryParam("fechaInicio"), c.QueryParam("fechaFin"))
	return reply(c, r, err)
}

func (h *ReportingHandler) Banks(c echo.Context) error {
	r, err := h.uc.Banks(c.Request().Context())
	return reply(c, r, err)
}

func (h *ReportingHandler) Institutions(c echo.Context) error {
	r, err := h.uc.Institutions(c.Request().Context())
	return reply(c, r, err)
}

func (h *ReportingHandler) Statuses(c echo.Context) error {
	r, err := h.uc.Statuses(c.Request().Context())
	return reply(c, r, err)
}

// Monthly: GET /meses?year=2025
func (h *ReportingHandler) Monthly(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return badRequest("Debe proporcionar un año válido")
	}
	r, err := h.uc.Monthly(c.Request().Context(), year)
	return reply(c, r, err)
}

func (h *ReportingHandler) Ranking(c echo.Context) error {
	r, err := h.uc.Ranking(c.Request().Context())
	return reply(c, r, err)
}
