package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/usecase/commission"

	"github.com/labstack/echo/v4"
)

const msgPeriodRequired = "El periodo es requerido (formato: YYYY-MM)"

type CommissionHandler struct{ uc *commission.Usecase }

func NewCommissionHandler(uc *commission.Usecase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

func (h *CommissionHandler) computeInput(c echo.Context) (commission.ComputeInput, error) {
	var in commission.ComputeInput
	if err := c.Bind(&in); err != nil {
		return in, badRequest("invalid body")
	}
	in.Period = strings.TrimSpace(in.Period)
	if in.Period == "" {
		return in, badRequest(msgPeriodRequired)
	}
	if err := c.Validate(&in); err != nil {
		return in, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, in.Period)
	}
	return in, nil
}

// Calculate: POST /api/comisiones/calcular
func (h *CommissionHandler) Calculate(c echo.Context) error {
	in, err := h.computeInput(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Compute(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Recalculate: POST /api/comisiones/recalcular
func (h *CommissionHandler) Recalculate(c echo.Context) error {
	in, err := h.computeInput(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Recompute(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CommissionHandler) List(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context(), c.QueryParam("periodo"), domain.Status(c.QueryParam("estado")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CommissionHandler) Summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommissionHandler) ByAdvisor(c echo.Context) error {
	advisorID, err := uintParam(c, "asesorId")
	if err != nil {
		return err
	}
	rows, err := h.uc.ByAdvisor(c.Request().Context(), advisorID, c.QueryParam("periodo"), domain.Status(c.QueryParam("estado")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CommissionHandler) ByPeriod(c echo.Context) error {
	rows, err := h.uc.ByPeriod(c.Request().Context(), c.Param("periodo"), domain.Status(c.QueryParam("estado")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CommissionHandler) Update(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	var in commission.UpdateInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	row, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, row)
}

func (h *CommissionHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Comisión eliminada correctamente"})
}

func uintParam(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, badRequest("invalid " + name)
	}
	return n, nil
}
