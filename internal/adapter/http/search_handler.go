package http

import (
	"net/http"

	"crediasesor-backoffice/internal/usecase/search"

	"github.com/labstack/echo/v4"
)

type SearchHandler struct{ uc *search.Usecase }

func NewSearchHandler(uc *search.Usecase) *SearchHandler { return &SearchHandler{uc: uc} }

func results(c echo.Context, rs []search.Result, err error) error {
	if err != nil {
		return err
	}
	if rs == nil {
		rs = []search.Result{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": rs})
}

func (h *SearchHandler) All(c echo.Context) error {
	rs, err := h.uc.All(c.Request().Context(), c.QueryParam("q"))
	return results(c, rs, err)
}

func (h *SearchHandler) Clients(c echo.Context) error {
	rs, err := h.uc.Clients(c.Request().Context(), c.QueryParam("q"))
	return results(c, rs, err)
}

func (h *SearchHandler) Credits(c echo.Context) error {
	rs, err := h.uc.Credits(c.Request().Context(), c.QueryParam("q"))
	return results(c, rs, err)
}

func (h *SearchHandler) Client(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	r, err := h.uc.Client(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Credit ids are strings such as CRD-20250001.
func (h *SearchHandler) Credit(c echo.Context) error {
	r, err := h.uc.Credit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
