package http

import (
	"net/http"

	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func respond(c echo.Context, code int, msg string, data any) error {
	body := map[string]any{"success": true}
	if msg != "" {
		body["message"] = msg
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(code, body)
}

func (h *UserHandler) List(c echo.Context) error {
	var in user.ListInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid query")
	}
	page, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", page)
}

func (h *UserHandler) Stats(c echo.Context) error {
	st, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", st)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	v, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", v)
}

func (h *UserHandler) Create(c echo.Context) error {
	var in user.CreateInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	v, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Usuario creado exitosamente", v)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	var in user.UpdateInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	v, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuario actualizado exitosamente", v)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.PrincipalFrom(c).UserID, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuario eliminado exitosamente", nil)
}
