package http

import (
	"net/http"
	"time"

	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc     *auth.Usecase
	tokens *auth.Tokens
	secure bool
}

// NewAuthHandler: secure marks cookies Secure (HTTPS only).
func NewAuthHandler(uc *auth.Usecase, tokens *auth.Tokens, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, tokens: tokens, secure: secure}
}

func (h *AuthHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl / time.Second),
	}
	if ttl < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

func (h *AuthHandler) clearCookies(c echo.Context) {
	c.SetCookie(h.cookie(middleware.AccessCookie, "", -1))
	c.SetCookie(h.cookie(middleware.RefreshCookie, "", -1))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var in auth.LoginInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	s, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	c.SetCookie(h.cookie(middleware.AccessCookie, s.AccessToken, h.tokens.AccessTTL()))
	c.SetCookie(h.cookie(middleware.RefreshCookie, s.RefreshToken, h.tokens.RefreshTTL()))
	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"accessToken":  s.AccessToken,
		"refreshToken": s.RefreshToken,
		"user":         s.User,
	})
}

// Logout is public: an expired or forged token still gets its cookies
// cleared, only a valid one also revokes the stored refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := ""
	if ck, err := c.Cookie(middleware.AccessCookie); err == nil {
		raw = ck.Value
	}
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "No hay sesión activa"})
	}

	claims, err := h.tokens.ParseAccess(raw)
	if err != nil {
		h.clearCookies(c)
		return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Cookies limpiadas exitosamente"})
	}
	uid, err := claims.UserID()
	if err != nil {
		return err
	}
	if err := h.uc.Logout(c.Request().Context(), uid); err != nil {
		return err
	}
	h.clearCookies(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Sesión cerrada exitosamente"})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.Bind(&body)
	raw := body.RefreshToken
	if ck, err := c.Cookie(middleware.RefreshCookie); err == nil && ck.Value != "" {
		raw = ck.Value
	}
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Refresh token requerido"})
	}
	access, err := h.uc.Refresh(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	c.SetCookie(h.cookie(middleware.AccessCookie, access, h.tokens.AccessTTL()))
	return c.JSON(http.StatusOK, map[string]any{"success": true, "accessToken": access})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var in auth.ChangePasswordInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.Request().Context(), middleware.PrincipalFrom(c).UserID, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Contraseña cambiada exitosamente"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	p, err := h.uc.Profile(c.Request().Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": p})
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var in auth.ProfileInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	p, err := h.uc.UpdateProfile(c.Request().Context(), middleware.PrincipalFrom(c).UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Perfil actualizado exitosamente", "user": p})
}

func (h *AuthHandler) UpdateTheme(c echo.Context) error {
	var in auth.ThemeInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid body")
	}
	theme, err := h.uc.UpdateTheme(c.Request().Context(), middleware.PrincipalFrom(c).UserID, in.Theme)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Tema actualizado exitosamente", "theme": theme})
}
