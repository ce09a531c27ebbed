package http

import (
	"net/http"
	"strconv"

	"crediasesor-backoffice/internal/adapter/middleware"
	"crediasesor-backoffice/internal/adapter/realtime"
	"crediasesor-backoffice/internal/usecase/chat"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	uc      *chat.Usecase
	hub     *realtime.Hub
	origins []string
}

// NewChatHandler: origins are the websocket origin patterns (host or
// host:port, as accepted by coder/websocket).
func NewChatHandler(uc *chat.Usecase, hub *realtime.Hub, origins []string) *ChatHandler {
	return &ChatHandler{uc: uc, hub: hub, origins: origins}
}

func me(c echo.Context) uint64 { return middleware.PrincipalFrom(c).UserID }

func (h *ChatHandler) Users(c echo.Context) error {
	users, err := h.uc.Contacts(c.Request().Context(), me(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

// Messages: GET /messages?user1=&user2=
func (h *ChatHandler) Messages(c echo.Context) error {
	a, errA := strconv.ParseUint(c.QueryParam("user1"), 10, 64)
	b, errB := strconv.ParseUint(c.QueryParam("user2"), 10, 64)
	if errA != nil || errB != nil {
		return badRequest("user1 y user2 son requeridos")
	}
	return h.conversation(c, a, b)
}

// Conversation: GET /conversation/:userId, between the caller and userId.
func (h *ChatHandler) Conversation(c echo.Context) error {
	other, err := uintParam(c, "userId")
	if err != nil {
		return err
	}
	return h.conversation(c, me(c), other)
}

func (h *ChatHandler) conversation(c echo.Context, a, b uint64) error {
	msgs, err := h.uc.Conversation(c.Request().Context(), me(c), a, b)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": msgs})
}

func (h *ChatHandler) Send(c echo.Context) error {
	var in chat.SendInput
	if err := c.Bind(&in); err != nil {
		return badRequest("invalid body")
	}
	if in.ReceiverID == 0 || in.Content == "" {
		return badRequest("receiverId y content son requeridos")
	}
	msg, err := h.uc.Send(c.Request().Context(), me(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "message": msg})
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	sender, err := uintParam(c, "senderId")
	if err != nil {
		return err
	}
	if _, err := h.uc.MarkRead(c.Request().Context(), me(c), sender); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *ChatHandler) UnreadCounts(c echo.Context) error {
	counts, err := h.uc.UnreadCounts(c.Request().Context(), me(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// Socket upgrades to the realtime relay. It blocks until the peer leaves.
func (h *ChatHandler) Socket(c echo.Context) error {
	return h.hub.Serve(c.Response(), c.Request(), me(c), h.origins)
}
