package chat

import (
	"time"

	"crediasesor-backoffice/internal/domain/message"
	"crediasesor-backoffice/internal/domain/permission"
)

// Event kinds pushed over the relay.
const (
	EventNewMessage   = "new_message"
	EventMessagesRead = "messages_read"
)

type SendInput struct {
	ReceiverID uint64 `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type Contact struct {
	ID        uint64          `json:"id"`
	FirstName string          `json:"nombre"`
	LastName  string          `json:"apellido"`
	Email     string          `json:"email"`
	Role      permission.Role `json:"rol"`
	IsOnline  bool            `json:"isOnline"`
	LastSeen  *string         `json:"lastSeen"`
}

type MessageView struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"senderId"`
	ReceiverID uint64    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

type ReadReceipt struct {
	ReaderID uint64 `json:"readerId"`
	Count    int64  `json:"count"`
}

func viewOf(m *message.Message) MessageView {
	return MessageView{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Body,
		Timestamp:  m.SentAt,
		IsRead:     m.IsRead,
	}
}
