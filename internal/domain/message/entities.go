package message

import (
	"context"
	"errors"
	"time"
)

var ErrNotParticipant = errors.New("not a participant of the conversation")

// Table: messages (snake_case, as created by the chat module).
type Message struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID   uint64    `gorm:"column:sender_id;not null;index:ix_messages_pair,priority:1" json:"sender_id"`
	ReceiverID uint64    `gorm:"column:receiver_id;not null;index:ix_messages_pair,priority:2;index:ix_messages_receiver_unread,priority:1" json:"receiver_id"`
	Body       string    `gorm:"column:message;type:text;not null" json:"message"`
	SentAt     time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false;index:ix_messages_receiver_unread,priority:2" json:"is_read"`
}

func (Message) TableName() string { return "messages" }

type Repository interface {
	Create(ctx context.Context, m *Message) error
	// Conversation returns both directions between a and b, oldest first.
	Conversation(ctx context.Context, a, b uint64) ([]Message, error)
	// MarkRead flags messages from sender to receiver as read, returning the count.
	MarkRead(ctx context.Context, senderID, receiverID uint64) (int64, error)
	// UnreadCounts maps sender id to unread messages addressed to receiverID.
	UnreadCounts(ctx context.Context, receiverID uint64) (map[uint64]int64, error)
}
