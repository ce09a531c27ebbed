package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crediasesor-backoffice/internal/domain/message"
	"crediasesor-backoffice/internal/domain/user"

	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message content cannot be empty")

// Relay delivers events to connected users; delivery is best effort.
type Relay interface {
	Online(userID uint64) bool
	Push(userID uint64, kind string, data any)
}

type nopRelay struct{}

func (nopRelay) Online(uint64) bool       { return false }
func (nopRelay) Push(uint64, string, any) {}

type Usecase struct {
	messages message.Repository
	users    user.Repository
	relay    Relay
	now      func() time.Time
	log      *zap.Logger
}

func NewUsecase(messages message.Repository, users user.Repository, relay Relay, log *zap.Logger) *Usecase {
	if relay == nil {
		relay = nopRelay{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		messages: messages,
		users:    users,
		relay:    relay,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Contacts lists everyone but me with their live presence.
func (u *Usecase) Contacts(ctx context.Context, me uint64) ([]Contact, error) {
	rows, err := u.users.ListExcept(ctx, me)
	if err != nil {
		return nil, err
	}
	offline := "Desconectado"
	out := make([]Contact, 0, len(rows))
	for _, r := range rows {
		c := Contact{ID: r.ID, FirstName: r.FirstNames, LastName: r.LastNames, Role: r.Role}
		if c.FirstName == "" {
			c.FirstName = "Sin nombre"
		}
		if r.Email != nil {
			c.Email = *r.Email
		}
		c.IsOnline = u.relay.Online(r.ID)
		if !c.IsOnline {
			c.LastSeen = &offline
		}
		out = append(out, c)
	}
	return out, nil
}

// Conversation returns the messages between a and b; me must be one of them.
func (u *Usecase) Conversation(ctx context.Context, me, a, b uint64) ([]MessageView, error) {
	if me != a && me != b {
		return nil, message.ErrNotParticipant
	}
	rows, err := u.messages.Conversation(ctx, a, b)
	if err != nil {
		return nil, err
	}
	out := make([]MessageView, 0, len(rows))
	for i := range rows {
		out = append(out, viewOf(&rows[i]))
	}
	return out, nil
}

// Send stores the message and then pushes it to the receiver.
func (u *Usecase) Send(ctx context.Context, me uint64, in SendInput) (*MessageView, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := u.users.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}
	m := &message.Message{
		SenderID:   me,
		ReceiverID: in.ReceiverID,
		Body:       content,
		SentAt:     u.now(),
	}
	if err := u.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}
	v := viewOf(m)
	u.relay.Push(in.ReceiverID, EventNewMessage, v)
	u.log.Debug("message sent", zap.Uint64("sender_id", me), zap.Uint64("receiver_id", in.ReceiverID))
	return &v, nil
}

// MarkRead flags sender's messages to me as read and tells the sender.
func (u *Usecase) MarkRead(ctx context.Context, me, senderID uint64) (int64, error) {
	n, err := u.messages.MarkRead(ctx, senderID, me)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.relay.Push(senderID, EventMessagesRead, ReadReceipt{ReaderID: me, Count: n})
	}
	return n, nil
}

func (u *Usecase) UnreadCounts(ctx context.Context, me uint64) (map[uint64]int64, error) {
	return u.messages.UnreadCounts(ctx, me)
}
