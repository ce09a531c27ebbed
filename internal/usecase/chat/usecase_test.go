package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"crediasesor-backoffice/internal/adapter/repository/mysql"
	"crediasesor-backoffice/internal/domain/message"
	"crediasesor-backoffice/internal/domain/permission"
	"crediasesor-backoffice/internal/domain/user"
	"crediasesor-backoffice/internal/testutil/sqlitedb"
	"crediasesor-backoffice/internal/usecase/chat"
)

type pushed struct {
	to   uint64
	kind string
	data any
}

type recordingRelay struct {
	mu     sync.Mutex
	online map[uint64]bool
	events []pushed
}

func (r *recordingRelay) Online(id uint64) bool { return r.online[id] }

func (r *recordingRelay) Push(id uint64, kind string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, pushed{id, kind, data})
}

func setup(t *testing.T) (*chat.Usecase, *recordingRelay, []uint64) {
	t.Helper()
	db := sqlitedb.Open(t)
	users := mysql.NewUserRepository(db)
	var ids []uint64
	for _, name := range []string{"ana", "beto", "carla"} {
		u := &user.User{Username: name, PasswordHash: "x", Role: permission.RoleUser, FirstNames: name}
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, u.ID)
	}
	relay := &recordingRelay{online: map[uint64]bool{ids[1]: true}}
	return chat.NewUsecase(mysql.NewMessageRepository(db), users, relay, nil), relay, ids
}

func TestChat_SendReadFlow(t *testing.T) {
	uc, relay, ids := setup(t)
	ana, beto := ids[0], ids[1]
	ctx := context.Background()

	m, err := uc.Send(ctx, ana, chat.SendInput{ReceiverID: beto, Content: "  hola Beto  "})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Content != "hola Beto" || m.IsRead || m.SenderID != ana {
		t.Fatalf("message = %+v", m)
	}
	if len(relay.events) != 1 || relay.events[0].to != beto || relay.events[0].kind != chat.EventNewMessage {
		t.Fatalf("events = %+v", relay.events)
	}
	if _, err := uc.Send(ctx, ana, chat.SendInput{ReceiverID: beto, Content: "¿cómo vas?"}); err != nil {
		t.Fatal(err)
	}

	counts, err := uc.UnreadCounts(ctx, beto)
	if err != nil || counts[ana] != 2 {
		t.Fatalf("unread = %v, err = %v", counts, err)
	}

	n, err := uc.MarkRead(ctx, beto, ana)
	if err != nil || n != 2 {
		t.Fatalf("MarkRead = %d, %v", n, err)
	}
	last := relay.events[len(relay.events)-1]
	if last.to != ana || last.kind != chat.EventMessagesRead {
		t.Fatalf("read receipt = %+v", last)
	}
	if n, _ := uc.MarkRead(ctx, beto, ana); n != 0 {
		t.Fatalf("second MarkRead = %d", n)
	}

	conv, err := uc.Conversation(ctx, beto, ana, beto)
	if err != nil || len(conv) != 2 || !conv[0].IsRead || conv[0].Content != "hola Beto" {
		t.Fatalf("conversation = %+v, err = %v", conv, err)
	}
}

func TestChat_Rules(t *testing.T) {
	uc, relay, ids := setup(t)
	ctx := context.Background()

	if _, err := uc.Send(ctx, ids[0], chat.SendInput{ReceiverID: ids[1], Content: "   "}); !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("blank content: %v", err)
	}
	if _, err := uc.Send(ctx, ids[0], chat.SendInput{ReceiverID: 999, Content: "hola"}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("unknown receiver: %v", err)
	}
	if len(relay.events) != 0 {
		t.Fatalf("nothing should be pushed, got %+v", relay.events)
	}
	if _, err := uc.Conversation(ctx, ids[2], ids[0], ids[1]); !errors.Is(err, message.ErrNotParticipant) {
		t.Fatalf("outsider reading: %v", err)
	}
}

func TestChat_Contacts(t *testing.T) {
	uc, _, ids := setup(t)
	contacts, err := uc.Contacts(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %+v", contacts)
	}
	for _, c := range contacts {
		switch c.ID {
		case ids[1]:
			if !c.IsOnline || c.LastSeen != nil {
				t.Fatalf("beto = %+v", c)
			}
		case ids[2]:
			if c.IsOnline || c.LastSeen == nil || *c.LastSeen != "Desconectado" {
				t.Fatalf("carla = %+v", c)
			}
		default:
			t.Fatalf("unexpected contact %+v", c)
		}
	}
}
