package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type wireEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func newServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := strconv.ParseUint(r.URL.Query().Get("uid"), 10, 64)
		_ = h.Serve(w, r, uid, nil)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, uid int) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?uid=" + strconv.Itoa(uid)
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "") })
	if evt := read(t, c); evt.Type != EventReady {
		t.Fatalf("first event = %q, want ready", evt.Type)
	}
	return c
}

func read(t *testing.T, c *websocket.Conn) wireEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var evt wireEvent
	if err := wsjson.Read(ctx, c, &evt); err != nil {
		t.Fatalf("read: %v", err)
	}
	return evt
}

func TestHub_PushReachesEveryConnectionOfTheUser(t *testing.T) {
	h := NewHub(nil)
	srv := newServer(t, h)

	a1 := dial(t, srv, 1)
	a2 := dial(t, srv, 1)
	if !h.Online(1) || h.Online(2) || h.OnlineCount() != 1 {
		t.Fatalf("online state wrong: count=%d", h.OnlineCount())
	}

	h.Push(1, "new_message", map[string]any{"content": "hola"})
	for _, c := range []*websocket.Conn{a1, a2} {
		evt := read(t, c)
		if evt.Type != "new_message" || evt.Data["content"] != "hola" {
			t.Fatalf("event = %+v", evt)
		}
	}
}

func TestHub_PresenceAndTyping(t *testing.T) {
	h := NewHub(nil)
	srv := newServer(t, h)

	a := dial(t, srv, 1)
	b := dial(t, srv, 2)

	if evt := read(t, a); evt.Type != EventOnline || evt.Data["userId"] != float64(2) {
		t.Fatalf("presence = %+v", evt)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, b, map[string]any{"type": "typing", "to": 1}); err != nil {
		t.Fatal(err)
	}
	if evt := read(t, a); evt.Type != EventTyping || evt.Data["from"] != float64(2) {
		t.Fatalf("typing = %+v", evt)
	}

	_ = b.Close(websocket.StatusNormalClosure, "bye")
	if evt := read(t, a); evt.Type != EventOffline || evt.Data["userId"] != float64(2) {
		t.Fatalf("offline = %+v", evt)
	}
	if h.Online(2) {
		t.Fatal("user 2 still online")
	}
}

func TestHub_PushWithoutConnectionsIsNoop(t *testing.T) {
	h := NewHub(nil)
	h.Push(99, "new_message", nil)
	if h.Online(99) {
		t.Fatal("nobody is connected")
	}
}
