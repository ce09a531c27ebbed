// Package realtime relays chat events to connected websocket clients.
package realtime

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

const (
	EventReady   = "ready"
	EventOnline  = "user_online"
	EventOffline = "user_offline"
	EventTyping  = "typing"

	writeTimeout = 5 * time.Second
	sendBuffer   = 32
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// inbound frames a client may send; only typing is relayed.
type inbound struct {
	Type string `json:"type"`
	To   uint64 `json:"to"`
}

type typing struct {
	From uint64 `json:"from"`
}

type presence struct {
	UserID uint64 `json:"userId"`
}

type subscriber struct {
	userID uint64
	send   chan Event
}

// Hub keeps the connections per user. A user may hold several (tabs).
type Hub struct {
	mu    sync.RWMutex
	conns map[uint64]map[*subscriber]struct{}
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{conns: map[uint64]map[*subscriber]struct{}{}, log: log}
}

func (h *Hub) subscribe(userID uint64) *subscriber {
	s := &subscriber{userID: userID, send: make(chan Event, sendBuffer)}
	h.mu.Lock()
	first := len(h.conns[userID]) == 0
	if first {
		h.conns[userID] = map[*subscriber]struct{}{}
	}
	h.conns[userID][s] = struct{}{}
	h.mu.Unlock()
	if first {
		h.broadcast(userID, Event{Type: EventOnline, Data: presence{UserID: userID}})
	}
	return s
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.mu.Lock()
	set := h.conns[s.userID]
	delete(set, s)
	last := len(set) == 0
	if last {
		delete(h.conns, s.userID)
	}
	h.mu.Unlock()
	if last {
		h.broadcast(s.userID, Event{Type: EventOffline, Data: presence{UserID: s.userID}})
	}
}

func (h *Hub) Online(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}

// OnlineCount is the number of distinct connected users.
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Push never blocks: a subscriber whose buffer is full misses the event.
func (h *Hub) Push(userID uint64, kind string, data any) {
	evt := Event{Type: kind, Data: data}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.conns[userID] {
		select {
		case s.send <- evt:
		default:
			h.log.Warn("realtime buffer full, event dropped", zap.Uint64("user_id", userID), zap.String("type", kind))
		}
	}
}

// broadcast sends evt to everybody except the given user.
func (h *Hub) broadcast(except uint64, evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for uid, set := range h.conns {
		if uid == except {
			continue
		}
		for s := range set {
			select {
			case s.send <- evt:
			default:
			}
		}
	}
}

// Serve upgrades the request and pumps events until the client goes away
// or ctx ends. userID must already be authenticated.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint64, originPatterns []string) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := h.subscribe(userID)
	defer h.unsubscribe(sub)

	if err := h.write(ctx, conn, Event{Type: EventReady, Data: presence{UserID: userID}}); err != nil {
		return nil
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			var in inbound
			if err := wsjson.Read(ctx, conn, &in); err != nil {
				readErr <- err
				return
			}
			if in.Type == EventTyping && in.To != 0 {
				h.Push(in.To, EventTyping, typing{From: userID})
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
			return nil
		case err := <-readErr:
			if s := websocket.CloseStatus(err); s != websocket.StatusNormalClosure && s != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				h.log.Debug("realtime read ended", zap.Uint64("user_id", userID), zap.Error(err))
			}
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return nil
		case evt := <-sub.send:
			if err := h.write(ctx, conn, evt); err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return nil
			}
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, evt Event) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, evt)
}
