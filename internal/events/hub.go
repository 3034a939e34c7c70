// Package events pushes assistant activity to websocket subscribers so
// external clients (dashboards, overlays) can follow the conversation.
package events

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Kind classifies an event on the stream.
type Kind string

const (
	KindUtterance Kind = "utterance"
	KindReply     Kind = "reply"
	KindListening Kind = "listening"
	KindError     Kind = "error"
)

type Event struct {
	ID     uuid.UUID `json:"id"`
	Kind   Kind      `json:"kind"`
	Source string    `json:"source,omitempty"`
	Text   string    `json:"text,omitempty"`
	Time   time.Time `json:"time"`
}

func New(kind Kind, source, text string) Event {
	return Event{
		ID:     uuid.New(),
		Kind:   kind,
		Source: source,
		Text:   text,
		Time:   time.Now(),
	}
}

// Hub fans events out to every connected websocket client. Slow or
// broken clients are dropped rather than blocking the publisher.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades incoming HTTP requests and keeps the connection
// subscribed until the peer goes away.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		slog.Info("event subscriber connected", "remote", r.RemoteAddr)

		h.mu.Lock()
		h.conns[conn] = struct{}{}
		h.mu.Unlock()

		// Drain the read side to notice closes and answer pings.
		go func() {
			defer h.drop(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if !websocket.IsCloseError(err,
						websocket.CloseNormalClosure,
						websocket.CloseGoingAway,
						websocket.CloseAbnormalClosure) {
						slog.Debug("subscriber read error", "err", err)
					}
					return
				}
			}
		}()
	})
}

// Publish sends the event to all subscribers.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(e); err != nil {
			slog.Debug("dropping slow subscriber", "err", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Subscribers reports the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		conn.Close()
		delete(h.conns, conn)
	}
}
