package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitSubscribers(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers() != want {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers = %d, want %d", h.Subscribers(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	defer h.Close()

	a := dialHub(t, srv)
	b := dialHub(t, srv)
	waitSubscribers(t, h, 2)

	sent := New(KindReply, "voice", "Hello there")
	h.Publish(sent)

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Event
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read: %v", err)
		}
		if got.ID != sent.ID || got.Kind != KindReply || got.Text != "Hello there" {
			t.Fatalf("got %+v", got)
		}
	}
}

func TestHubDropsClosedClient(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	defer h.Close()

	conn := dialHub(t, srv)
	waitSubscribers(t, h, 1)

	conn.Close()
	waitSubscribers(t, h, 0)

	// Publishing with no subscribers must not block or panic.
	h.Publish(New(KindError, "", "nobody home"))
}
