package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Email string
	Conn  *websocket.Conn

	writeMu sync.Mutex
}

// Send serializes writes to the connection. Gorilla allows only one
// concurrent writer, and broadcasts and keepalive pings come from
// different goroutines.
func (c *WSClient) Send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans completed scans out to each user's connected sockets.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.Email] == nil {
		h.clients[c.Email] = make(map[*WSClient]struct{})
	}
	h.clients[c.Email][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.Email]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Email)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// ScanCompleted broadcasts a finished scan to the scanning user. Send
// errors are ignored; the read loop notices dead connections.
func (h *RealtimeHub) ScanCompleted(email string, result map[string]any) {
	msg, _ := json.Marshal(map[string]any{
		"kind": "scan.completed",
		"scan": result,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[email] {
		_ = c.Send(websocket.TextMessage, msg)
	}
}
