// Package realtime pushes per-user events to connected websocket clients.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pageza/vitaltrack/backend/internal/logger"
)

// Event types sent to clients.
const (
	EventChatDelta   = "chat.delta"
	EventChatDone    = "chat.done"
	EventDataChanged = "data.changed"
)

const writeWait = 10 * time.Second

// Event is the JSON frame written to a client.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client is one websocket connection of a user.
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn

	// gorilla/websocket allows one concurrent writer
	writeMu sync.Mutex
	once    sync.Once
}

func (c *Client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// Hub tracks the connected clients of every user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes the client and closes its connection. Repeated calls are no-ops.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.once.Do(func() { _ = c.Conn.Close() })
}

// Connections returns the number of open connections of a user.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends an event to every connection of the user. Clients that
// fail the write are dropped.
func (h *Hub) Publish(userID uuid.UUID, eventType string, data any) {
	msg, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Error("marshal realtime event", "type", eventType, "err", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			logger.Debug("dropping realtime client", "user_id", userID, "err", err)
			h.Unregister(c)
		}
	}
}
