package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PingInterval keeps idle connections open through proxies.
var PingInterval = 25 * time.Second

type Handler struct {
	Hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler returns a handler that accepts origins allowed by checkOrigin.
// A nil checkOrigin accepts every origin.
func NewHandler(hub *Hub, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{Hub: hub, upgrader: websocket.Upgrader{CheckOrigin: checkOrigin}}
}

// Serve upgrades an authenticated request and keeps it registered until the
// client goes away.
func (h *Handler) Serve(c *gin.Context) {
	raw, ok := c.Get("user_id")
	userID, isUUID := raw.(uuid.UUID)
	if !ok || !isUUID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &Client{UserID: userID, Conn: conn}
	h.Hub.Register(cl)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(PingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.write(websocket.PingMessage, nil); err != nil {
					h.Hub.Unregister(cl)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			h.Hub.Unregister(cl)
			return
		}
	}
}
