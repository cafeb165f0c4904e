package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

type ChatHandler struct {
	chat        service.IChatService
	chatLimiter gin.HandlerFunc
}

func NewChatHandler(chat service.IChatService, chatLimiter gin.HandlerFunc) *ChatHandler {
	return &ChatHandler{chat: chat, chatLimiter: chatLimiter}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/chat")
	if h.chatLimiter != nil {
		group.POST("", h.chatLimiter, h.Stream)
	} else {
		group.POST("", h.Stream)
	}
	group.GET("/messages", h.History)
	group.DELETE("/messages", h.Clear)
}

// Stream relays the assistant's answer as text/event-stream. Errors that
// happen before the first byte is relayed are answered as JSON.
func (h *ChatHandler) Stream(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	w := &sseWriter{c: c}
	_, err := h.chat.Stream(c.Request.Context(), sess, req.Messages, w)
	if err == nil {
		if !w.started {
			// empty answer; still answer as a stream
			w.start()
		}
		return
	}
	if w.started {
		logger.Warn("chat stream interrupted", "user_id", sess.UserID, "err", err)
		return
	}
	respondError(c, err)
}

func (h *ChatHandler) History(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	messages, err := h.chat.History(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) Clear(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	if err := h.chat.Clear(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sseWriter commits the event-stream headers on the first write and flushes
// after every chunk.
type sseWriter struct {
	c       *gin.Context
	started bool
}

func (w *sseWriter) start() {
	h := w.c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.c.Status(http.StatusOK)
	w.c.Writer.WriteHeaderNow()
	w.started = true
}

func (w *sseWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.start()
	}
	n, err := w.c.Writer.Write(p)
	if err != nil {
		return n, err
	}
	w.c.Writer.Flush()
	return n, nil
}
