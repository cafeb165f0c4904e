package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

type CheckinHandler struct {
	checkins service.ICheckinService
}

func NewCheckinHandler(checkins service.ICheckinService) *CheckinHandler {
	return &CheckinHandler{checkins: checkins}
}

func (h *CheckinHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/checkins")
	group.GET("", h.Get)
	group.PUT("", h.Upsert)
}

// Get returns the check-in for ?date= or null when none was recorded.
func (h *CheckinHandler) Get(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	checkin, err := h.checkins.Get(c.Request.Context(), sess, c.Query("date"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"checkin": nil})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkin": checkin})
}

func (h *CheckinHandler) Upsert(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	checkin, err := h.checkins.Upsert(c.Request.Context(), sess, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkin)
}
