package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

type ActivityHandler struct {
	activities service.IActivityService
}

func NewActivityHandler(activities service.IActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/activities")
	group.GET("", h.List)
	group.POST("", h.Log)
	group.GET("/types", h.Types)
	group.DELETE("/:id", h.Delete)
}

func (h *ActivityHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	activities, err := h.activities.ListByDate(c.Request.Context(), sess, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// Log records a workout, estimating calories from the profile weight unless
// the request carries them.
func (h *ActivityHandler) Log(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	activity, err := h.activities.Log(c.Request.Context(), sess, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (h *ActivityHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types":       nutrition.ActivityTypes(),
		"intensities": nutrition.Intensities,
	})
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.activities.Delete(c.Request.Context(), sess, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
