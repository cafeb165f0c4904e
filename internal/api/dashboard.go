package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/service"
)

// DashboardHandler serves the daily summary
type DashboardHandler struct {
	dashboard service.IDashboardService
}

func NewDashboardHandler(dashboard service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetSummary)
}

// GetSummary handles GET /dashboard?date=
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	summary, err := h.dashboard.Summary(c.Request.Context(), sess, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
