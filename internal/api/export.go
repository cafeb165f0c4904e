package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/service"
)

type ExportHandler struct {
	export service.IExportService
}

// NewExportHandler accepts a nil service; the route then answers 503.
func NewExportHandler(export service.IExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/export", h.Export)
}

func (h *ExportHandler) Export(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	if h.export == nil {
		respondError(c, service.ErrExportDisabled)
		return
	}
	result, err := h.export.Export(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
