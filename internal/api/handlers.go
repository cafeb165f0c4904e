package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/database"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/middleware"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

const aiServiceError = "AI service error"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports liveness and, when a database is wired, its reachability.
func (h *HealthHandler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, h.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "VitalTrack API is running",
		"version": "v1.0.0",
	})
}

// session returns the authenticated session or answers 401.
func session(c *gin.Context) (*types.Session, bool) {
	sess := middleware.Session(c)
	if !sess.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return sess, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to status codes.
func respondError(c *gin.Context, err error) {
	var status int
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrMissingWeight):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidMeal),
		errors.Is(err, service.ErrUnknownActivity),
		errors.Is(err, service.ErrFoodNameRequired),
		errors.Is(err, service.ErrEmptyConversation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrQuotaExceeded):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrExportDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
		c.Status(499)
		return
	case isGatewayFailure(err):
		logger.Error("AI gateway failed", "path", c.FullPath(), "err", err)
		status, msg = http.StatusInternalServerError, aiServiceError
	default:
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		status, msg = http.StatusInternalServerError, "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func isGatewayFailure(err error) bool {
	var statusErr *gateway.StatusError
	return errors.As(err, &statusErr) ||
		errors.Is(err, gateway.ErrMissingAPIKey) ||
		errors.Is(err, gateway.ErrNoChoices) ||
		errors.Is(err, gateway.ErrUnavailable) ||
		errors.Is(err, service.ErrAnalysisFailed)
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
