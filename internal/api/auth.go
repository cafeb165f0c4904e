package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// AuthHandler handles account creation and login
type AuthHandler struct {
	authService service.IAuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, authResponse(user, token))
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse(user, token))
}

func authResponse(user *models.User, token string) types.AuthResponse {
	var resp types.AuthResponse
	resp.Token = token
	resp.User.ID = user.ID.String()
	resp.User.Email = user.Email
	return resp
}
