package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/middleware"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/service"
)

// Dependencies are the services the HTTP API is built from. Nil rate
// limiters disable limiting; a nil Hub disables the websocket endpoint.
type Dependencies struct {
	DB         *gorm.DB
	Auth       service.IAuthService
	Profiles   service.IProfileService
	Activities service.IActivityService
	Meals      service.IMealService
	Checkins   service.ICheckinService
	Foods      service.IFoodService
	Chat       service.IChatService
	Dashboard  service.IDashboardService
	Export     service.IExportService
	Hub        *realtime.Hub

	// CORSOrigins also limits which browser origins may open the websocket.
	CORSOrigins []string

	ChatLimiter    *middleware.RateLimiter
	AnalyzeLimiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes under /api/v1
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	v1 := router.Group("/api/v1")
	v1.GET("/health", NewHealthHandler(deps.DB).Check)

	NewAuthHandler(deps.Auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))

	NewProfileHandler(deps.Profiles).RegisterRoutes(protected)
	NewActivityHandler(deps.Activities).RegisterRoutes(protected)
	NewMealHandler(deps.Meals).RegisterRoutes(protected)
	NewCheckinHandler(deps.Checkins).RegisterRoutes(protected)
	NewFoodHandler(deps.Foods, limiter(deps.AnalyzeLimiter)).RegisterRoutes(protected)
	NewChatHandler(deps.Chat, limiter(deps.ChatLimiter)).RegisterRoutes(protected)
	NewDashboardHandler(deps.Dashboard).RegisterRoutes(protected)
	NewExportHandler(deps.Export).RegisterRoutes(protected)

	if deps.Hub != nil {
		v1.GET("/ws", middleware.WebsocketAuth(deps.Auth), realtime.NewHandler(deps.Hub, middleware.OriginAllowed(deps.CORSOrigins)).Serve)
	}
}

func limiter(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}
