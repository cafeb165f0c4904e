package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// ProfileHandler handles profile-related requests
type ProfileHandler struct {
	profileService service.IProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes registers the profile routes on an authenticated group
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.GET("", h.GetProfile)
	profile.PUT("", h.UpdateProfile)
	profile.GET("/calorie-goal", h.GetCalorieGoal)
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile. Absent fields are left unchanged.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	profile, err := h.profileService.Update(c.Request.Context(), sess, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetCalorieGoal returns the daily goal with its BMR breakdown
func (h *ProfileHandler) GetCalorieGoal(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	goal, err := h.profileService.CalorieGoal(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
