package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/nutrition"
	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

const defaultPortionGrams = 100

// FoodHandler serves food search, portion scaling, AI analysis and catalog
// contributions.
type FoodHandler struct {
	foods          service.IFoodService
	analyzeLimiter gin.HandlerFunc
}

func NewFoodHandler(foods service.IFoodService, analyzeLimiter gin.HandlerFunc) *FoodHandler {
	return &FoodHandler{foods: foods, analyzeLimiter: analyzeLimiter}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/foods")
	group.GET("", h.Search)
	group.GET("/categories", h.Categories)
	group.GET("/:id/nutrition", h.Nutrition)
	group.POST("/catalog", h.Contribute)
	if h.analyzeLimiter != nil {
		group.POST("/analyze", h.analyzeLimiter, h.Analyze)
	} else {
		group.POST("/analyze", h.Analyze)
	}
}

func (h *FoodHandler) Search(c *gin.Context) {
	results, err := h.foods.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": results})
}

func (h *FoodHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": nutrition.Categories})
}

// Nutrition scales a food to ?weight= grams; a missing weight means one
// 100g portion and an unparseable one means zero.
func (h *FoodHandler) Nutrition(c *gin.Context) {
	weight := float64(defaultPortionGrams)
	if raw, ok := c.GetQuery("weight"); ok {
		weight = nutrition.ParseWeight(raw)
	}
	portion, err := h.foods.Nutrition(c.Request.Context(), c.Param("id"), weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, portion)
}

func (h *FoodHandler) Analyze(c *gin.Context) {
	var req types.AnalyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	analysis, err := h.foods.Analyze(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": analysis})
}

func (h *FoodHandler) Contribute(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.ContributeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	food, created, err := h.foods.Contribute(c.Request.Context(), sess, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"food": food, "created": created})
}
