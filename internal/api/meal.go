package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

type MealHandler struct {
	meals service.IMealService
}

func NewMealHandler(meals service.IMealService) *MealHandler {
	return &MealHandler{meals: meals}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/meals")
	group.GET("", h.List)
	group.POST("", h.Log)
	group.DELETE("/:id", h.Delete)
}

func (h *MealHandler) List(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	meals, err := h.meals.ListByDate(c.Request.Context(), sess, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Log(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	meal, err := h.meals.Log(c.Request.Context(), sess, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) Delete(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.meals.Delete(c.Request.Context(), sess, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
