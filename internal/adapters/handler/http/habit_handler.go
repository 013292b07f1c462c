package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

type HabitHandler struct {
	svc *services.CatalogService
}

func NewHabitHandler(svc *services.CatalogService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category domain.Category `json:"category" binding:"required"`
	Info     string          `json:"info"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:name", h.Get)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		Name:     req.Name,
		Category: req.Category,
		Info:     req.Info,
	}

	habit, err := h.svc.CreateHabit(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNameEmpty),
			errors.Is(err, domain.ErrHabitNameTooLong),
			errors.Is(err, domain.ErrHabitInfoTooLong),
			errors.Is(err, domain.ErrCategoryNameEmpty),
			errors.Is(err, domain.ErrInvalidColor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrHabitAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "habit already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	habits, err := h.svc.ListHabits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habits)
}

func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.svc.GetHabit(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habit)
}
