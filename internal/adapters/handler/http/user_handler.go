package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

type UserHandler struct {
	svc *services.CatalogService
}

func NewUserHandler(svc *services.CatalogService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

type registerUserRequest struct {
	Name  string        `json:"name" binding:"required"`
	Color *domain.Color `json:"color"`
	Bio   string        `json:"bio"`
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.RegisterUserInput{
		Name:  req.Name,
		Color: req.Color,
		Bio:   req.Bio,
	}

	user, err := h.svc.RegisterUser(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNameEmpty), errors.Is(err, domain.ErrInvalidColor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "user name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
