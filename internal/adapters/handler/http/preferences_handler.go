package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

type PreferencesHandler struct {
	svc *services.PreferencesService
}

func NewPreferencesHandler(svc *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

func (h *PreferencesHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users/:id")
	{
		users.GET("/favorites", h.ListFavorites)
		users.POST("/favorites/:habit", h.ToggleFavorite)
		users.GET("/following", h.ListFollowing)
		users.POST("/following/:followedID", h.ToggleFollow)
	}
}

func (h *PreferencesHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.svc.Favorites(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if favorites == nil {
		favorites = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *PreferencesHandler) ToggleFavorite(c *gin.Context) {
	active, err := h.svc.ToggleFavorite(c.Request.Context(), c.Param("id"), c.Param("habit"))
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorite": active})
}

func (h *PreferencesHandler) ListFollowing(c *gin.Context) {
	following, err := h.svc.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if following == nil {
		following = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *PreferencesHandler) ToggleFollow(c *gin.Context) {
	following, err := h.svc.ToggleFollow(c.Request.Context(), c.Param("id"), c.Param("followedID"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
