package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

// CurrentFeed exposes the most recent feed published by the refresh
// worker for the configured active user.
type CurrentFeed interface {
	Current() []domain.FeedItem
}

type FeedHandler struct {
	svc     *services.FeedService
	current CurrentFeed
}

func NewFeedHandler(svc *services.FeedService, current CurrentFeed) *FeedHandler {
	return &FeedHandler{
		svc:     svc,
		current: current,
	}
}

func (h *FeedHandler) RegisterRoutes(r *gin.RouterGroup) {
	feed := r.Group("/feed")
	{
		feed.GET("", h.GetCurrent)
		feed.GET("/:userID", h.GetForUser)
	}
}

// GetCurrent serves the worker's cached feed without touching storage.
func (h *FeedHandler) GetCurrent(c *gin.Context) {
	if h.current == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feed refresh is not running"})
		return
	}

	items := h.current.Current()
	if items == nil {
		items = []domain.FeedItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *FeedHandler) GetForUser(c *gin.Context) {
	items, err := h.svc.FeedFor(c.Request.Context(), c.Param("userID"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, domain.ErrDuplicateUserCount),
			errors.Is(err, domain.ErrInconsistentStatistics):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "statistics are inconsistent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	if items == nil {
		items = []domain.FeedItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
