package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

type LogHandler struct {
	svc    *services.LogService
	worker FeedRefresher
}

// FeedRefresher lets the handler nudge the background feed after a new
// log event lands instead of waiting for the next tick.
type FeedRefresher interface {
	RefreshNow(ctx context.Context)
}

func NewLogHandler(svc *services.LogService, worker FeedRefresher) *LogHandler {
	return &LogHandler{
		svc:    svc,
		worker: worker,
	}
}

type logHabitRequest struct {
	UserID    string     `json:"userID" binding:"required"`
	HabitName string     `json:"habitName" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

func (h *LogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/loggedHabit", h.Log)
}

func (h *LogHandler) Log(c *gin.Context) {
	var req logHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.LogHabitInput{
		UserID:    req.UserID,
		HabitName: req.HabitName,
	}
	if req.Timestamp != nil {
		input.Timestamp = *req.Timestamp
	}

	logged, err := h.svc.Log(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoggedHabitUserIDEmpty),
			errors.Is(err, domain.ErrLoggedHabitNameEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, domain.ErrLoggedHabitUnknownHabit):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	if h.worker != nil {
		// The refresh must outlive this request.
		h.worker.RefreshNow(context.WithoutCancel(c.Request.Context()))
	}

	c.JSON(http.StatusCreated, logged)
}
