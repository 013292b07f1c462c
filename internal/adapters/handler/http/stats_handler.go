package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

type StatsHandler struct {
	repo domain.StatsRepository
}

func NewStatsHandler(repo domain.StatsRepository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habitStats", h.GetHabitStats)
	r.GET("/userStats", h.GetUserStats)
	r.GET("/combinedStats", h.GetCombinedStats)
	r.GET("/userLeadingStats/:id", h.GetUserLeadingStats)
}

// splitFilter turns a comma separated query value into a filter slice.
// An absent or empty value means no filter.
func splitFilter(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *StatsHandler) GetHabitStats(c *gin.Context) {
	names := splitFilter(c.Query("names"))

	stats, err := h.repo.HabitStats(c.Request.Context(), names)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	ids := splitFilter(c.Query("ids"))

	stats, err := h.repo.UserStats(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetCombinedStats(c *gin.Context) {
	stats, err := h.repo.Combined(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetUserLeadingStats(c *gin.Context) {
	stats, err := h.repo.LeadingStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
