package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/contesthq/contest-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles distribution statistics HTTP requests
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Stats handles GET /stats?contest=CODE
func (h *StatsHandler) Stats(c *gin.Context) {
	contestCode := c.Query("contest")
	if contestCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contest code is required"})
		return
	}

	now := time.Now()
	reports, err := h.statsService.ContestReport(c.Request.Context(), contestCode, now)
	if err != nil {
		if errors.Is(err, services.ErrContestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		if errors.Is(err, services.ErrContestInactive) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Contest is not active today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contest": contestCode,
		"date":    now.Format("2006-01-02"),
		"reports": reports,
	})
}
