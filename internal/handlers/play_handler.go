package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/contesthq/contest-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// statusUserLimitReached is the non-standard status returned when a user has
// exhausted their daily win allowance
const statusUserLimitReached = 420

// PlayHandler handles play-related HTTP requests
type PlayHandler struct {
	playService services.PlayService
}

// NewPlayHandler creates a new PlayHandler
func NewPlayHandler(playService services.PlayService) *PlayHandler {
	return &PlayHandler{
		playService: playService,
	}
}

// Play handles GET /play?contest=CODE&user=ID
func (h *PlayHandler) Play(c *gin.Context) {
	contestCode := c.Query("contest")
	if contestCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contest code is required"})
		return
	}
	userID := c.Query("user")

	result, err := h.playService.Play(c.Request.Context(), contestCode, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		case errors.Is(err, services.ErrContestInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Contest is not active today"})
		case errors.Is(err, services.ErrUserLimitReached):
			c.JSON(statusUserLimitReached, gin.H{"error": "User has reached the daily win limit"})
		case errors.Is(err, services.ErrNoPrizeConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Contest has no prize configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process play: " + err.Error()})
		}
		return
	}

	var prize gin.H
	if result.Prize != nil {
		prize = gin.H{"code": result.Prize.Code, "name": result.Prize.Name}
	}
	c.JSON(http.StatusOK, gin.H{
		"win":       result.Win,
		"prize":     prize,
		"contest":   result.Contest.Code,
		"timestamp": result.Timestamp.Format("2006-01-02 15:04:05"),
	})
}
