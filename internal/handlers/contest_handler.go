package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContestHandler handles contest administration HTTP requests
type ContestHandler struct {
	contestService services.ContestService
}

// NewContestHandler creates a new ContestHandler
func NewContestHandler(contestService services.ContestService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
	}
}

// ContestRequest is the payload for creating or updating a contest
type ContestRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// PrizeRequest is the payload for creating or updating a prize
type PrizeRequest struct {
	Code   string `json:"code" binding:"required"`
	Name   string `json:"name" binding:"required"`
	PerDay int    `json:"perday"`
}

func (r *ContestRequest) toModel() (*models.Contest, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Contest{
		Code:      r.Code,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// CreateContest handles POST /contests
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var request ContestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contest, err := request.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
		return
	}

	if err := h.contestService.CreateContest(c.Request.Context(), contest); err != nil {
		switch {
		case errors.Is(err, services.ErrContestExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Contest code already exists"})
		case errors.Is(err, services.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contest: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, contest)
}

// GetContest handles GET /contests/:code
func (h *ContestHandler) GetContest(c *gin.Context) {
	contest, err := h.contestService.GetContest(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrContestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contest: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, contest)
}

// ListContests handles GET /contests
func (h *ContestHandler) ListContests(c *gin.Context) {
	contests, err := h.contestService.ListContests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contests: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, contests)
}

// UpdateContest handles PUT /contests/:code
func (h *ContestHandler) UpdateContest(c *gin.Context) {
	existing, err := h.contestService.GetContest(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrContestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contest: " + err.Error()})
		return
	}

	var request ContestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contest, err := request.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
		return
	}
	contest.ID = existing.ID
	contest.CreatedAt = existing.CreatedAt

	if err := h.contestService.UpdateContest(c.Request.Context(), contest); err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contest: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, contest)
}

// DeleteContest handles DELETE /contests/:code
func (h *ContestHandler) DeleteContest(c *gin.Context) {
	contest, err := h.contestService.GetContest(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrContestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contest: " + err.Error()})
		return
	}

	if err := h.contestService.DeleteContest(c.Request.Context(), contest.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contest: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contest deleted"})
}

// AddPrize handles POST /contests/:code/prizes
func (h *ContestHandler) AddPrize(c *gin.Context) {
	var request PrizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize := &models.Prize{
		Code:   request.Code,
		Name:   request.Name,
		PerDay: request.PerDay,
	}
	if err := h.contestService.AddPrize(c.Request.Context(), c.Param("code"), prize); err != nil {
		switch {
		case errors.Is(err, services.ErrContestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
		case errors.Is(err, services.ErrInvalidQuota):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prize daily quota must not be negative"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prize: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// ListPrizes handles GET /contests/:code/prizes
func (h *ContestHandler) ListPrizes(c *gin.Context) {
	prizes, err := h.contestService.ListPrizes(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrContestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prizes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// UpdatePrize handles PUT /prizes/:id
func (h *ContestHandler) UpdatePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request PrizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prize := &models.Prize{
		ID:     id,
		Code:   request.Code,
		Name:   request.Name,
		PerDay: request.PerDay,
	}
	if err := h.contestService.UpdatePrize(c.Request.Context(), prize); err != nil {
		switch {
		case errors.Is(err, services.ErrPrizeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Prize not found"})
		case errors.Is(err, services.ErrInvalidQuota):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prize daily quota must not be negative"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prize: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /prizes/:id
func (h *ContestHandler) DeletePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.contestService.DeletePrize(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrPrizeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prize not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prize: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prize deleted"})
}
