package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/models"
	"github.com/gin-gonic/gin"
)

// ==================== Goal handlers ====================

func (a *Application) getGoals(c *gin.Context) {
	goals, err := a.goalService.Goals(c.Request.Context(), middleware.GetUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, goals)
}

func (a *Application) updateGoals(c *gin.Context) {
	var req map[string]models.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	merged, err := a.goalService.UpdateGoals(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, merged)
}

// ==================== Weight handlers ====================

type setWeightRequest struct {
	Kilograms float64 `json:"kilograms" binding:"required"`
}

func (a *Application) getWeightHistory(c *gin.Context) {
	history, err := a.weightService.History(c.Request.Context(), middleware.GetUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, history)
}

func (a *Application) setWeight(c *gin.Context) {
	var req setWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	err := a.weightService.SetWeight(c.Request.Context(), middleware.GetUID(c), c.Param("date"), req.Kilograms)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"date": c.Param("date"), "kilograms": req.Kilograms})
}

func (a *Application) deleteWeight(c *gin.Context) {
	if err := a.weightService.DeleteWeight(c.Request.Context(), middleware.GetUID(c), c.Param("date")); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}
