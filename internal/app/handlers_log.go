package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Food logging handlers ====================

func (a *Application) logFood(c *gin.Context) {
	var req services.LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	result, err := a.logService.LogFood(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, result)
}

func (a *Application) deleteLoggedFood(c *gin.Context) {
	date := c.Param("date")
	slot := models.MealSlot(c.Param("meal"))
	foodID := c.Param("foodId")

	err := a.logService.DeleteLoggedFood(c.Request.Context(), middleware.GetUID(c), date, slot, foodID)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

// ==================== History handlers ====================

func (a *Application) getDailyMeals(c *gin.Context) {
	meals, err := a.mealService.DailyMealHistory(c.Request.Context(), middleware.GetUID(c), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, meals)
}

func (a *Application) getDailyNutrition(c *gin.Context) {
	history, err := a.nutritionService.DailyHistory(c.Request.Context(), middleware.GetUID(c), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, history)
}

// getDailySummary returns the day's rollup plus per-goal progress.
func (a *Application) getDailySummary(c *gin.Context) {
	uid := middleware.GetUID(c)
	date := c.Param("date")

	rollup, err := a.nutritionService.DailyRollup(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}

	progress, err := a.goalService.DailyProgress(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{
		"date":      date,
		"nutrition": rollup,
		"units":     models.NutrientUnits,
		"goals":     progress,
	})
}
