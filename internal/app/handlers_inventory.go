package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Inventory handlers ====================

func (a *Application) getInventory(c *gin.Context) {
	inventory, err := a.inventoryService.Get(c.Request.Context(), middleware.GetUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, inventory)
}

func (a *Application) addIngredientToInventory(c *gin.Context) {
	var req services.AddIngredientToInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	item, err := a.inventoryService.AddIngredient(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, item)
}

func (a *Application) addRecipeToInventory(c *gin.Context) {
	var req services.AddRecipeToInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	item, err := a.inventoryService.AddRecipe(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, item)
}
