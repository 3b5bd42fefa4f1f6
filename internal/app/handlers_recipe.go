package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Recipe handlers ====================

func (a *Application) listRecipes(c *gin.Context) {
	recipes, err := a.recipeService.Owned(c.Request.Context(), middleware.GetUID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, recipes)
}

func (a *Application) createRecipe(c *gin.Context) {
	var req services.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	recipe, err := a.recipeService.Create(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	createdResponse(c, recipe)
}

func (a *Application) searchRecipes(c *gin.Context) {
	query, limit := getSearchQuery(c)

	recipes, err := a.recipeService.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, recipes)
}

func (a *Application) getRecipe(c *gin.Context) {
	recipe, err := a.recipeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, recipe)
}

func (a *Application) getRecipeIngredients(c *gin.Context) {
	details, err := a.recipeService.Ingredients(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, details)
}

// deleteRecipe only unlinks the recipe from the caller's owned list; the
// catalog row stays.
func (a *Application) deleteRecipe(c *gin.Context) {
	if err := a.recipeService.Unlink(c.Request.Context(), middleware.GetUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}
