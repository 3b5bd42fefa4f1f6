package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Ingredient handlers ====================

func (a *Application) listIngredients(c *gin.Context) {
	uid := middleware.GetUID(c)

	ingredients, err := a.ingredientService.Owned(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, ingredients)
}

func (a *Application) createIngredient(c *gin.Context) {
	var req services.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	ingredient, err := a.ingredientService.Create(c.Request.Context(), middleware.GetUID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	createdResponse(c, ingredient)
}

func (a *Application) searchIngredients(c *gin.Context) {
	query, limit := getSearchQuery(c)

	ingredients, err := a.ingredientService.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, ingredients)
}

func (a *Application) getIngredient(c *gin.Context) {
	ingredient, err := a.ingredientService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, ingredient)
}

// deleteIngredient only unlinks the ingredient from the caller's owned list;
// the catalog row stays for other users and existing history entries.
func (a *Application) deleteIngredient(c *gin.Context) {
	if err := a.ingredientService.Unlink(c.Request.Context(), middleware.GetUID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}
