package repositories

import (
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/infrastructure/database"
)

// Provider holds all repository instances
type Provider struct {
	User       repositories.UserRepository
	Ingredient repositories.IngredientRepository
	Recipe     repositories.RecipeRepository
}

// NewProvider creates a new repository provider
func NewProvider(db *database.MongoDB) *Provider {
	return &Provider{
		User:       NewUserRepository(db),
		Ingredient: NewIngredientRepository(db),
		Recipe:     NewRecipeRepository(db),
	}
}
