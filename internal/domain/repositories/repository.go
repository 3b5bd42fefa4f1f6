package repositories

import (
	"context"
	"errors"

	"github.com/ak/macrolog/internal/domain/models"
)

// ErrUserNotFound is returned when no document exists for a uid.
var ErrUserNotFound = errors.New("user document not found")

// ErrVersionConflict is returned when a check-and-set update lost the race:
// the document's version moved between read and write.
var ErrVersionConflict = errors.New("user document version conflict")

// UserRepository defines operations on the per-user document. Writes are
// whole-field overwrites per key provided, guarded by an optimistic version
// check.
type UserRepository interface {
	Create(ctx context.Context, user *models.UserDocument) error
	GetByUID(ctx context.Context, uid string) (*models.UserDocument, error)
	// UpdateFields overwrites the given top-level fields if and only if the
	// stored version still matches, incrementing it on success.
	UpdateFields(ctx context.Context, uid string, version int64, fields map[string]any) error
	LinkIngredient(ctx context.Context, uid, ingredientID string) error
	UnlinkIngredient(ctx context.Context, uid, ingredientID string) error
	LinkRecipe(ctx context.Context, uid, recipeID string) error
	UnlinkRecipe(ctx context.Context, uid, recipeID string) error
}

// IngredientRepository defines operations for the global ingredient catalog.
// GetByID returns (nil, nil) for an unknown id.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetByID(ctx context.Context, id string) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Ingredient, error)
	SearchByName(ctx context.Context, substring string, limit int) ([]*models.Ingredient, error)
}

// RecipeRepository defines operations for the global recipe catalog.
// GetByID returns (nil, nil) for an unknown id.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error)
	SearchByName(ctx context.Context, substring string, limit int) ([]*models.Recipe, error)
	IncrementTimesUsed(ctx context.Context, id string) error
}
