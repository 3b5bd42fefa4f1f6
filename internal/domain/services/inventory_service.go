package services

import (
	"context"
	"fmt"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	apperrors "github.com/ak/macrolog/internal/pkg/errors"
)

// InventoryService maintains the per-user inventory ledger.
type InventoryService interface {
	Get(ctx context.Context, uid string) (models.UserInventory, error)
	AddIngredient(ctx context.Context, uid string, req AddIngredientToInventoryRequest) (*models.FoodItem, error)
	AddRecipe(ctx context.Context, uid string, req AddRecipeToInventoryRequest) (*models.FoodItem, error)
	ConsumeItems(ctx context.Context, uid string, items map[string]models.FoodItem) error
}

// AddIngredientToInventoryRequest describes a quantity of a catalog
// ingredient to stock. Either Containers or ServingSize+NumberOfServings must
// be set.
type AddIngredientToInventoryRequest struct {
	IngredientID     string  `json:"ingredient_id" binding:"required"`
	Containers       float64 `json:"containers"`
	ServingSize      float64 `json:"serving_size"`
	NumberOfServings float64 `json:"number_of_servings"`
}

// AddRecipeToInventoryRequest describes a prepared quantity of a recipe.
// Either NumberOfRecipes (whole batches) or NumberOfServings must be set.
// UpdateIngredients cascades the consumption down to constituent
// ingredients; ZeroOutIngredients clamps shortfalls at zero instead of
// failing.
type AddRecipeToInventoryRequest struct {
	RecipeID           string  `json:"recipe_id" binding:"required"`
	NumberOfRecipes    float64 `json:"number_of_recipes"`
	NumberOfServings   float64 `json:"number_of_servings"`
	UpdateIngredients  bool    `json:"update_ingredients"`
	ZeroOutIngredients bool    `json:"zero_out_ingredients"`
}

type inventoryService struct {
	userRepo       repositories.UserRepository
	ingredientRepo repositories.IngredientRepository
	recipeRepo     repositories.RecipeRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	userRepo repositories.UserRepository,
	ingredientRepo repositories.IngredientRepository,
	recipeRepo repositories.RecipeRepository,
) InventoryService {
	return &inventoryService{
		userRepo:       userRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
	}
}

func (s *inventoryService) Get(ctx context.Context, uid string) (models.UserInventory, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc.Inventory == nil {
		return models.UserInventory{}, nil
	}
	return doc.Inventory, nil
}

func (s *inventoryService) AddIngredient(ctx context.Context, uid string, req AddIngredientToInventoryRequest) (*models.FoodItem, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, req.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredient: %w", err)
	}
	if ingredient == nil {
		return nil, apperrors.NotFound("ingredient")
	}

	item, err := ingredientInventoryItem(ingredient, req.Containers, req.ServingSize, req.NumberOfServings)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	err = mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		inv := doc.Inventory
		if inv == nil {
			inv = models.UserInventory{}
		}
		inv.AddIngredient(item)
		return map[string]any{"inventory": inv}, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) AddRecipe(ctx context.Context, uid string, req AddRecipeToInventoryRequest) (*models.FoodItem, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, req.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}

	item, err := recipeInventoryItem(recipe, req.NumberOfRecipes, req.NumberOfServings)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	err = mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		inv := doc.Inventory
		if inv == nil {
			inv = models.UserInventory{}
		}
		if err := inv.AddRecipe(recipe, item, req.UpdateIngredients, req.ZeroOutIngredients); err != nil {
			return nil, err
		}
		return map[string]any{"inventory": inv}, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) ConsumeItems(ctx context.Context, uid string, items map[string]models.FoodItem) error {
	if len(items) == 0 {
		return nil
	}
	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		inv := doc.Inventory
		if inv == nil {
			return nil, nil
		}
		inv.ConsumeAll(items)
		return map[string]any{"inventory": inv}, nil
	})
}

// ingredientInventoryItem builds the ledger entry for a quantity of an
// ingredient, denormalizing name and unit from the catalog record.
func ingredientInventoryItem(ingredient *models.Ingredient, containers, servingSize, numberOfServings float64) (models.FoodItem, error) {
	if containers > 0 {
		servings := models.ContainerMultiplier(containers, ingredient.ServingsPerContainer)
		return models.FoodItem{
			ID:               ingredient.ID,
			Name:             ingredient.Name,
			Kind:             models.FoodKindIngredient,
			Containers:       containers,
			ServingSize:      ingredient.ServingSize,
			NumberOfServings: servings,
			TotalAmount:      servings * ingredient.ServingSize,
			Unit:             ingredient.ServingUnit,
		}, nil
	}
	if servingSize <= 0 || numberOfServings <= 0 {
		return models.FoodItem{}, fmt.Errorf("either containers or serving size and number of servings must be positive")
	}
	return models.FoodItem{
		ID:               ingredient.ID,
		Name:             ingredient.Name,
		Kind:             models.FoodKindIngredient,
		ServingSize:      servingSize,
		NumberOfServings: numberOfServings,
		TotalAmount:      servingSize * numberOfServings,
		Unit:             ingredient.ServingUnit,
	}, nil
}

// recipeInventoryItem builds the ledger entry for a prepared quantity of a
// recipe, expressed as whole batches or individual servings.
func recipeInventoryItem(recipe *models.Recipe, numberOfRecipes, numberOfServings float64) (models.FoodItem, error) {
	servings := numberOfServings
	if numberOfRecipes > 0 {
		servings = numberOfRecipes * recipe.NumberOfServings
	}
	if servings <= 0 {
		return models.FoodItem{}, fmt.Errorf("either number of recipes or number of servings must be positive")
	}
	return models.FoodItem{
		ID:               recipe.ID,
		Name:             recipe.Name,
		Kind:             models.FoodKindRecipe,
		ServingSize:      recipe.ServingSize,
		NumberOfServings: servings,
		TotalAmount:      servings * recipe.ServingSize,
		Unit:             recipe.ServingUnit,
	}, nil
}
