package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	apperrors "github.com/ak/macrolog/internal/pkg/errors"
	"github.com/ak/macrolog/internal/pkg/logger"
	"go.uber.org/zap"
)

// RecipeService manages the global recipe catalog. A recipe's nutrient
// profile is derived from its ingredient list at creation time and stored
// denormalized on the catalog row; later ingredient edits never touch it.
type RecipeService interface {
	Create(ctx context.Context, uid string, req CreateRecipeRequest) (*models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Owned(ctx context.Context, uid string) ([]*models.Recipe, error)
	Search(ctx context.Context, substring string, limit int) ([]*models.Recipe, error)
	// Ingredients expands the recipe's ingredient list into display rows with
	// each ingredient's scaled contribution.
	Ingredients(ctx context.Context, id string) ([]RecipeIngredientDetail, error)
	Link(ctx context.Context, uid, id string) error
	Unlink(ctx context.Context, uid, id string) error
}

// CreateRecipeRequest carries a new recipe. IngredientList maps ingredient id
// to the amount one full batch consumes.
type CreateRecipeRequest struct {
	Name             string                                `json:"name" binding:"required"`
	IngredientList   map[string]models.RecipeIngredientRef `json:"ingredientList" binding:"required"`
	NumberOfServings float64                               `json:"numberOfServings" binding:"required"`
	ServingSize      float64                               `json:"servingSize" binding:"required"`
	ServingUnit      string                                `json:"servingUnit" binding:"required"`
	PricePerServing  *float64                              `json:"pricePerServing"`
}

// RecipeIngredientDetail is one expanded ingredient row of a recipe.
type RecipeIngredientDetail struct {
	IngredientID     string                `json:"ingredientId"`
	Name             string                `json:"name"`
	ServingSize      float64               `json:"servingSize"`
	ServingUnit      string                `json:"servingUnit"`
	NumberOfServings float64               `json:"numberOfServings"`
	Nutrition        models.NutritionFacts `json:"nutrition"`
}

type recipeService struct {
	recipeRepo     repositories.RecipeRepository
	ingredientRepo repositories.IngredientRepository
	userRepo       repositories.UserRepository
	logger         *logger.Logger
}

// NewRecipeService creates a recipe service
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	ingredientRepo repositories.IngredientRepository,
	userRepo repositories.UserRepository,
	log *logger.Logger,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		userRepo:       userRepo,
		logger:         log.WithComponent("recipe"),
	}
}

func (s *recipeService) Create(ctx context.Context, uid string, req CreateRecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("recipe name is required")
	}
	if len(req.IngredientList) == 0 {
		return nil, apperrors.Validation("recipe must have at least one ingredient")
	}
	if req.NumberOfServings <= 0 {
		return nil, apperrors.Validation("number of servings must be positive")
	}
	if req.ServingSize <= 0 {
		return nil, apperrors.Validation("serving size must be positive")
	}
	if req.ServingUnit == "" {
		return nil, apperrors.Validation("serving unit is required")
	}
	for id, ref := range req.IngredientList {
		if ref.ServingSize <= 0 || ref.NumberOfServings <= 0 {
			return nil, apperrors.Validation(fmt.Sprintf("ingredient %s amount must be positive", id))
		}
	}

	ingredients, err := s.resolveIngredients(ctx, req.IngredientList)
	if err != nil {
		return nil, err
	}

	// The stored profile is per recipe serving: the batch total over the
	// serving count.
	batch := models.RecipeNutrition(req.IngredientList, ingredients)
	perServing := batch.Multiply(1 / req.NumberOfServings)

	recipe := &models.Recipe{
		Name:             strings.TrimSpace(req.Name),
		IngredientList:   req.IngredientList,
		NumberOfServings: req.NumberOfServings,
		ServingSize:      req.ServingSize,
		ServingUnit:      req.ServingUnit,
		PricePerServing:  req.PricePerServing,
		CatalogNutrition: perServing.Catalog(),
		CreatedBy:        uid,
		CreatedAt:        time.Now(),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	if err := s.userRepo.LinkRecipe(ctx, uid, recipe.ID); err != nil {
		return nil, fmt.Errorf("failed to link recipe: %w", err)
	}

	s.logger.WithUser(uid).Info("recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.Int("ingredients", len(req.IngredientList)))
	return recipe, nil
}

func (s *recipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.NotFound("recipe")
	}
	return recipe, nil
}

func (s *recipeService) Owned(ctx context.Context, uid string) ([]*models.Recipe, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(doc.Recipes) == 0 {
		return []*models.Recipe{}, nil
	}
	return s.recipeRepo.GetByIDs(ctx, doc.Recipes)
}

func (s *recipeService) Search(ctx context.Context, substring string, limit int) ([]*models.Recipe, error) {
	if strings.TrimSpace(substring) == "" {
		return nil, apperrors.Validation("search term is required")
	}
	return s.recipeRepo.SearchByName(ctx, substring, limit)
}

func (s *recipeService) Ingredients(ctx context.Context, id string) ([]RecipeIngredientDetail, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.resolveIngredients(ctx, recipe.IngredientList)
	if err != nil {
		return nil, err
	}

	details := make([]RecipeIngredientDetail, 0, len(recipe.IngredientList))
	for ingredientID, ref := range recipe.IngredientList {
		ingredient := ingredients[ingredientID]
		details = append(details, RecipeIngredientDetail{
			IngredientID:     ingredientID,
			Name:             ingredient.Name,
			ServingSize:      ref.ServingSize,
			ServingUnit:      ingredient.ServingUnit,
			NumberOfServings: ref.NumberOfServings,
			Nutrition:        ingredient.ScaleByServings(ref.ServingSize, ref.NumberOfServings),
		})
	}
	return details, nil
}

func (s *recipeService) Link(ctx context.Context, uid, id string) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return apperrors.NotFound("recipe")
	}
	return s.userRepo.LinkRecipe(ctx, uid, id)
}

func (s *recipeService) Unlink(ctx context.Context, uid, id string) error {
	return s.userRepo.UnlinkRecipe(ctx, uid, id)
}

// resolveIngredients fetches every referenced catalog record and fails on the
// first dangling reference.
func (s *recipeService) resolveIngredients(ctx context.Context, list map[string]models.RecipeIngredientRef) (map[string]*models.Ingredient, error) {
	ids := make([]string, 0, len(list))
	for id := range list {
		ids = append(ids, id)
	}

	fetched, err := s.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ingredients: %w", err)
	}

	ingredients := make(map[string]*models.Ingredient, len(fetched))
	for _, ing := range fetched {
		ingredients[ing.ID] = ing
	}
	for _, id := range ids {
		if _, ok := ingredients[id]; !ok {
			return nil, apperrors.NotFound(fmt.Sprintf("ingredient %s", id))
		}
	}
	return ingredients, nil
}
