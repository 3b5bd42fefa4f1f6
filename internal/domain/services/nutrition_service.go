package services

import (
	"context"
	"fmt"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/pkg/logger"
)

// NutritionService maintains the per-user, per-date, per-slot nutrition
// ledger. Writes are always paired with the corresponding meal-ledger write
// by the callers; the two must not drift.
type NutritionService interface {
	AddToNutritionalHistory(ctx context.Context, uid, date string, slot models.MealSlot, nutrition models.NutritionFacts) error
	// DeleteFromNutritionalHistory re-derives the removed food's contribution
	// from its catalog record and subtracts it, clamped at zero.
	DeleteFromNutritionalHistory(ctx context.Context, uid, date string, slot models.MealSlot, food models.FoodItem) error
	DailyHistory(ctx context.Context, uid, date string) (map[models.MealSlot]models.NutritionFacts, error)
	// DailyRollup sums the date's slots into one profile.
	DailyRollup(ctx context.Context, uid, date string) (models.NutritionFacts, error)
}

type nutritionService struct {
	userRepo       repositories.UserRepository
	ingredientRepo repositories.IngredientRepository
	recipeRepo     repositories.RecipeRepository
	logger         *logger.Logger
}

// NewNutritionService creates a new nutritional history service
func NewNutritionService(
	userRepo repositories.UserRepository,
	ingredientRepo repositories.IngredientRepository,
	recipeRepo repositories.RecipeRepository,
	log *logger.Logger,
) NutritionService {
	return &nutritionService{
		userRepo:       userRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		logger:         log.WithComponent("nutrition"),
	}
}

func (s *nutritionService) AddToNutritionalHistory(ctx context.Context, uid, date string, slot models.MealSlot, nutrition models.NutritionFacts) error {
	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		addSlotNutrition(doc, date, slot, nutrition)
		return map[string]any{"nutritionalHistory": doc.NutritionalHistory}, nil
	})
}

func (s *nutritionService) DeleteFromNutritionalHistory(ctx context.Context, uid, date string, slot models.MealSlot, food models.FoodItem) error {
	contribution, err := foodContribution(ctx, s.ingredientRepo, s.recipeRepo, food)
	if err != nil {
		return err
	}

	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		current, ok := doc.SlotNutrition(date, slot)
		if !ok {
			s.logger.WithUser(uid).WithDate(date).Warn("nutrition entry not found for deletion, skipping")
			return nil, nil
		}
		doc.SetSlotNutrition(date, slot, current.Subtract(contribution))
		return map[string]any{"nutritionalHistory": doc.NutritionalHistory}, nil
	})
}

func (s *nutritionService) DailyHistory(ctx context.Context, uid, date string) (map[models.MealSlot]models.NutritionFacts, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	slots, ok := doc.NutritionalHistory[date]
	if !ok {
		return map[models.MealSlot]models.NutritionFacts{}, nil
	}
	return slots, nil
}

func (s *nutritionService) DailyRollup(ctx context.Context, uid, date string) (models.NutritionFacts, error) {
	slots, err := s.DailyHistory(ctx, uid, date)
	if err != nil {
		return models.NutritionFacts{}, err
	}
	return models.SumSlots(slots), nil
}

// addSlotNutrition accumulates a contribution into the (date, slot) cell in
// memory. Shared with the composed log-food path.
func addSlotNutrition(doc *models.UserDocument, date string, slot models.MealSlot, nutrition models.NutritionFacts) {
	if current, ok := doc.SlotNutrition(date, slot); ok {
		doc.SetSlotNutrition(date, slot, current.Add(nutrition))
	} else {
		doc.SetSlotNutrition(date, slot, nutrition)
	}
}

// foodContribution re-derives a logged item's nutrient contribution from its
// canonical catalog record, scaled by the quantity recorded on the item.
func foodContribution(
	ctx context.Context,
	ingredients repositories.IngredientRepository,
	recipes repositories.RecipeRepository,
	item models.FoodItem,
) (models.NutritionFacts, error) {
	switch item.Kind {
	case models.FoodKindRecipe:
		recipe, err := recipes.GetByID(ctx, item.ID)
		if err != nil {
			return models.NutritionFacts{}, fmt.Errorf("failed to fetch recipe: %w", err)
		}
		if recipe == nil {
			return models.NutritionFacts{}, fmt.Errorf("recipe not found: %s", item.ID)
		}
		return recipe.ScaleByServings(item.ServingSize, item.NumberOfServings), nil
	default:
		ingredient, err := ingredients.GetByID(ctx, item.ID)
		if err != nil {
			return models.NutritionFacts{}, fmt.Errorf("failed to fetch ingredient: %w", err)
		}
		if ingredient == nil {
			return models.NutritionFacts{}, fmt.Errorf("ingredient not found: %s", item.ID)
		}
		return ingredient.ScaleByServings(item.ServingSize, item.NumberOfServings), nil
	}
}
