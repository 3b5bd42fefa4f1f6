package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	apperrors "github.com/ak/macrolog/internal/pkg/errors"
	"github.com/ak/macrolog/internal/pkg/logger"
	"go.uber.org/zap"
)

// LogService is the composed log-food use case: validate, reconcile
// inventory, write the meal ledger and write the nutrition ledger — in that
// fixed order. All three ledgers live on the one user document, so the
// mutations are computed in memory and persisted in a single document write;
// a reconciliation failure aborts before anything is persisted.
type LogService interface {
	LogFood(ctx context.Context, uid string, req LogFoodRequest) (*LogFoodResult, error)
	// DeleteLoggedFood removes one food entry and subtracts its re-derived
	// nutrient contribution in the same write. Missing entries are an
	// idempotent no-op. Inventory is not restored.
	DeleteLoggedFood(ctx context.Context, uid, date string, slot models.MealSlot, foodID string) error
}

// LogFoodRequest describes one log-food action.
type LogFoodRequest struct {
	Date string          `json:"date" binding:"required"`
	Meal models.MealSlot `json:"meal" binding:"required"`
	// ConsumeInventory decrements the logged quantities from the user's
	// inventory ledger and requires sufficient balances for tracked items.
	ConsumeInventory bool          `json:"consume_inventory"`
	Items            []LogFoodItem `json:"items" binding:"required"`
}

// LogFoodItem is one food quantity being logged. Ingredients take either
// Containers or ServingSize+NumberOfServings; recipes take either
// NumberOfRecipes or ServingSize+NumberOfServings.
type LogFoodItem struct {
	ID               string          `json:"id" binding:"required"`
	Kind             models.FoodKind `json:"kind" binding:"required"`
	Containers       float64         `json:"containers"`
	NumberOfRecipes  float64         `json:"number_of_recipes"`
	ServingSize      float64         `json:"serving_size"`
	NumberOfServings float64         `json:"number_of_servings"`
}

// LogFoodResult reports what was written.
type LogFoodResult struct {
	Date      string                     `json:"date"`
	Meal      models.MealSlot            `json:"meal"`
	Food      map[string]models.FoodItem `json:"food"`
	Nutrition models.NutritionFacts      `json:"nutrition"`
}

type logService struct {
	userRepo       repositories.UserRepository
	ingredientRepo repositories.IngredientRepository
	recipeRepo     repositories.RecipeRepository
	logger         *logger.Logger
}

// NewLogService creates the composed log-food service
func NewLogService(
	userRepo repositories.UserRepository,
	ingredientRepo repositories.IngredientRepository,
	recipeRepo repositories.RecipeRepository,
	log *logger.Logger,
) LogService {
	return &logService{
		userRepo:       userRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		logger:         log.WithComponent("log"),
	}
}

func (s *logService) LogFood(ctx context.Context, uid string, req LogFoodRequest) (*LogFoodResult, error) {
	if err := validateLogRequest(req); err != nil {
		return nil, err
	}

	food, nutrition, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	err = mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		fields := map[string]any{}

		if req.ConsumeInventory {
			inv := doc.Inventory
			if inv == nil {
				inv = models.UserInventory{}
			}
			for _, item := range food {
				entry, ok := inv[item.ID]
				if !ok {
					return nil, apperrors.InventoryMissing("Food not in inventory")
				}
				if item.TotalAmount > entry.TotalAmount {
					return nil, apperrors.InventoryInsufficient("Not enough amount in inventory")
				}
			}
			inv.ConsumeAll(food)
			fields["inventory"] = inv
		}

		mergeMealEntry(doc, req.Date, req.Meal, food)
		addSlotNutrition(doc, req.Date, req.Meal, nutrition)
		fields["mealHistory"] = doc.MealHistory
		fields["nutritionalHistory"] = doc.NutritionalHistory
		return fields, nil
	})
	if err != nil {
		return nil, err
	}

	// Usage counters are advisory; a failed bump never fails the log.
	for _, item := range food {
		if item.Kind == models.FoodKindRecipe {
			if err := s.recipeRepo.IncrementTimesUsed(ctx, item.ID); err != nil {
				s.logger.Warn("failed to bump recipe usage counter",
					zap.String("recipe_id", item.ID), zap.Error(err))
			}
		}
	}

	s.logger.WithUser(uid).WithDate(req.Date).WithMeal(string(req.Meal)).
		Info("food logged", zap.Int("items", len(food)))

	return &LogFoodResult{
		Date:      req.Date,
		Meal:      req.Meal,
		Food:      food,
		Nutrition: nutrition,
	}, nil
}

func (s *logService) DeleteLoggedFood(ctx context.Context, uid, date string, slot models.MealSlot, foodID string) error {
	if _, err := time.Parse(models.DateKey, date); err != nil {
		return apperrors.Validation("date must be formatted YYYY-MM-DD")
	}
	if !slot.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown meal slot %q", slot))
	}

	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		entry, ok := doc.MealEntry(date, slot)
		if !ok {
			s.logger.WithUser(uid).WithDate(date).Warn("meal entry not found for deletion, skipping")
			return nil, nil
		}
		item, ok := entry.Food[foodID]
		if !ok {
			s.logger.WithUser(uid).WithDate(date).Warn("food entry not found for deletion, skipping")
			return nil, nil
		}

		contribution, err := foodContribution(ctx, s.ingredientRepo, s.recipeRepo, item)
		if err != nil {
			return nil, err
		}

		delete(entry.Food, foodID)
		doc.SetMealEntry(date, slot, entry)

		if current, ok := doc.SlotNutrition(date, slot); ok {
			doc.SetSlotNutrition(date, slot, current.Subtract(contribution))
		}

		return map[string]any{
			"mealHistory":        doc.MealHistory,
			"nutritionalHistory": doc.NutritionalHistory,
		}, nil
	})
}

func validateLogRequest(req LogFoodRequest) error {
	if _, err := time.Parse(models.DateKey, req.Date); err != nil {
		return apperrors.Validation("date must be formatted YYYY-MM-DD")
	}
	if !req.Meal.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown meal slot %q", req.Meal))
	}
	if len(req.Items) == 0 {
		return apperrors.Validation("at least one food item is required")
	}
	for _, item := range req.Items {
		if item.ID == "" {
			return apperrors.Validation("food item id is required")
		}
		switch item.Kind {
		case models.FoodKindIngredient:
			if item.Containers <= 0 && (item.ServingSize <= 0 || item.NumberOfServings <= 0) {
				return apperrors.Validation("ingredient quantity must be containers or serving size and number of servings")
			}
		case models.FoodKindRecipe:
			if item.NumberOfRecipes <= 0 && item.NumberOfServings <= 0 {
				return apperrors.Validation("recipe quantity must be number of recipes or number of servings")
			}
		default:
			return apperrors.Validation(fmt.Sprintf("unknown food kind %q", item.Kind))
		}
	}
	return nil
}

// resolveItems turns the requested quantities into ledger entries plus their
// summed nutrient contribution, using the catalog records and the shared
// proportional scaler. Repeated ids merge additively.
func (s *logService) resolveItems(ctx context.Context, items []LogFoodItem) (map[string]models.FoodItem, models.NutritionFacts, error) {
	food := make(map[string]models.FoodItem, len(items))
	total := models.ZeroNutrition()

	for _, req := range items {
		var (
			item         models.FoodItem
			contribution models.NutritionFacts
			err          error
		)

		switch req.Kind {
		case models.FoodKindRecipe:
			recipe, ferr := s.recipeRepo.GetByID(ctx, req.ID)
			if ferr != nil {
				return nil, models.NutritionFacts{}, fmt.Errorf("failed to fetch recipe: %w", ferr)
			}
			if recipe == nil {
				return nil, models.NutritionFacts{}, apperrors.NotFound("recipe")
			}
			item, err = recipeInventoryItem(recipe, req.NumberOfRecipes, req.NumberOfServings)
			if err != nil {
				return nil, models.NutritionFacts{}, apperrors.Validation(err.Error())
			}
			contribution = recipe.ScaleByServings(item.ServingSize, item.NumberOfServings)
		default:
			ingredient, ferr := s.ingredientRepo.GetByID(ctx, req.ID)
			if ferr != nil {
				return nil, models.NutritionFacts{}, fmt.Errorf("failed to fetch ingredient: %w", ferr)
			}
			if ingredient == nil {
				return nil, models.NutritionFacts{}, apperrors.NotFound("ingredient")
			}
			item, err = ingredientInventoryItem(ingredient, req.Containers, req.ServingSize, req.NumberOfServings)
			if err != nil {
				return nil, models.NutritionFacts{}, apperrors.Validation(err.Error())
			}
			contribution = ingredient.ScaleByServings(item.ServingSize, item.NumberOfServings)
		}

		if existing, ok := food[item.ID]; ok {
			existing.Merge(item)
			food[item.ID] = existing
		} else {
			food[item.ID] = item
		}
		total = total.Add(contribution)
	}

	return food, total, nil
}
