package services

import (
	"context"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/pkg/logger"
)

// MealService maintains the per-user, per-date, per-slot meal ledger.
type MealService interface {
	// AddToMealHistory folds food into the (date, slot) entry, merging
	// quantities for food already logged there.
	AddToMealHistory(ctx context.Context, uid, date string, slot models.MealSlot, food map[string]models.FoodItem) error
	// DeleteFoodFromMealHistory removes a single food entry. A missing entry
	// or food id is an idempotent no-op, not an error.
	DeleteFoodFromMealHistory(ctx context.Context, uid, date string, slot models.MealSlot, foodID string) error
	DailyMealHistory(ctx context.Context, uid, date string) (map[models.MealSlot]models.DailyMealEntry, error)
}

type mealService struct {
	userRepo repositories.UserRepository
	logger   *logger.Logger
}

// NewMealService creates a new meal history service
func NewMealService(userRepo repositories.UserRepository, log *logger.Logger) MealService {
	return &mealService{
		userRepo: userRepo,
		logger:   log.WithComponent("meals"),
	}
}

func (s *mealService) AddToMealHistory(ctx context.Context, uid, date string, slot models.MealSlot, food map[string]models.FoodItem) error {
	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		mergeMealEntry(doc, date, slot, food)
		return map[string]any{"mealHistory": doc.MealHistory}, nil
	})
}

func (s *mealService) DeleteFoodFromMealHistory(ctx context.Context, uid, date string, slot models.MealSlot, foodID string) error {
	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		if !removeMealFood(doc, date, slot, foodID) {
			s.logger.WithUser(uid).WithDate(date).Warn("food entry not found for deletion, skipping")
			return nil, nil
		}
		return map[string]any{"mealHistory": doc.MealHistory}, nil
	})
}

func (s *mealService) DailyMealHistory(ctx context.Context, uid, date string) (map[models.MealSlot]models.DailyMealEntry, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	slots, ok := doc.MealHistory[date]
	if !ok {
		return map[models.MealSlot]models.DailyMealEntry{}, nil
	}
	return slots, nil
}

// mergeMealEntry applies the additive meal-ledger merge to the document in
// memory. Shared with the composed log-food path so both write identical
// entries.
func mergeMealEntry(doc *models.UserDocument, date string, slot models.MealSlot, food map[string]models.FoodItem) {
	entry, ok := doc.MealEntry(date, slot)
	if !ok {
		entry = models.DailyMealEntry{Food: map[string]models.FoodItem{}, Meal: slot}
	}
	entry.MergeFood(food)
	doc.SetMealEntry(date, slot, entry)
}

// removeMealFood deletes one food key from the (date, slot) entry, reporting
// whether anything was removed.
func removeMealFood(doc *models.UserDocument, date string, slot models.MealSlot, foodID string) bool {
	entry, ok := doc.MealEntry(date, slot)
	if !ok {
		return false
	}
	if _, ok := entry.Food[foodID]; !ok {
		return false
	}
	delete(entry.Food, foodID)
	doc.SetMealEntry(date, slot, entry)
	return true
}
