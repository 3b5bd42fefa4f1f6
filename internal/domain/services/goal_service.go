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

// GoalService manages per-nutrient daily targets and reports progress
// against the nutrition ledger.
type GoalService interface {
	Goals(ctx context.Context, uid string) (map[string]models.Goal, error)
	// UpdateGoals merges the given entries over the stored set. Entries
	// already present and not named are kept as-is.
	UpdateGoals(ctx context.Context, uid string, goals map[string]models.Goal) (map[string]models.Goal, error)
	DailyProgress(ctx context.Context, uid, date string) (map[string]GoalProgress, error)
}

// GoalProgress is one nutrient's standing for a day. Remaining is not
// clamped; a negative value means the target was exceeded.
type GoalProgress struct {
	Goal      float64 `json:"goal"`
	Color     string  `json:"color,omitempty"`
	Current   float64 `json:"current"`
	Remaining float64 `json:"remaining"`
}

type goalService struct {
	userRepo  repositories.UserRepository
	nutrition NutritionService
	logger    *logger.Logger
}

// NewGoalService creates a goal service
func NewGoalService(userRepo repositories.UserRepository, nutrition NutritionService, log *logger.Logger) GoalService {
	return &goalService{
		userRepo:  userRepo,
		nutrition: nutrition,
		logger:    log.WithComponent("goal"),
	}
}

func (s *goalService) Goals(ctx context.Context, uid string) (map[string]models.Goal, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc.NutritionalGoals == nil {
		return map[string]models.Goal{}, nil
	}
	return doc.NutritionalGoals, nil
}

func (s *goalService) UpdateGoals(ctx context.Context, uid string, goals map[string]models.Goal) (map[string]models.Goal, error) {
	if len(goals) == 0 {
		return nil, apperrors.Validation("at least one goal entry is required")
	}
	for key, goal := range goals {
		if key == "" {
			return nil, apperrors.Validation("goal nutrient key must not be empty")
		}
		if goal.Goal < 0 {
			return nil, apperrors.Validation(fmt.Sprintf("goal for %s must not be negative", key))
		}
	}

	var merged map[string]models.Goal
	err := mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		if doc.NutritionalGoals == nil {
			doc.NutritionalGoals = map[string]models.Goal{}
		}
		for key, goal := range goals {
			doc.NutritionalGoals[key] = goal
		}
		merged = doc.NutritionalGoals
		return map[string]any{"nutritionalGoals": doc.NutritionalGoals}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithUser(uid).Info("nutritional goals updated", zap.Int("entries", len(goals)))
	return merged, nil
}

func (s *goalService) DailyProgress(ctx context.Context, uid, date string) (map[string]GoalProgress, error) {
	if _, err := time.Parse(models.DateKey, date); err != nil {
		return nil, apperrors.Validation("date must be formatted YYYY-MM-DD")
	}

	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	rollup, err := s.nutrition.DailyRollup(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	current := rollup.Flatten()

	progress := make(map[string]GoalProgress, len(doc.NutritionalGoals))
	for key, goal := range doc.NutritionalGoals {
		value := current[key]
		progress[key] = GoalProgress{
			Goal:      goal.Goal,
			Color:     goal.Color,
			Current:   value,
			Remaining: goal.Goal - value,
		}
	}
	return progress, nil
}
