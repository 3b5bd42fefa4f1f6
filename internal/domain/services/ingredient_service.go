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

// IngredientService manages the global ingredient catalog and each user's
// owned links into it. Catalog rows are immutable once created; "removing"
// an ingredient only unlinks it from the caller's owned list.
type IngredientService interface {
	Create(ctx context.Context, uid string, req CreateIngredientRequest) (*models.Ingredient, error)
	Get(ctx context.Context, id string) (*models.Ingredient, error)
	// Owned returns the caller's linked ingredients. Links whose catalog row
	// disappeared are skipped.
	Owned(ctx context.Context, uid string) ([]*models.Ingredient, error)
	Search(ctx context.Context, substring string, limit int) ([]*models.Ingredient, error)
	Link(ctx context.Context, uid, id string) error
	Unlink(ctx context.Context, uid, id string) error
}

// CreateIngredientRequest carries a new catalog entry as entered from a
// nutrition label. Nil nutrient fields mean the label does not list them.
type CreateIngredientRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Brand                string   `json:"brand"`
	ServingSize          float64  `json:"servingSize" binding:"required"`
	ServingUnit          string   `json:"servingUnit" binding:"required"`
	ServingsPerContainer float64  `json:"servingsPerContainer"`
	PricePerContainer    *float64 `json:"pricePerContainer"`

	models.CatalogNutrition
}

type ingredientService struct {
	ingredientRepo repositories.IngredientRepository
	userRepo       repositories.UserRepository
	logger         *logger.Logger
}

// NewIngredientService creates an ingredient service
func NewIngredientService(
	ingredientRepo repositories.IngredientRepository,
	userRepo repositories.UserRepository,
	log *logger.Logger,
) IngredientService {
	return &ingredientService{
		ingredientRepo: ingredientRepo,
		userRepo:       userRepo,
		logger:         log.WithComponent("ingredient"),
	}
}

func (s *ingredientService) Create(ctx context.Context, uid string, req CreateIngredientRequest) (*models.Ingredient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("ingredient name is required")
	}
	if req.ServingSize <= 0 {
		return nil, apperrors.Validation("serving size must be positive")
	}
	if req.ServingUnit == "" {
		return nil, apperrors.Validation("serving unit is required")
	}
	if req.ServingsPerContainer < 0 {
		return nil, apperrors.Validation("servings per container must not be negative")
	}

	ingredient := &models.Ingredient{
		Name:                 strings.TrimSpace(req.Name),
		Brand:                strings.TrimSpace(req.Brand),
		ServingSize:          req.ServingSize,
		ServingUnit:          req.ServingUnit,
		ServingsPerContainer: req.ServingsPerContainer,
		PricePerContainer:    req.PricePerContainer,
		CatalogNutrition:     req.CatalogNutrition,
		CreatedBy:            uid,
		CreatedAt:            time.Now(),
	}

	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	if err := s.userRepo.LinkIngredient(ctx, uid, ingredient.ID); err != nil {
		return nil, fmt.Errorf("failed to link ingredient: %w", err)
	}

	s.logger.WithUser(uid).Info("ingredient created",
		zap.String("ingredient_id", ingredient.ID),
		zap.String("name", ingredient.Name))
	return ingredient, nil
}

func (s *ingredientService) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apperrors.NotFound("ingredient")
	}
	return ingredient, nil
}

func (s *ingredientService) Owned(ctx context.Context, uid string) ([]*models.Ingredient, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(doc.Ingredients) == 0 {
		return []*models.Ingredient{}, nil
	}
	return s.ingredientRepo.GetByIDs(ctx, doc.Ingredients)
}

func (s *ingredientService) Search(ctx context.Context, substring string, limit int) ([]*models.Ingredient, error) {
	if strings.TrimSpace(substring) == "" {
		return nil, apperrors.Validation("search term is required")
	}
	return s.ingredientRepo.SearchByName(ctx, substring, limit)
}

func (s *ingredientService) Link(ctx context.Context, uid, id string) error {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return apperrors.NotFound("ingredient")
	}
	return s.userRepo.LinkIngredient(ctx, uid, id)
}

func (s *ingredientService) Unlink(ctx context.Context, uid, id string) error {
	return s.userRepo.UnlinkIngredient(ctx, uid, id)
}
