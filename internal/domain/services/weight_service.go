package services

import (
	"context"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	apperrors "github.com/ak/macrolog/internal/pkg/errors"
	"github.com/ak/macrolog/internal/pkg/logger"
	"go.uber.org/zap"
)

// WeightService records body-weight measurements, one per day. Writing the
// same date again overwrites that day's value.
type WeightService interface {
	SetWeight(ctx context.Context, uid, date string, kilograms float64) error
	DeleteWeight(ctx context.Context, uid, date string) error
	History(ctx context.Context, uid string) (map[string]float64, error)
}

type weightService struct {
	userRepo repositories.UserRepository
	logger   *logger.Logger
}

// NewWeightService creates a weight service
func NewWeightService(userRepo repositories.UserRepository, log *logger.Logger) WeightService {
	return &weightService{
		userRepo: userRepo,
		logger:   log.WithComponent("weight"),
	}
}

func (s *weightService) SetWeight(ctx context.Context, uid, date string, kilograms float64) error {
	if _, err := time.Parse(models.DateKey, date); err != nil {
		return apperrors.Validation("date must be formatted YYYY-MM-DD")
	}
	if kilograms <= 0 {
		return apperrors.Validation("weight must be positive")
	}

	err := mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		if doc.WeightHistory == nil {
			doc.WeightHistory = map[string]float64{}
		}
		doc.WeightHistory[date] = kilograms
		return map[string]any{"weightHistory": doc.WeightHistory}, nil
	})
	if err != nil {
		return err
	}

	s.logger.WithUser(uid).WithDate(date).Info("weight recorded", zap.Float64("kg", kilograms))
	return nil
}

func (s *weightService) DeleteWeight(ctx context.Context, uid, date string) error {
	return mutateUser(ctx, s.userRepo, uid, func(doc *models.UserDocument) (map[string]any, error) {
		if _, ok := doc.WeightHistory[date]; !ok {
			s.logger.WithUser(uid).WithDate(date).Warn("weight entry not found for deletion, skipping")
			return nil, nil
		}
		delete(doc.WeightHistory, date)
		return map[string]any{"weightHistory": doc.WeightHistory}, nil
	})
}

func (s *weightService) History(ctx context.Context, uid string) (map[string]float64, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc.WeightHistory == nil {
		return map[string]float64{}, nil
	}
	return doc.WeightHistory, nil
}
