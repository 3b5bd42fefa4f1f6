package services

import (
	"context"
	"errors"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/pkg/logger"
	"go.uber.org/zap"
)

// UserService bootstraps and fetches per-user documents.
type UserService interface {
	// EnsureUser returns the document for uid, creating an empty one on first
	// contact. Safe under concurrent first requests: the losing insert falls
	// back to reading the winner's document.
	EnsureUser(ctx context.Context, uid string) (*models.UserDocument, error)
	GetUser(ctx context.Context, uid string) (*models.UserDocument, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a user service
func NewUserService(userRepo repositories.UserRepository, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   log.WithComponent("user"),
	}
}

func (s *userService) EnsureUser(ctx context.Context, uid string) (*models.UserDocument, error) {
	doc, err := s.userRepo.GetByUID(ctx, uid)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	doc = models.NewUserDocument(uid)
	if err := s.userRepo.Create(ctx, doc); err != nil {
		// Another request created the document first; the unique index on
		// uid rejects the duplicate insert.
		if existing, gerr := s.userRepo.GetByUID(ctx, uid); gerr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.logger.Info("user document created", zap.String("uid", uid))
	return doc, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.UserDocument, error) {
	return s.userRepo.GetByUID(ctx, uid)
}
