package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser registers the user or refreshes the chat they talk from.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID))
	if err != nil {
		return err
	}

	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}

	return nil
}

// Deactivate stops all outgoing messages to the user.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	return s.repository.Deactivate(ctx, userID)
}
