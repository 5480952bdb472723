package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/repository"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/storage"
)

type fixture struct {
	ctx     context.Context
	numbers *repository.NumberRepository
	states  *storage.StateStorage
	users   *storage.UserStorage
	logger  *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	numbers, err := repository.NewNumberRepository(sampling.NewRand(1))
	if err != nil {
		t.Fatalf("NewNumberRepository: %v", err)
	}

	return &fixture{
		ctx:     context.Background(),
		numbers: numbers,
		states:  storage.NewStateStorage(),
		users:   storage.NewUserStorage(),
		logger:  zap.NewNop(),
	}
}
