package service

import (
	"context"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

type NumberRepository interface {
	GetByValue(ctx context.Context, value int) (entities.NumberWord, error)
	GetByIndex(ctx context.Context, idx int) (entities.NumberWord, error)
	GetRandom(ctx context.Context) (entities.NumberWord, error)
	GetAll(ctx context.Context) ([]entities.NumberWord, error)
	GetRange(ctx context.Context, from, to int) ([]entities.NumberWord, error)
	Len() int
}

// StateRepository persists trainer state as string values under fixed keys.
type StateRepository interface {
	GetAll(ctx context.Context, userID int64) (map[string]string, error)
	SetMany(ctx context.Context, userID int64, values map[string]string) error
	Delete(ctx context.Context, userID int64) error
	ListUsersWithValue(ctx context.Context, key, value string) ([]int64, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	Deactivate(ctx context.Context, userID int64) error
}

// Synthesizer turns an utterance into audio bytes and their MIME type.
type Synthesizer interface {
	Synthesize(ctx context.Context, u entities.Utterance) ([]byte, string, error)
}

// DailyNotifier delivers the number of the day to a user's chat.
type DailyNotifier interface {
	SendDailyNumber(ctx context.Context, userID, chatID int64, card entities.Card) error
}
