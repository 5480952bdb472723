package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
	Deactivate(ctx context.Context, userID int64) error
}

type NumberService interface {
	Cards(ctx context.Context, from, to int) ([]entities.Card, error)
}

type FlashcardService interface {
	Current(ctx context.Context, userID int64) (*entities.Card, error)
	Next(ctx context.Context, userID int64) (*entities.Card, error)
	Prev(ctx context.Context, userID int64) (*entities.Card, error)
	Random(ctx context.Context, userID int64) (*entities.Card, error)
	Restart(ctx context.Context, userID int64) (*entities.Card, error)
	Jump(ctx context.Context, userID int64, value int) (*entities.Card, error)
}

type QuizService interface {
	Current(ctx context.Context, userID int64) (*entities.Question, error)
	Answer(ctx context.Context, userID int64, round string, position, picked int) (*entities.AnswerResult, error)
	Summary(ctx context.Context, userID int64) (entities.QuizSummary, error)
	Reset(ctx context.Context, userID int64) (*entities.Question, error)
}

type StateService interface {
	Load(ctx context.Context, userID int64) (*entities.TrainerState, error)
	SetMode(ctx context.Context, userID int64, mode entities.Mode) error
	ToggleDaily(ctx context.Context, userID int64) (bool, error)
	Reset(ctx context.Context, userID int64) error
}

type SpeechService interface {
	Enabled() bool
	Prompt(n entities.NumberWord) []entities.Utterance
	Praise(n entities.NumberWord) []entities.Utterance
	Correction(n entities.NumberWord) []entities.Utterance
	Speak(ctx context.Context, utterances []entities.Utterance) ([]entities.Audio, error)
}
