package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/service"
)

// sendSpeech sends the utterances as audio and reports whether anything was sent.
// Speech failures are logged and never interrupt the lesson.
func (h *Handler) sendSpeech(ctx context.Context, chatID int64, utterances []entities.Utterance) bool {
	if h.speechService == nil || !h.speechService.Enabled() {
		return false
	}

	audio, err := h.speechService.Speak(ctx, utterances)
	if err != nil {
		if !errors.Is(err, service.ErrSpeechUnavailable) {
			h.logger.Warn("speech synthesis failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
		return false
	}

	for i, a := range audio {
		if err := h.send(buildSpeechAudio(chatID, i, a)); err != nil {
			return false
		}
	}

	return len(audio) > 0
}

func buildSpeechAudio(chatID int64, i int, a entities.Audio) tgbotapi.AudioConfig {
	file := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s-%d.mp3", a.Utterance.Lang, i+1),
		Bytes: a.Data,
	}

	cfg := tgbotapi.NewAudio(chatID, file)
	cfg.Title = a.Utterance.Text
	cfg.Performer = a.Utterance.Lang.String()

	return cfg
}
