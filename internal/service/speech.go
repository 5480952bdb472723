package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
)

var ErrSpeechUnavailable = errors.New("speech unavailable")

const defaultSpeechRate = 0.9

var (
	langEnglish = language.AmericanEnglish
	langThai    = language.MustParse("th-TH")
)

// SpeechService builds the phrases the trainer says and turns them into audio.
type SpeechService struct {
	synth  Synthesizer
	rate   float64
	logger *zap.Logger
}

// NewSpeechService creates a speech service. A nil synthesizer disables speech.
func NewSpeechService(synth Synthesizer, rate float64, logger *zap.Logger) *SpeechService {
	if rate <= 0 {
		rate = defaultSpeechRate
	}
	return &SpeechService{synth: synth, rate: rate, logger: logger}
}

func (s *SpeechService) Enabled() bool {
	return s.synth != nil
}

// Prompt says the number in English and then in Thai.
func (s *SpeechService) Prompt(n entities.NumberWord) []entities.Utterance {
	return []entities.Utterance{
		{Text: n.Word, Lang: langEnglish, Rate: s.rate},
		{Text: numerals.MustThai(n.Value), Lang: langThai, Rate: s.rate},
	}
}

func (s *SpeechService) Praise(n entities.NumberWord) []entities.Utterance {
	return []entities.Utterance{
		{Text: "Great! " + n.Word, Lang: langEnglish, Rate: s.rate},
	}
}

func (s *SpeechService) Correction(n entities.NumberWord) []entities.Utterance {
	return []entities.Utterance{
		{Text: "Let's try again. The correct answer is " + n.Word, Lang: langEnglish, Rate: s.rate},
	}
}

// Speak synthesizes the utterances in order.
func (s *SpeechService) Speak(ctx context.Context, utterances []entities.Utterance) ([]entities.Audio, error) {
	if s.synth == nil {
		return nil, ErrSpeechUnavailable
	}

	out := make([]entities.Audio, 0, len(utterances))
	for _, u := range utterances {
		data, mimeType, err := s.synth.Synthesize(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("synthesize %q (%s): %w", u.Text, u.Lang, err)
		}
		out = append(out, entities.Audio{Utterance: u, Data: data, MIMEType: mimeType})
	}

	s.logger.Debug("speech synthesized", zap.Int("utterances", len(out)))

	return out, nil
}
