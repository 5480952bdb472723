package service

import (
	"context"
	"math/rand"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
)

// FlashcardService walks the learner through the catalog one card at a time.
type FlashcardService struct {
	numbers NumberRepository
	states  StateRepository
	rng     *rand.Rand
}

func NewFlashcardService(numbers NumberRepository, states StateRepository, rng *rand.Rand) *FlashcardService {
	return &FlashcardService{
		numbers: numbers,
		states:  states,
		rng:     rng,
	}
}

// Current returns the card the learner stopped at.
func (s *FlashcardService) Current(ctx context.Context, userID int64) (*entities.Card, error) {
	return s.move(ctx, userID, func(idx, _ int) int { return idx })
}

// Next moves forward, wrapping from the last card to the first.
func (s *FlashcardService) Next(ctx context.Context, userID int64) (*entities.Card, error) {
	return s.move(ctx, userID, func(idx, total int) int { return (idx + 1) % total })
}

// Prev moves back, wrapping from the first card to the last.
func (s *FlashcardService) Prev(ctx context.Context, userID int64) (*entities.Card, error) {
	return s.move(ctx, userID, func(idx, total int) int { return (idx - 1 + total) % total })
}

// Random jumps to a uniformly chosen card.
func (s *FlashcardService) Random(ctx context.Context, userID int64) (*entities.Card, error) {
	return s.move(ctx, userID, func(_, total int) int { return sampling.Intn(s.rng, total) })
}

// Restart goes back to the first card.
func (s *FlashcardService) Restart(ctx context.Context, userID int64) (*entities.Card, error) {
	return s.move(ctx, userID, func(_, _ int) int { return 0 })
}

// Jump opens the card of the given number.
func (s *FlashcardService) Jump(ctx context.Context, userID int64, value int) (*entities.Card, error) {
	if _, err := s.numbers.GetByValue(ctx, value); err != nil {
		return nil, err
	}
	return s.move(ctx, userID, func(_, _ int) int { return value - numerals.Min })
}

func (s *FlashcardService) move(ctx context.Context, userID int64, step func(idx, total int) int) (*entities.Card, error) {
	st, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}

	total := s.numbers.Len()
	idx := st.LearnIndex
	if idx < 0 || idx >= total {
		idx = 0
	}

	next := step(idx, total)
	n, err := s.numbers.GetByIndex(ctx, next)
	if err != nil {
		return nil, err
	}

	if next != st.LearnIndex {
		st.LearnIndex = next
		if err := saveState(ctx, s.states, st, entities.StateKeyLearnIndex); err != nil {
			return nil, err
		}
	}

	card := newCard(n, next, total)
	return &card, nil
}
