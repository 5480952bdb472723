package service

import (
	"context"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
)

type NumberService struct {
	repository NumberRepository
}

func NewNumberService(repository NumberRepository) *NumberService {
	return &NumberService{repository: repository}
}

func (s *NumberService) GetByValue(ctx context.Context, value int) (entities.NumberWord, error) {
	return s.repository.GetByValue(ctx, value)
}

func (s *NumberService) GetAll(ctx context.Context) ([]entities.NumberWord, error) {
	return s.repository.GetAll(ctx)
}

// Cards returns flashcards for the numbers from..to inclusive.
func (s *NumberService) Cards(ctx context.Context, from, to int) ([]entities.Card, error) {
	numbers, err := s.repository.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	cards := make([]entities.Card, 0, len(numbers))
	for _, n := range numbers {
		cards = append(cards, newCard(n, n.Value-numerals.Min, s.repository.Len()))
	}

	return cards, nil
}

func newCard(n entities.NumberWord, position, total int) entities.Card {
	return entities.Card{
		Number:   n,
		Thai:     numerals.MustThai(n.Value),
		Position: position,
		Total:    total,
	}
}
