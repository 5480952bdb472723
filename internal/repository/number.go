package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
)

var ErrNumberNotFound = errors.New("number not found")

// NumberRepository provides access to the catalog of numbers 1..100.
// The catalog is generated once and never changes afterwards.
type NumberRepository struct {
	numbers []entities.NumberWord
	rng     *rand.Rand
}

// NewNumberRepository builds the catalog. rng may be nil.
func NewNumberRepository(rng *rand.Rand) (*NumberRepository, error) {
	numbers, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	return &NumberRepository{
		numbers: numbers,
		rng:     rng,
	}, nil
}

// GetByValue returns the entry for value (1-100).
func (r *NumberRepository) GetByValue(_ context.Context, value int) (entities.NumberWord, error) {
	if value < numerals.Min || value > numerals.Max {
		return entities.NumberWord{}, fmt.Errorf("get number %d: %w", value, numerals.ErrInvalidArgument)
	}

	// The catalog is contiguous, so the value maps straight onto an index.
	return r.numbers[value-numerals.Min], nil
}

// GetByIndex returns the entry at a zero-based catalog position.
func (r *NumberRepository) GetByIndex(_ context.Context, idx int) (entities.NumberWord, error) {
	if idx < 0 || idx >= len(r.numbers) {
		return entities.NumberWord{}, fmt.Errorf("index %d: %w", idx, ErrNumberNotFound)
	}
	return r.numbers[idx], nil
}

// GetRandom returns a uniformly chosen entry.
func (r *NumberRepository) GetRandom(_ context.Context) (entities.NumberWord, error) {
	if len(r.numbers) == 0 {
		return entities.NumberWord{}, ErrNumberNotFound
	}
	return r.numbers[sampling.Intn(r.rng, len(r.numbers))], nil
}

// GetAll returns a copy of the whole catalog in ascending order.
func (r *NumberRepository) GetAll(_ context.Context) ([]entities.NumberWord, error) {
	out := make([]entities.NumberWord, len(r.numbers))
	copy(out, r.numbers)
	return out, nil
}

// GetRange returns the entries from..to inclusive.
func (r *NumberRepository) GetRange(ctx context.Context, from, to int) ([]entities.NumberWord, error) {
	if from > to {
		return nil, fmt.Errorf("range %d..%d: %w", from, to, numerals.ErrInvalidArgument)
	}
	if _, err := r.GetByValue(ctx, from); err != nil {
		return nil, err
	}
	if _, err := r.GetByValue(ctx, to); err != nil {
		return nil, err
	}

	out := make([]entities.NumberWord, to-from+1)
	copy(out, r.numbers[from-numerals.Min:to-numerals.Min+1])
	return out, nil
}

// Len returns the catalog size.
func (r *NumberRepository) Len() int {
	return len(r.numbers)
}

func buildCatalog() ([]entities.NumberWord, error) {
	numbers := make([]entities.NumberWord, 0, numerals.Max-numerals.Min+1)
	for v := numerals.Min; v <= numerals.Max; v++ {
		word, err := numerals.English(v)
		if err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		numbers = append(numbers, entities.NumberWord{Value: v, Word: word})
	}

	if err := checkCatalog(numbers); err != nil {
		return nil, err
	}

	return numbers, nil
}

func checkCatalog(numbers []entities.NumberWord) error {
	if len(numbers) != 100 {
		return fmt.Errorf("expected 100 numbers, got %d", len(numbers))
	}
	for i, n := range numbers {
		if n.Value != i+numerals.Min {
			return fmt.Errorf("catalog is not contiguous at index %d: got %d", i, n.Value)
		}
	}
	return nil
}
