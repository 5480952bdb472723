package service

import (
	"math/rand"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
)

const distractorCount = 2

// OptionGenerator generates multiple choice options for quiz questions.
type OptionGenerator struct {
	numbers []entities.NumberWord
	rng     *rand.Rand
}

// NewOptionGenerator creates a new option generator over the given catalog.
func NewOptionGenerator(numbers []entities.NumberWord, rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{
		numbers: numbers,
		rng:     rng,
	}
}

// GenerateOptions returns the correct answer and two distinct wrong ones in random order.
func (g *OptionGenerator) GenerateOptions(correct entities.NumberWord) []entities.NumberWord {
	wrong := sampling.SampleDistinct(g.rng, g.numbers, distractorCount, func(n entities.NumberWord) bool {
		return n.Value == correct.Value
	})

	options := make([]entities.NumberWord, 0, 1+len(wrong))
	options = append(options, correct)
	options = append(options, wrong...)

	return sampling.Shuffle(g.rng, options)
}
