package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
)

var (
	ErrQuizFinished = errors.New("quiz finished")
	ErrStaleAnswer  = errors.New("answer does not match the current question")
)

type QuizConfig struct {
	CorrectDelay time.Duration
	WrongDelay   time.Duration
}

type QuizService struct {
	numbers NumberRepository
	states  StateRepository
	rng     *rand.Rand
	cfg     QuizConfig
}

func NewQuizService(numbers NumberRepository, states StateRepository, rng *rand.Rand, cfg QuizConfig) *QuizService {
	return &QuizService{
		numbers: numbers,
		states:  states,
		rng:     rng,
		cfg:     cfg,
	}
}

// Current returns the question the learner has to answer next.
func (s *QuizService) Current(ctx context.Context, userID int64) (*entities.Question, error) {
	st, err := s.ensureRound(ctx, userID)
	if err != nil {
		return nil, err
	}

	if st.QuizFinished() {
		return nil, ErrQuizFinished
	}

	return s.question(ctx, st)
}

// Answer checks the picked value against the question at position of round.
func (s *QuizService) Answer(ctx context.Context, userID int64, round string, position, picked int) (*entities.AnswerResult, error) {
	st, err := s.ensureRound(ctx, userID)
	if err != nil {
		return nil, err
	}

	if st.QuizRound != round || st.QuizIndex != position {
		return nil, ErrStaleAnswer
	}
	if st.QuizFinished() {
		return nil, ErrQuizFinished
	}

	answer, err := s.numbers.GetByIndex(ctx, st.QuizOrder[st.QuizIndex])
	if err != nil {
		return nil, err
	}

	pickedNumber, err := s.numbers.GetByValue(ctx, picked)
	if err != nil {
		return nil, err
	}

	res := &entities.AnswerResult{
		IsCorrect: pickedNumber.Value == answer.Value,
		Picked:    pickedNumber,
		Answer:    answer,
		Position:  st.QuizIndex,
		Total:     len(st.QuizOrder),
		Delay:     s.cfg.WrongDelay,
	}
	if res.IsCorrect {
		st.Score++
		res.Delay = s.cfg.CorrectDelay
	}
	st.QuizIndex++

	if err := saveState(ctx, s.states, st, entities.StateKeyScore, entities.StateKeyQuizIndex); err != nil {
		return nil, err
	}

	res.Score = st.Score
	res.Finished = st.QuizFinished()

	return res, nil
}

// Summary returns the score of the current round.
func (s *QuizService) Summary(ctx context.Context, userID int64) (entities.QuizSummary, error) {
	st, err := s.ensureRound(ctx, userID)
	if err != nil {
		return entities.QuizSummary{}, err
	}

	return entities.NewQuizSummary(st.Score, len(st.QuizOrder)), nil
}

// Reset starts a new round with a fresh order.
func (s *QuizService) Reset(ctx context.Context, userID int64) (*entities.Question, error) {
	st, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}

	if err := s.newRound(ctx, st); err != nil {
		return nil, err
	}

	return s.question(ctx, st)
}

func (s *QuizService) ensureRound(ctx context.Context, userID int64) (*entities.TrainerState, error) {
	st, err := loadState(ctx, s.states, userID)
	if err != nil {
		return nil, err
	}

	if st.QuizRound != "" && validOrder(st.QuizOrder, s.numbers.Len()) && st.QuizIndex <= len(st.QuizOrder) {
		return st, nil
	}

	if err := s.newRound(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *QuizService) newRound(ctx context.Context, st *entities.TrainerState) error {
	order := make([]int, s.numbers.Len())
	for i := range order {
		order[i] = i
	}

	st.QuizOrder = sampling.Shuffle(s.rng, order)
	st.QuizIndex = 0
	st.Score = 0
	st.QuizRound = uuid.NewString()

	return saveState(ctx, s.states, st,
		entities.StateKeyQuizOrder,
		entities.StateKeyQuizIndex,
		entities.StateKeyScore,
		entities.StateKeyQuizRound,
	)
}

func (s *QuizService) question(ctx context.Context, st *entities.TrainerState) (*entities.Question, error) {
	pos := min(st.QuizIndex, len(st.QuizOrder)-1)

	answer, err := s.numbers.GetByIndex(ctx, st.QuizOrder[pos])
	if err != nil {
		return nil, err
	}

	all, err := s.numbers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.Question{
		Round:    st.QuizRound,
		Position: pos,
		Total:    len(st.QuizOrder),
		Answer:   answer,
		Thai:     numerals.MustThai(answer.Value),
		Options:  NewOptionGenerator(all, s.rng).GenerateOptions(answer),
		Score:    st.Score,
	}, nil
}

// validOrder reports whether order is a permutation of 0..n-1.
func validOrder(order []int, n int) bool {
	if len(order) != n {
		return false
	}

	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}

	return true
}
