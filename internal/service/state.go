package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

// StateService reads and writes the learner's UI preferences.
type StateService struct {
	repository StateRepository
}

func NewStateService(repository StateRepository) *StateService {
	return &StateService{repository: repository}
}

// Load returns the stored state, falling back to defaults for missing or malformed values.
func (s *StateService) Load(ctx context.Context, userID int64) (*entities.TrainerState, error) {
	return loadState(ctx, s.repository, userID)
}

// SetMode switches between flashcards and quiz.
func (s *StateService) SetMode(ctx context.Context, userID int64, mode entities.Mode) error {
	if _, ok := entities.ParseMode(string(mode)); !ok {
		return fmt.Errorf("unknown mode: %q", mode)
	}

	st := &entities.TrainerState{UserID: userID, Mode: mode}
	return saveState(ctx, s.repository, st, entities.StateKeyMode)
}

// ToggleDaily flips the number-of-the-day subscription and returns the new value.
func (s *StateService) ToggleDaily(ctx context.Context, userID int64) (bool, error) {
	st, err := s.Load(ctx, userID)
	if err != nil {
		return false, err
	}

	st.Daily = !st.Daily
	if err := saveState(ctx, s.repository, st, entities.StateKeyDaily); err != nil {
		return false, err
	}

	return st.Daily, nil
}

// Reset forgets everything stored for the user.
func (s *StateService) Reset(ctx context.Context, userID int64) error {
	return s.repository.Delete(ctx, userID)
}

func loadState(ctx context.Context, repo StateRepository, userID int64) (*entities.TrainerState, error) {
	values, err := repo.GetAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	return decodeState(userID, values), nil
}

// saveState writes the given keys of st. All keys are written when none are given.
func saveState(ctx context.Context, repo StateRepository, st *entities.TrainerState, keys ...string) error {
	values := encodeState(st)
	if len(keys) > 0 {
		all := values
		values = make(map[string]string, len(keys))
		for _, k := range keys {
			v, ok := all[k]
			if !ok {
				return fmt.Errorf("unknown state key: %q", k)
			}
			values[k] = v
		}
	}

	if err := repo.SetMany(ctx, st.UserID, values); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return nil
}

func decodeState(userID int64, values map[string]string) *entities.TrainerState {
	st := entities.NewTrainerState(userID)

	if mode, ok := entities.ParseMode(values[entities.StateKeyMode]); ok {
		st.Mode = mode
	}

	st.LearnIndex = atoiOrZero(values[entities.StateKeyLearnIndex])
	st.QuizIndex = atoiOrZero(values[entities.StateKeyQuizIndex])
	st.Score = atoiOrZero(values[entities.StateKeyScore])
	st.QuizRound = values[entities.StateKeyQuizRound]
	st.Daily = values[entities.StateKeyDaily] == entities.DailyOn

	if raw := values[entities.StateKeyQuizOrder]; raw != "" {
		var order []int
		if err := json.Unmarshal([]byte(raw), &order); err == nil {
			st.QuizOrder = order
		}
	}

	return st
}

func encodeState(st *entities.TrainerState) map[string]string {
	order := st.QuizOrder
	if order == nil {
		order = []int{}
	}
	// Marshalling a []int cannot fail.
	rawOrder, _ := json.Marshal(order)

	daily := entities.DailyOff
	if st.Daily {
		daily = entities.DailyOn
	}

	return map[string]string{
		entities.StateKeyMode:       string(st.Mode),
		entities.StateKeyLearnIndex: strconv.Itoa(st.LearnIndex),
		entities.StateKeyQuizIndex:  strconv.Itoa(st.QuizIndex),
		entities.StateKeyQuizOrder:  string(rawOrder),
		entities.StateKeyScore:      strconv.Itoa(st.Score),
		entities.StateKeyQuizRound:  st.QuizRound,
		entities.StateKeyDaily:      daily,
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
