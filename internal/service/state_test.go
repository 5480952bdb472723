package service

import (
	"testing"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

func TestStateDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewStateService(f.states)

	st, err := svc.Load(f.ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != entities.ModeLearn || st.LearnIndex != 0 || st.Daily || len(st.QuizOrder) != 0 {
		t.Fatalf("default state = %+v", st)
	}
}

func TestStateIgnoresMalformedValues(t *testing.T) {
	f := newFixture(t)
	svc := NewStateService(f.states)

	_ = f.states.SetMany(f.ctx, 7, map[string]string{
		entities.StateKeyMode:       "dance",
		entities.StateKeyLearnIndex: "-3",
		entities.StateKeyScore:      "lots",
		entities.StateKeyQuizOrder:  "{",
		entities.StateKeyDaily:      "yes",
	})

	st, err := svc.Load(f.ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != entities.ModeLearn || st.LearnIndex != 0 || st.Score != 0 || st.QuizOrder != nil || st.Daily {
		t.Fatalf("state = %+v", st)
	}
}

func TestStateSetMode(t *testing.T) {
	f := newFixture(t)
	svc := NewStateService(f.states)

	if err := svc.SetMode(f.ctx, 7, entities.ModeQuiz); err != nil {
		t.Fatal(err)
	}
	st, _ := svc.Load(f.ctx, 7)
	if st.Mode != entities.ModeQuiz {
		t.Fatalf("mode = %q, want quiz", st.Mode)
	}

	if err := svc.SetMode(f.ctx, 7, entities.Mode("dance")); err == nil {
		t.Fatal("expected error for unknown mode")
	}

	// Switching mode leaves the other keys alone.
	raw, _ := f.states.GetAll(f.ctx, 7)
	if len(raw) != 1 {
		t.Fatalf("stored keys = %v, want only the mode", raw)
	}
}

func TestStateToggleDailyAndReset(t *testing.T) {
	f := newFixture(t)
	svc := NewStateService(f.states)

	on, _ := svc.ToggleDaily(f.ctx, 7)
	off, _ := svc.ToggleDaily(f.ctx, 7)
	if !on || off {
		t.Fatalf("toggles = %v, %v; want true, false", on, off)
	}

	raw, _ := f.states.GetAll(f.ctx, 7)
	if raw[entities.StateKeyDaily] != entities.DailyOff {
		t.Fatalf("stored daily = %q", raw[entities.StateKeyDaily])
	}

	if err := svc.Reset(f.ctx, 7); err != nil {
		t.Fatal(err)
	}
	raw, _ = f.states.GetAll(f.ctx, 7)
	if len(raw) != 0 {
		t.Fatalf("state after reset = %v", raw)
	}
}

func TestEncodeDecodeState(t *testing.T) {
	st := &entities.TrainerState{
		UserID:     9,
		Mode:       entities.ModeQuiz,
		LearnIndex: 12,
		QuizIndex:  3,
		QuizOrder:  []int{2, 0, 1},
		QuizRound:  "round",
		Score:      2,
		Daily:      true,
	}

	raw := encodeState(st)
	if raw[entities.StateKeyQuizOrder] != "[2,0,1]" || raw[entities.StateKeyDaily] != "on" {
		t.Fatalf("encoded = %v", raw)
	}

	got := decodeState(9, raw)
	if got.Mode != st.Mode || got.LearnIndex != 12 || got.QuizIndex != 3 || got.QuizRound != "round" || got.Score != 2 || !got.Daily {
		t.Fatalf("decoded = %+v", got)
	}
	if len(got.QuizOrder) != 3 || got.QuizOrder[0] != 2 {
		t.Fatalf("decoded order = %v", got.QuizOrder)
	}
}
