package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
)

var testQuizConfig = QuizConfig{CorrectDelay: 3 * time.Second, WrongDelay: 5 * time.Second}

func newQuiz(f *fixture) *QuizService {
	return NewQuizService(f.numbers, f.states, sampling.NewRand(5), testQuizConfig)
}

func wrongOption(q *entities.Question) int {
	for _, o := range q.Options {
		if o.Value != q.Answer.Value {
			return o.Value
		}
	}
	return 0
}

func TestQuizCurrentStartsRound(t *testing.T) {
	f := newFixture(t)
	svc := newQuiz(f)

	q, err := svc.Current(f.ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if q.Round == "" || q.Position != 0 || q.Total != 100 || q.Score != 0 {
		t.Fatalf("first question = %+v", q)
	}
	if len(q.Options) != 3 {
		t.Fatalf("got %d options, want 3", len(q.Options))
	}

	again, _ := svc.Current(f.ctx, 1)
	if again.Round != q.Round || again.Answer != q.Answer {
		t.Fatalf("Current is not stable: %+v vs %+v", again, q)
	}
}

func TestQuizAnswer(t *testing.T) {
	f := newFixture(t)
	svc := newQuiz(f)

	q, _ := svc.Current(f.ctx, 1)
	res, err := svc.Answer(f.ctx, 1, q.Round, q.Position, q.Answer.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect || res.Score != 1 || res.Delay != 3*time.Second || res.Finished {
		t.Fatalf("correct answer result = %+v", res)
	}

	q, _ = svc.Current(f.ctx, 1)
	if q.Position != 1 || q.Score != 1 {
		t.Fatalf("second question = %+v", q)
	}

	res, err = svc.Answer(f.ctx, 1, q.Round, q.Position, wrongOption(q))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect || res.Score != 1 || res.Delay != 5*time.Second {
		t.Fatalf("wrong answer result = %+v", res)
	}
	if res.Answer != q.Answer {
		t.Fatalf("result answer = %+v, want %+v", res.Answer, q.Answer)
	}
}

func TestQuizRejectsStaleAnswers(t *testing.T) {
	f := newFixture(t)
	svc := newQuiz(f)

	q, _ := svc.Current(f.ctx, 1)
	if _, err := svc.Answer(f.ctx, 1, q.Round, q.Position, q.Answer.Value); err != nil {
		t.Fatal(err)
	}

	// Same button pressed twice.
	if _, err := svc.Answer(f.ctx, 1, q.Round, q.Position, q.Answer.Value); !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("repeated answer error = %v, want ErrStaleAnswer", err)
	}

	next, _ := svc.Current(f.ctx, 1)
	if _, err := svc.Answer(f.ctx, 1, "old-round", next.Position, next.Answer.Value); !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("old round error = %v, want ErrStaleAnswer", err)
	}
}

func TestQuizFullRound(t *testing.T) {
	f := newFixture(t)
	svc := newQuiz(f)

	seen := map[int]bool{}
	for i := range 100 {
		q, err := svc.Current(f.ctx, 1)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		seen[q.Answer.Value] = true

		res, err := svc.Answer(f.ctx, 1, q.Round, q.Position, q.Answer.Value)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if res.Finished != (i == 99) {
			t.Fatalf("answer %d: Finished = %v", i, res.Finished)
		}
	}

	if len(seen) != 100 {
		t.Fatalf("round asked %d distinct numbers, want 100", len(seen))
	}

	if _, err := svc.Current(f.ctx, 1); !errors.Is(err, ErrQuizFinished) {
		t.Fatalf("Current after last answer = %v, want ErrQuizFinished", err)
	}

	sum, err := svc.Summary(f.ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Score != 100 || sum.Total != 100 || sum.Percent != 100 {
		t.Fatalf("summary = %+v", sum)
	}

	q, err := svc.Reset(f.ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if q.Position != 0 || q.Score != 0 {
		t.Fatalf("question after reset = %+v", q)
	}
}

func TestQuizReplacesCorruptOrder(t *testing.T) {
	tests := []struct {
		name  string
		order string
	}{
		{"not json", "garbage"},
		{"too short", "[0,1,2]"},
		{"duplicates", "[" + strings.Repeat("0,", 99) + "0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := newQuiz(f)

			_ = f.states.SetMany(f.ctx, 1, map[string]string{
				entities.StateKeyQuizOrder: tt.order,
				entities.StateKeyQuizRound: "r1",
				entities.StateKeyQuizIndex: "1",
				entities.StateKeyScore:     "1",
			})

			q, err := svc.Current(f.ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if q.Round == "r1" || q.Position != 0 || q.Score != 0 || q.Total != 100 {
				t.Fatalf("question = %+v, want a fresh round", q)
			}
		})
	}
}

func TestQuizSummaryRounding(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 100, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := entities.NewQuizSummary(tt.score, tt.total).Percent; got != tt.want {
			t.Errorf("NewQuizSummary(%d, %d).Percent = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}
