package telegram

import (
	"strings"
	"testing"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
)

func testCards(from, to int) []entities.Card {
	cards := make([]entities.Card, 0, to-from+1)
	for v := from; v <= to; v++ {
		cards = append(cards, entities.Card{
			Number:   entities.NumberWord{Value: v, Word: numerals.MustEnglish(v)},
			Thai:     numerals.MustThai(v),
			Position: v - 1,
			Total:    100,
		})
	}
	return cards
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total, length int
		want                   string
	}{
		{0, 100, 10, "[░░░░░░░░░░]"},
		{50, 100, 10, "[█████░░░░░]"},
		{100, 100, 10, "[██████████]"},
		{150, 100, 4, "[████]"},
		{1, 0, 3, "[░░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, tt.length); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.length, got, tt.want)
		}
	}
}

func TestBuildCardsPage(t *testing.T) {
	cards := testCards(1, 100)

	text, total := buildCardsPage(cards, 0)
	if total != 10 {
		t.Fatalf("total pages = %d, want 10", total)
	}
	if strings.Count(text, "\n") != 9 {
		t.Fatalf("page 0 has %d lines, want 10:\n%s", strings.Count(text, "\n")+1, text)
	}
	if !strings.Contains(text, "one") || !strings.Contains(text, "หนึ่ง") {
		t.Fatalf("page 0 misses the first number:\n%s", text)
	}

	text, _ = buildCardsPage(cards, 9)
	if !strings.Contains(text, "one hundred") {
		t.Fatalf("last page misses 100:\n%s", text)
	}

	if text, _ := buildCardsPage(cards, 10); text != "" {
		t.Fatalf("page past the end = %q", text)
	}

	_, total = buildCardsPage(testCards(20, 25), 0)
	if total != 1 {
		t.Fatalf("short range pages = %d, want 1", total)
	}
}

func TestCardTextFaces(t *testing.T) {
	card := &testCards(21, 21)[0]

	front := cardText(card, false)
	back := cardText(card, true)

	if !strings.HasPrefix(strings.SplitN(front, "\n\n", 2)[1], "*21*") {
		t.Errorf("front does not lead with the numeral:\n%s", front)
	}
	if !strings.HasPrefix(strings.SplitN(back, "\n\n", 2)[1], "*twenty one*") {
		t.Errorf("back does not lead with the word:\n%s", back)
	}
	if !strings.Contains(back, "ยี่สิบเอ็ด") {
		t.Errorf("back misses the thai word:\n%s", back)
	}
}

func TestAnsweredKeyboard(t *testing.T) {
	q := &entities.Question{
		Round:    "r",
		Position: 4,
		Total:    100,
		Answer:   entities.NumberWord{Value: 5, Word: "five"},
		Options: []entities.NumberWord{
			{Value: 9, Word: "nine"},
			{Value: 5, Word: "five"},
			{Value: 12, Word: "twelve"},
		},
	}

	kb := buildQuizKeyboard(q)
	options := optionsFromKeyboard(&kb)
	if len(options) != 3 || options[0] != q.Options[0] || options[2] != q.Options[2] {
		t.Fatalf("optionsFromKeyboard = %+v", options)
	}

	labels := func(res *entities.AnswerResult) []string {
		kb := buildAnsweredKeyboard(options, res)
		var out []string
		for _, row := range kb.InlineKeyboard {
			out = append(out, row[0].Text)
		}
		return out
	}

	right := labels(&entities.AnswerResult{IsCorrect: true, Answer: q.Answer})
	if right[0] != "nine" || right[1] != "✅ five" || right[2] != "twelve" {
		t.Errorf("labels after a right answer = %v", right)
	}

	wrong := labels(&entities.AnswerResult{IsCorrect: false, Answer: q.Answer})
	if wrong[0] != "❌ nine" || wrong[1] != "✅ five" || wrong[2] != "❌ twelve" {
		t.Errorf("labels after a wrong answer = %v", wrong)
	}
}

func TestSummaryText(t *testing.T) {
	text := summaryText(entities.NewQuizSummary(2, 3))
	if !strings.Contains(text, "2 / 3") || !strings.Contains(text, "67%") {
		t.Fatalf("summary = %q", text)
	}
}
