package entities

import "time"

// Question is a single multiple-choice quiz question.
type Question struct {
	Round    string       // quiz round the question belongs to
	Position int          // zero-based position in the round
	Total    int          // number of questions in the round
	Answer   NumberWord   // the number being asked for
	Thai     string       // Thai cardinal for Answer.Value
	Options  []NumberWord // correct answer plus distractors, shuffled
	Score    int          // score before this question is answered
}

// AnswerResult describes the outcome of answering a question.
type AnswerResult struct {
	IsCorrect bool
	Picked    NumberWord
	Answer    NumberWord
	Position  int // position of the answered question
	Total     int
	Score     int
	Finished  bool          // true when this was the last question of the round
	Delay     time.Duration // pause before the next question is shown
}

// QuizSummary is the final result of a quiz round.
type QuizSummary struct {
	Score   int
	Total   int
	Percent int
}

// NewQuizSummary builds a summary, rounding the percentage to the nearest integer.
func NewQuizSummary(score, total int) QuizSummary {
	percent := 0
	if total > 0 {
		percent = (score*100 + total/2) / total
	}
	return QuizSummary{Score: score, Total: total, Percent: percent}
}
