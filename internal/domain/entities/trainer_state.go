package entities

// Mode is the screen the learner is on.
type Mode string

const (
	ModeLearn Mode = "learn" // flashcards
	ModeQuiz  Mode = "quiz"  // multiple-choice quiz
)

// ParseMode validates a raw mode value.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLearn, ModeQuiz:
		return Mode(s), true
	}
	return "", false
}

// Keys under which trainer state is persisted.
const (
	StateKeyMode       = "kids-number-trainer:mode"
	StateKeyLearnIndex = "kids-number-trainer:learnIndex"
	StateKeyQuizIndex  = "kids-number-trainer:quizIndex"
	StateKeyQuizOrder  = "kids-number-trainer:quizOrder"
	StateKeyScore      = "kids-number-trainer:score"
	StateKeyQuizRound  = "kids-number-trainer:quizRound"
	StateKeyDaily      = "kids-number-trainer:daily"
)

// Values stored under StateKeyDaily.
const (
	DailyOn  = "on"
	DailyOff = "off"
)

// TrainerState holds the UI preferences of a single learner.
type TrainerState struct {
	UserID     int64
	Mode       Mode
	LearnIndex int    // current flashcard, zero-based
	QuizIndex  int    // current question, equals len(QuizOrder) when the round is over
	QuizOrder  []int  // catalog indices in question order
	QuizRound  string // identifier of the current quiz round
	Score      int
	Daily      bool // subscribed to the number of the day
}

// NewTrainerState returns the state of a learner who has never used the bot.
func NewTrainerState(userID int64) *TrainerState {
	return &TrainerState{
		UserID: userID,
		Mode:   ModeLearn,
	}
}

// QuizFinished reports whether every question of the round has been answered.
func (s *TrainerState) QuizFinished() bool {
	return len(s.QuizOrder) > 0 && s.QuizIndex >= len(s.QuizOrder)
}
