package telegram

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/repository"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/service"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/storage"
)

const testUserID = 7

// fakeBot records everything the handler sends.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	sendErr  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = nil
	b.requests = nil
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

func (b *fakeBot) edits() []tgbotapi.EditMessageTextConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.EditMessageTextConfig
	for _, c := range b.sent {
		if edit, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, edit)
		}
	}
	return out
}

func (b *fakeBot) audio() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, c := range b.sent {
		if _, ok := c.(tgbotapi.AudioConfig); ok {
			n++
		}
	}
	return n
}

func (b *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text
		}
	}
	t.Fatal("no callback answered")
	return ""
}

// countingSynth returns a fixed clip and counts the calls.
type countingSynth struct {
	calls atomic.Int32
}

func (s *countingSynth) Synthesize(context.Context, entities.Utterance) ([]byte, string, error) {
	s.calls.Add(1)
	return []byte("mp3"), "audio/mpeg", nil
}

type testEnv struct {
	ctx     context.Context
	bot     *fakeBot
	handler *Handler
	quiz    *service.QuizService
	users   *storage.UserStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil, 10*time.Millisecond)
}

func newTestEnvWith(t *testing.T, synth service.Synthesizer, delay time.Duration) *testEnv {
	t.Helper()

	rng := sampling.NewRand(1)
	numbers, err := repository.NewNumberRepository(rng)
	if err != nil {
		t.Fatal(err)
	}

	logger := zap.NewNop()
	states := storage.NewStateStorage()
	users := storage.NewUserStorage()
	quiz := service.NewQuizService(numbers, states, rng, service.QuizConfig{
		CorrectDelay: delay,
		WrongDelay:   delay,
	})

	bot := &fakeBot{}
	h := NewHandler(
		bot,
		logger,
		service.NewUserService(users, logger),
		service.NewNumberService(numbers),
		service.NewFlashcardService(numbers, states, rng),
		quiz,
		service.NewStateService(states),
		service.NewSpeechService(synth, 0, logger),
	)
	t.Cleanup(h.cancelAllPending)

	return &testEnv{ctx: context.Background(), bot: bot, handler: h, quiz: quiz, users: users}
}

func (e *testEnv) text(s string) {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUserID},
		Chat:      &tgbotapi.Chat{ID: testUserID},
		Text:      s,
	}
	if strings.HasPrefix(s, "/") {
		cmd, _, _ := strings.Cut(s, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	e.handler.handleUpdate(e.ctx, tgbotapi.Update{Message: msg})
}

func (e *testEnv) press(msgID int, kb *tgbotapi.InlineKeyboardMarkup, data string) {
	e.handler.handleUpdate(e.ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: testUserID},
		Message: &tgbotapi.Message{
			MessageID:   msgID,
			Chat:        &tgbotapi.Chat{ID: testUserID},
			ReplyMarkup: kb,
		},
		Data: data,
	}})
}

func TestHandleStartShowsFirstCard(t *testing.T) {
	e := newTestEnv(t)

	e.text("/start")

	msgs := e.bot.messages()
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want welcome and card", len(msgs))
	}
	if !strings.Contains(msgs[1].Text, "*1*") || !strings.Contains(msgs[1].Text, "one") {
		t.Fatalf("card message = %q", msgs[1].Text)
	}
	if _, ok := msgs[1].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatal("card has no keyboard")
	}
}

func TestHandleNumber(t *testing.T) {
	e := newTestEnv(t)

	e.text("42")
	msgs := e.bot.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "forty two") {
		t.Fatalf("messages = %+v", msgs)
	}

	for _, input := range []string{"0", "101", "abc"} {
		e.bot.reset()
		e.text(input)

		msgs := e.bot.messages()
		if len(msgs) != 1 || msgs[0].Text != msgOutOfRangeNumber {
			t.Errorf("%q: messages = %+v", input, msgs)
		}
	}
}

func TestHandleRange(t *testing.T) {
	e := newTestEnv(t)

	e.text("/range 20 30")
	msgs := e.bot.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "twenty") {
		t.Fatalf("messages = %+v", msgs)
	}
	if _, ok := msgs[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatal("eleven numbers should be paginated")
	}

	e.bot.reset()
	e.text("/range 30 20")
	if msgs := e.bot.messages(); len(msgs) != 1 || msgs[0].Text != msgInvalidRange {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestCardFlipKeepsNumber(t *testing.T) {
	e := newTestEnv(t)

	e.press(5, nil, buildCardCallback(cardFlip, 42, false))

	edits := e.bot.edits()
	if len(edits) != 1 {
		t.Fatalf("edits = %d, want 1", len(edits))
	}
	if !strings.HasPrefix(strings.SplitN(edits[0].Text, "\n\n", 2)[1], "*forty two*") {
		t.Fatalf("flipped card = %q", edits[0].Text)
	}
	if edits[0].MessageID != 5 {
		t.Fatalf("edited message %d, want 5", edits[0].MessageID)
	}
}

// startQuiz opens the quiz and returns its keyboard with the data of the correct button.
func (e *testEnv) startQuiz(t *testing.T) (tgbotapi.InlineKeyboardMarkup, string) {
	t.Helper()

	e.text("/quiz")
	msgs := e.bot.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages, want the first question", len(msgs))
	}
	kb, ok := msgs[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatal("question has no keyboard")
	}

	q, err := e.quiz.Current(e.ctx, testUserID)
	if err != nil {
		t.Fatal(err)
	}

	for _, option := range optionsFromKeyboard(&kb) {
		if option.Value == q.Answer.Value {
			return kb, buildQuizAnswerCallback(q.Round, q.Position, option.Value)
		}
	}
	t.Fatal("correct option is not on the keyboard")
	return kb, ""
}

func TestQuizAnswerFlow(t *testing.T) {
	e := newTestEnv(t)
	kb, data := e.startQuiz(t)

	e.bot.reset()
	e.press(9, &kb, data)

	if notice := e.bot.lastNotice(t); notice != "" {
		t.Fatalf("notice = %q, want none", notice)
	}
	edits := e.bot.edits()
	if len(edits) == 0 || !strings.Contains(edits[0].Text, "คะแนน: 1") {
		t.Fatalf("answered edits = %+v", edits)
	}

	e.press(9, &kb, data)
	if notice := e.bot.lastNotice(t); notice != msgAlreadyAnswered {
		t.Fatalf("second press notice = %q, want %q", notice, msgAlreadyAnswered)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(e.bot.edits()) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("next question was not shown")
		}
		time.Sleep(5 * time.Millisecond)
	}

	next := e.bot.edits()[1]
	if !strings.Contains(next.Text, "2 / 100") || next.MessageID != 9 {
		t.Fatalf("next question = %q (message %d)", next.Text, next.MessageID)
	}
}

func TestDailyToggle(t *testing.T) {
	e := newTestEnv(t)

	e.text("/daily")
	e.text("/daily")

	msgs := e.bot.messages()
	if len(msgs) != 2 || msgs[0].Text != msgDailyOn || msgs[1].Text != msgDailyOff {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestLeavingQuizDropsNextQuestion(t *testing.T) {
	leave := map[string]func(e *testEnv){
		"next command": func(e *testEnv) { e.text("/next") },
		"typed number": func(e *testEnv) { e.text("42") },
		"card button":  func(e *testEnv) { e.press(3, nil, buildCardCallback(cardNext, 1, false)) },
		"shuffle":      func(e *testEnv) { e.text("/shuffle") },
	}

	for name, fn := range leave {
		t.Run(name, func(t *testing.T) {
			e := newTestEnvWith(t, nil, 50*time.Millisecond)
			kb, data := e.startQuiz(t)

			e.bot.reset()
			e.press(9, &kb, data)
			fn(e)

			// Well past the delay of the next question.
			time.Sleep(250 * time.Millisecond)

			for _, edit := range e.bot.edits() {
				if edit.MessageID == 9 && strings.Contains(edit.Text, "2 / 100") {
					t.Fatalf("next question shown after leaving the quiz: %q", edit.Text)
				}
			}
		})
	}
}

func TestNewCardsAndQuestionsAreReadAloud(t *testing.T) {
	synth := &countingSynth{}
	e := newTestEnvWith(t, synth, 10*time.Millisecond)

	e.text("/learn")
	e.text("/next")
	e.text("/quiz")

	// English then Thai for each of the three screens.
	if got := synth.calls.Load(); got != 6 {
		t.Fatalf("synth calls = %d, want 6", got)
	}
	if got := e.bot.audio(); got != 6 {
		t.Fatalf("audio messages = %d, want 6", got)
	}

	// Flipping shows the same number and stays quiet.
	e.press(3, nil, buildCardCallback(cardFlip, 2, false))
	if got := synth.calls.Load(); got != 6 {
		t.Fatalf("synth calls after flip = %d, want 6", got)
	}

	e.press(3, nil, buildCardCallback(cardNext, 2, false))
	if got := synth.calls.Load(); got != 8 {
		t.Fatalf("synth calls after next button = %d, want 8", got)
	}
}

func TestDailyNumberDeactivatesBlockedUser(t *testing.T) {
	e := newTestEnv(t)

	// The user subscribed from a group chat, so chat and user ids differ.
	const userID, chatID = 5, -500
	if err := e.handler.userService.EnsureUser(e.ctx, userID, chatID); err != nil {
		t.Fatal(err)
	}

	e.bot.sendErr = &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}

	card := testCards(7, 7)[0]
	if err := e.handler.SendDailyNumber(e.ctx, userID, chatID, card); err == nil {
		t.Fatal("SendDailyNumber succeeded on a blocked chat")
	}

	user, err := e.users.GetByID(e.ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if user.IsActive {
		t.Fatal("blocked user is still active")
	}
}
