package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/service"
)

// callbackFunc handles a button press. The returned notice is shown to the user as a toast.
type callbackFunc func(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	if err := h.userService.EnsureUser(ctx, cb.From.ID, cb.Message.Chat.ID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", cb.From.ID),
			zap.Error(err),
		)
	}

	cd := decodeCallback(cb.Data)

	var fn callbackFunc
	switch cd.Action {
	case actionCard:
		fn = h.handleCardCallback
	case actionMode:
		fn = h.handleModeCallback
	case actionQuiz:
		fn = h.handleQuizCallback
	case actionList:
		fn = h.handleListCallback
	case actionDaily:
		fn = h.handleDailyCallback
	default:
		fn = func(context.Context, *tgbotapi.CallbackQuery, callbackData) (string, error) { return "", nil }
	}

	notice := h.withCallbackErrorHandling(fn)(ctx, cb, cd)

	// Remove the user's "clock".
	h.request(tgbotapi.NewCallback(cb.ID, notice))
}

func (h *Handler) handleCardCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	value, ok := cd.intParam(1)
	if !ok {
		h.logger.Warn("invalid card callback", zap.String("data", cd.Raw))
		return "", nil
	}
	back := cd.param(2) == faceBack

	var (
		card  *entities.Card
		err   error
		fresh = true // a different card is shown and gets read aloud
	)

	switch cd.param(0) {
	case cardSpeak:
		cards, err := h.numberService.Cards(ctx, value, value)
		if err != nil {
			return "", err
		}
		if !h.sendSpeech(ctx, chatID, h.speechService.Prompt(cards[0].Number)) {
			return msgSpeechOff, nil
		}
		return "", nil

	case cardOpen:
		// The daily message stays as it is; the card opens below it.
		return "", h.handleNumber(userID, cd.param(1))(ctx, chatID)

	case cardFlip:
		card, err = h.flashcardService.Jump(ctx, userID, value)
		back = !back
		fresh = false
	case cardPrev:
		card, err = h.flashcardService.Prev(ctx, userID)
		back = false
	case cardNext:
		card, err = h.flashcardService.Next(ctx, userID)
		back = false
	case cardShuffle:
		card, err = h.flashcardService.Random(ctx, userID)
		back = false
	case cardRestart:
		card, err = h.flashcardService.Restart(ctx, userID)
		back = false
	default:
		h.logger.Warn("unknown card action", zap.String("data", cd.Raw))
		return "", nil
	}
	if err != nil {
		return "", err
	}

	h.cancelPending(chatID)

	if err := h.stateService.SetMode(ctx, userID, entities.ModeLearn); err != nil {
		return "", err
	}

	edit := newEdit(chatID, cb.Message.MessageID, cardText(card, back))
	kb := buildCardKeyboard(card, back)
	edit.ReplyMarkup = &kb

	if err := h.send(edit); err != nil {
		return "", err
	}

	if fresh {
		h.sendSpeech(ctx, chatID, h.speechService.Prompt(card.Number))
	}
	return "", nil
}

func (h *Handler) handleModeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	mode, ok := entities.ParseMode(cd.param(0))
	if !ok {
		h.logger.Warn("invalid mode callback", zap.String("data", cd.Raw))
		return "", nil
	}

	h.cancelPending(chatID)

	if err := h.stateService.SetMode(ctx, userID, mode); err != nil {
		return "", err
	}

	if mode == entities.ModeQuiz {
		return "", h.editQuestion(ctx, userID, chatID, cb.Message.MessageID)
	}

	card, err := h.flashcardService.Current(ctx, userID)
	if err != nil {
		return "", err
	}

	edit := newEdit(chatID, cb.Message.MessageID, cardText(card, false))
	kb := buildCardKeyboard(card, false)
	edit.ReplyMarkup = &kb

	if err := h.send(edit); err != nil {
		return "", err
	}

	h.sendSpeech(ctx, chatID, h.speechService.Prompt(card.Number))
	return "", nil
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	switch cd.param(0) {
	case quizAnswer:
		position, okPos := cd.intParam(2)
		picked, okPicked := cd.intParam(3)
		if !okPos || !okPicked {
			h.logger.Warn("invalid quiz answer callback", zap.String("data", cd.Raw))
			return "", nil
		}
		return h.answerQuestion(ctx, cb, cd.param(1), position, picked)

	case quizSpeak:
		value, ok := cd.intParam(1)
		if !ok {
			return "", nil
		}
		cards, err := h.numberService.Cards(ctx, value, value)
		if err != nil {
			return "", err
		}
		if !h.sendSpeech(ctx, chatID, h.speechService.Prompt(cards[0].Number)) {
			return msgSpeechOff, nil
		}
		return "", nil

	case quizReset:
		h.cancelPending(chatID)

		if err := h.stateService.SetMode(ctx, userID, entities.ModeQuiz); err != nil {
			return "", err
		}
		if _, err := h.quizService.Reset(ctx, userID); err != nil {
			return "", err
		}
		return "", h.editQuestion(ctx, userID, chatID, msgID)
	}

	h.logger.Warn("unknown quiz action", zap.String("data", cd.Raw))
	return "", nil
}

// answerQuestion marks the options, says whether the answer was right and
// shows the next question in the same message after a pause.
func (h *Handler) answerQuestion(ctx context.Context, cb *tgbotapi.CallbackQuery, round string, position, picked int) (string, error) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	res, err := h.quizService.Answer(ctx, userID, round, position, picked)
	switch {
	case errors.Is(err, service.ErrStaleAnswer):
		return msgAlreadyAnswered, nil
	case errors.Is(err, service.ErrQuizFinished):
		return msgQuizOver, nil
	case err != nil:
		return "", err
	}

	h.logger.Debug("quiz answer",
		zap.Int64("user_id", userID),
		zap.Int("position", res.Position),
		zap.Bool("correct", res.IsCorrect),
	)

	edit := newEdit(chatID, msgID, answeredText(res))
	kb := buildAnsweredKeyboard(optionsFromKeyboard(cb.Message.ReplyMarkup), res)
	edit.ReplyMarkup = &kb
	if err := h.send(edit); err != nil {
		return "", err
	}

	h.scheduleNextQuestion(ctx, userID, chatID, msgID, res.Delay)

	feedback := h.speechService.Correction(res.Answer)
	if res.IsCorrect {
		feedback = h.speechService.Praise(res.Answer)
	}
	h.sendSpeech(ctx, chatID, feedback)

	return "", nil
}

// editQuestion turns the message into the current question, or the summary once the round is over.
func (h *Handler) editQuestion(ctx context.Context, userID, chatID int64, msgID int) error {
	q, err := h.quizService.Current(ctx, userID)
	if errors.Is(err, service.ErrQuizFinished) {
		sum, err := h.quizService.Summary(ctx, userID)
		if err != nil {
			return err
		}

		edit := newEdit(chatID, msgID, summaryText(sum))
		kb := buildQuizResultKeyboard()
		edit.ReplyMarkup = &kb

		return h.send(edit)
	}
	if err != nil {
		return err
	}

	edit := newEdit(chatID, msgID, questionText(q))
	kb := buildQuizKeyboard(q)
	edit.ReplyMarkup = &kb

	if err := h.send(edit); err != nil {
		return err
	}

	h.sendSpeech(ctx, chatID, h.speechService.Prompt(q.Answer))
	return nil
}

func (h *Handler) handleListCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	page, ok1 := cd.intParam(0)
	from, ok2 := cd.intParam(1)
	to, ok3 := cd.intParam(2)
	if !ok1 || !ok2 || !ok3 || page < 0 {
		h.logger.Warn("invalid list callback", zap.String("data", cd.Raw))
		return "", nil
	}

	cards, err := h.numberService.Cards(ctx, from, to)
	if err != nil {
		return "", err
	}

	text, totalPages := buildCardsPage(cards, page)
	if page >= totalPages {
		h.logger.Warn("list page out of range",
			zap.Int("page", page),
			zap.Int("total_pages", totalPages),
		)
		return "", nil
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = buildListKeyboard(page, totalPages, from, to)

	return "", h.send(edit)
}

func (h *Handler) handleDailyCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	if cd.param(0) != dailyToggle {
		return "", nil
	}

	on, err := h.stateService.ToggleDaily(ctx, cb.From.ID)
	if err != nil {
		return "", err
	}

	if on {
		return msgDailyOn, nil
	}
	return msgDailyOff, nil
}

// scheduleNextQuestion replaces any pending question of the chat.
func (h *Handler) scheduleNextQuestion(ctx context.Context, userID, chatID int64, msgID int, delay time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.pending[chatID]; ok {
		t.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		h.mu.Lock()
		if h.pending[chatID] == t {
			delete(h.pending, chatID)
		}
		h.mu.Unlock()

		if ctx.Err() != nil {
			return
		}

		// The learner may have left the quiz while the timer was running.
		st, err := h.stateService.Load(ctx, userID)
		if err != nil {
			h.logger.Warn("failed to load state for next question",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return
		}
		if st.Mode != entities.ModeQuiz {
			return
		}

		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.editQuestion(ctx, userID, chatID, msgID)
		})(ctx, chatID)
	})
	h.pending[chatID] = t
}

func (h *Handler) cancelPending(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.pending[chatID]; ok {
		t.Stop()
		delete(h.pending, chatID)
	}
}

func (h *Handler) cancelAllPending() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for chatID, t := range h.pending {
		t.Stop()
		delete(h.pending, chatID)
	}
}
