package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/service"
)

// handleStart greets the user and opens the screen of their current mode.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeText())); err != nil {
			return err
		}

		st, err := h.stateService.Load(ctx, userID)
		if err != nil {
			return err
		}

		if st.Mode == entities.ModeQuiz {
			return h.sendQuestion(ctx, userID, chatID)
		}
		return h.sendCard(ctx, userID, chatID, h.flashcardService.Current)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpText()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleLearn switches to flashcards and shows the current card.
func (h *Handler) handleLearn(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.cancelPending(chatID)

		if err := h.stateService.SetMode(ctx, userID, entities.ModeLearn); err != nil {
			return err
		}
		return h.sendCard(ctx, userID, chatID, h.flashcardService.Current)
	}
}

// handleQuiz switches to the quiz and shows the current question.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.stateService.SetMode(ctx, userID, entities.ModeQuiz); err != nil {
			return err
		}
		return h.sendQuestion(ctx, userID, chatID)
	}
}

type cardMove func(ctx context.Context, userID int64) (*entities.Card, error)

// handleCardMove runs a flashcard move and shows the resulting card.
func (h *Handler) handleCardMove(userID int64, move cardMove) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.cancelPending(chatID)

		if err := h.stateService.SetMode(ctx, userID, entities.ModeLearn); err != nil {
			return err
		}
		return h.sendCard(ctx, userID, chatID, move)
	}
}

// handleNumber opens the card of a number typed as plain text.
func (h *Handler) handleNumber(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return h.send(newPlainMessage(chatID, msgOutOfRangeNumber))
		}

		return h.handleCardMove(userID, func(ctx context.Context, userID int64) (*entities.Card, error) {
			return h.flashcardService.Jump(ctx, userID, n)
		})(ctx, chatID)
	}
}

// handleSpeak reads out the current card or question, depending on the mode.
func (h *Handler) handleSpeak(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		st, err := h.stateService.Load(ctx, userID)
		if err != nil {
			return err
		}

		var n entities.NumberWord
		if st.Mode == entities.ModeQuiz {
			q, err := h.quizService.Current(ctx, userID)
			if errors.Is(err, service.ErrQuizFinished) {
				return h.send(newPlainMessage(chatID, msgQuizOver))
			}
			if err != nil {
				return err
			}
			n = q.Answer
		} else {
			card, err := h.flashcardService.Current(ctx, userID)
			if err != nil {
				return err
			}
			n = card.Number
		}

		if !h.sendSpeech(ctx, chatID, h.speechService.Prompt(n)) {
			return h.send(newPlainMessage(chatID, msgSpeechOff))
		}
		return nil
	}
}

// handleReset forgets the user's progress and starts over from the first card.
func (h *Handler) handleReset(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.cancelPending(chatID)

		if err := h.stateService.Reset(ctx, userID); err != nil {
			return err
		}

		h.logger.Info("trainer state reset", zap.Int64("user_id", userID))

		if err := h.send(newPlainMessage(chatID, msgProgressReset)); err != nil {
			return err
		}
		return h.sendCard(ctx, userID, chatID, h.flashcardService.Current)
	}
}

// handleAll sends a paginated list of all numbers.
func (h *Handler) handleAll() HandlerFunc {
	return h.sendList(numerals.Min, numerals.Max)
}

// handleRange sends a paginated list of numbers in a specified range.
func (h *Handler) handleRange(argsStr string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args := strings.Fields(argsStr)
		if len(args) != 2 {
			return h.send(newPlainMessage(chatID, msgUseRange))
		}

		from, errFrom := strconv.Atoi(args[0])
		to, errTo := strconv.Atoi(args[1])
		if errFrom != nil || errTo != nil || from < numerals.Min || to > numerals.Max || from > to {
			return h.send(newPlainMessage(chatID, msgInvalidRange))
		}

		return h.sendList(from, to)(ctx, chatID)
	}
}

func (h *Handler) sendList(from, to int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cards, err := h.numberService.Cards(ctx, from, to)
		if err != nil {
			return err
		}

		text, totalPages := buildCardsPage(cards, 0)

		msg := newMessage(chatID, text)
		if kb := buildListKeyboard(0, totalPages, from, to); kb != nil {
			msg.ReplyMarkup = *kb
		}

		return h.send(msg)
	}
}

// handleDaily toggles the number of the day subscription.
func (h *Handler) handleDaily(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		on, err := h.stateService.ToggleDaily(ctx, userID)
		if err != nil {
			return err
		}

		h.logger.Info("daily number toggled",
			zap.Int64("user_id", userID),
			zap.Bool("enabled", on),
		)

		if on {
			return h.send(newPlainMessage(chatID, msgDailyOn))
		}
		return h.send(newPlainMessage(chatID, msgDailyOff))
	}
}

func (h *Handler) sendCard(ctx context.Context, userID, chatID int64, move cardMove) error {
	card, err := move(ctx, userID)
	if err != nil {
		return err
	}

	msg := newMessage(chatID, cardText(card, false))
	msg.ReplyMarkup = buildCardKeyboard(card, false)

	if err := h.send(msg); err != nil {
		return err
	}

	h.sendSpeech(ctx, chatID, h.speechService.Prompt(card.Number))
	return nil
}

// sendQuestion sends the current question, or the summary once the round is over.
func (h *Handler) sendQuestion(ctx context.Context, userID, chatID int64) error {
	q, err := h.quizService.Current(ctx, userID)
	if errors.Is(err, service.ErrQuizFinished) {
		return h.sendSummary(ctx, userID, chatID)
	}
	if err != nil {
		return err
	}

	msg := newMessage(chatID, questionText(q))
	msg.ReplyMarkup = buildQuizKeyboard(q)

	if err := h.send(msg); err != nil {
		return err
	}

	h.sendSpeech(ctx, chatID, h.speechService.Prompt(q.Answer))
	return nil
}

func (h *Handler) sendSummary(ctx context.Context, userID, chatID int64) error {
	sum, err := h.quizService.Summary(ctx, userID)
	if err != nil {
		return err
	}

	msg := newMessage(chatID, summaryText(sum))
	msg.ReplyMarkup = buildQuizResultKeyboard()

	return h.send(msg)
}
