package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot              Bot
	logger           *zap.Logger
	userService      UserService
	numberService    NumberService
	flashcardService FlashcardService
	quizService      QuizService
	stateService     StateService
	speechService    SpeechService

	mu      sync.Mutex
	pending map[int64]*time.Timer // delayed next question per chat
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	numberService NumberService,
	flashcardService FlashcardService,
	quizService QuizService,
	stateService StateService,
	speechService SpeechService,
) *Handler {
	return &Handler{
		bot:              bot,
		logger:           logger,
		userService:      userService,
		numberService:    numberService,
		flashcardService: flashcardService,
		quizService:      quizService,
		stateService:     stateService,
		speechService:    speechService,
		pending:          make(map[int64]*time.Timer),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()
	defer h.cancelAllPending()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if update.Message.IsCommand() {
		var fn HandlerFunc

		switch update.Message.Command() {
		case "start":
			fn = h.handleStart(from.ID)
		case "help":
			fn = h.handleHelp()
		case "learn":
			fn = h.handleLearn(from.ID)
		case "quiz":
			fn = h.handleQuiz(from.ID)
		case "next":
			fn = h.handleCardMove(from.ID, h.flashcardService.Next)
		case "prev":
			fn = h.handleCardMove(from.ID, h.flashcardService.Prev)
		case "shuffle":
			fn = h.handleCardMove(from.ID, h.flashcardService.Random)
		case "restart":
			fn = h.handleCardMove(from.ID, h.flashcardService.Restart)
		case "speak":
			fn = h.handleSpeak(from.ID)
		case "reset":
			fn = h.handleReset(from.ID)
		case "all":
			fn = h.handleAll()
		case "range":
			fn = h.handleRange(update.Message.CommandArguments())
		case "daily":
			fn = h.handleDaily(from.ID)
		default:
			fn = h.handleUnknown()
		}

		_ = h.withErrorHandling(fn)(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleNumber(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// request is send for calls that return no message, like answering callbacks.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed", zap.Error(err))
	}
}

// isBlocked reports whether Telegram refused delivery because the user blocked the bot.
func isBlocked(err error) bool {
	var tgErr *tgbotapi.Error
	return errors.As(err, &tgErr) && tgErr.Code == http.StatusForbidden
}

// isNotModified reports whether an edit was rejected because nothing changed.
func isNotModified(err error) bool {
	var tgErr *tgbotapi.Error
	return errors.As(err, &tgErr) &&
		tgErr.Code == http.StatusBadRequest &&
		strings.Contains(tgErr.Message, "message is not modified")
}
