package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
		case errors.Is(err, numerals.ErrInvalidArgument):
			h.sendError(chatID, msgOutOfRangeNumber)
		case errors.Is(err, context.Canceled):
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}

func (h *Handler) withCallbackErrorHandling(fn callbackFunc) func(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	return func(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
		notice, err := fn(ctx, cb, cd)
		switch {
		case err == nil, isNotModified(err):
			return notice
		case errors.Is(err, numerals.ErrInvalidArgument):
			return msgOutOfRangeNumber
		default:
			h.logger.Error("handle callback error",
				zap.Int64("user_id", cb.From.ID),
				zap.String("data", cd.Raw),
				zap.Error(err),
			)
			return msgInternalError
		}
	}
}
