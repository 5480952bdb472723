package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

// SendDailyNumber delivers the number of the day to the user's chat.
// A user who blocked the bot is deactivated.
func (h *Handler) SendDailyNumber(ctx context.Context, userID, chatID int64, card entities.Card) error {
	msg := newMessage(chatID, dailyText(&card))
	msg.ReplyMarkup = buildDailyKeyboard(&card)

	if _, err := h.bot.Send(msg); err != nil {
		if isBlocked(err) {
			if derr := h.userService.Deactivate(ctx, userID); derr != nil {
				h.logger.Error("failed to deactivate user",
					zap.Int64("user_id", userID),
					zap.Int64("chat_id", chatID),
					zap.Error(derr),
				)
			}
		}
		return fmt.Errorf("send daily number to chat %d: %w", chatID, err)
	}

	return nil
}
