package entities

import "time"

// User is a learner the bot talks to. In private chats ChatID equals ID.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64
	IsActive  bool // false once the user blocked the bot
	CreatedAt time.Time
}

// NewUser returns an active user first seen now.
func NewUser(id, chatID int64) *User {
	return &User{
		ID:        id,
		ChatID:    chatID,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}
