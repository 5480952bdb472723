package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository keeps the learners the bot may write to.
type UserRepository struct {
	db postgres.DBTX
}

func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

func (r userRow) toEntity() *entities.User {
	return &entities.User{
		ID:        r.ID,
		ChatID:    r.ChatID,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

// Save registers the learner or refreshes their chat. A learner who writes
// again after blocking the bot becomes active again.
// It reports whether the row was created by this call.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, is_active, created_at)
		VALUES (@id, @chat_id, @is_active, @created_at)
		ON CONFLICT (id) DO UPDATE SET
			chat_id   = EXCLUDED.chat_id,
			is_active = EXCLUDED.is_active
		RETURNING (xmax = 0) AS created
	`

	args := pgx.NamedArgs{
		"id":         user.ID,
		"chat_id":    user.ChatID,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
	}

	var created bool
	if err := r.db.QueryRow(ctx, query, args).Scan(&created); err != nil {
		return false, fmt.Errorf("save user %d: %w", user.ID, err)
	}

	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, chat_id, is_active, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("scan user %d: %w", userID, err)
	}

	return row.toEntity(), nil
}

// Deactivate stops daily pushes to a learner who blocked the bot.
func (r *UserRepository) Deactivate(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("deactivate user %d: %w", userID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
