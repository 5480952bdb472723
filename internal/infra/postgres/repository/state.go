package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/infra/postgres"
)

// StateRepository stores per-user trainer state as key/value pairs.
type StateRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

// NewStateRepository creates a new StateRepository.
// Multi-key writes go through tr so that a learner never sees half an update.
func NewStateRepository(db postgres.DBTX, tr *postgres.Transactor) *StateRepository {
	return &StateRepository{db: db, tr: tr}
}

// GetAll returns every stored key for the user. A user without state gets an empty map.
func (r *StateRepository) GetAll(ctx context.Context, userID int64) (map[string]string, error) {
	query := `
		SELECT key, value
		FROM trainer_state
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}

	return values, nil
}

// SetMany upserts the given keys in a single transaction.
func (r *StateRepository) SetMany(ctx context.Context, userID int64, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	query := `
		INSERT INTO trainer_state (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for key, value := range values {
			batch.Queue(query, userID, key, value)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("set state: %w", err)
		}

		return nil
	})
}

// Delete removes all state of the user.
func (r *StateRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trainer_state WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// ListUsersWithValue returns the IDs of active users whose key holds value.
func (r *StateRepository) ListUsersWithValue(ctx context.Context, key, value string) ([]int64, error) {
	query := `
		SELECT s.user_id
		FROM trainer_state s
		JOIN users u ON u.id = s.user_id
		WHERE s.key = $1 AND s.value = $2 AND u.is_active
		ORDER BY s.user_id
	`

	rows, err := r.db.Query(ctx, query, key, value)
	if err != nil {
		return nil, fmt.Errorf("list users by state: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect user ids: %w", err)
	}

	return ids, nil
}
