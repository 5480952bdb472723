package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

var ErrUserNotFound = errors.New("user not found")

// UserStorage keeps users in memory.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

// NewUserStorage creates a new UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[int64]entities.User),
	}
}

// Save inserts or replaces a user and reports whether it was new.
func (s *UserStorage) Save(_ context.Context, user *entities.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	u := *user
	if ok {
		u.CreatedAt = existing.CreatedAt
	}
	s.users[user.ID] = u
	return !ok, nil
}

// GetByID returns a copy of the stored user.
func (s *UserStorage) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Deactivate marks a user as inactive.
func (s *UserStorage) Deactivate(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = false
	s.users[userID] = u
	return nil
}
