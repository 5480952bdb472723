// Package storage provides in-memory implementations of the bot's stores.
// They back the "memory" storage driver and the service tests.
package storage

import (
	"context"
	"slices"
	"sync"
)

// StateStorage keeps trainer state in memory, keyed by user ID.
type StateStorage struct {
	mu     sync.RWMutex
	values map[int64]map[string]string
}

// NewStateStorage creates a new StateStorage.
func NewStateStorage() *StateStorage {
	return &StateStorage{
		values: make(map[int64]map[string]string),
	}
}

// GetAll returns a copy of the user's stored keys.
func (s *StateStorage) GetAll(_ context.Context, userID int64) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values[userID]))
	for k, v := range s.values[userID] {
		out[k] = v
	}
	return out, nil
}

// SetMany stores all given keys at once.
func (s *StateStorage) SetMany(_ context.Context, userID int64, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.values[userID]
	if !ok {
		m = make(map[string]string, len(values))
		s.values[userID] = m
	}
	for k, v := range values {
		m[k] = v
	}
	return nil
}

// Delete removes the user's state.
func (s *StateStorage) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, userID)
	return nil
}

// ListUsersWithValue returns the users whose key holds value, in ascending order.
func (s *StateStorage) ListUsersWithValue(_ context.Context, key, value string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for userID, m := range s.values {
		if m[key] == value {
			ids = append(ids, userID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
