// Package memory keeps users and history in process memory. Nothing survives a restart.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
)

type user struct {
	hash      []byte
	createdAt time.Time
}

// Store implements ports.UserStore and ports.HistoryStore
type Store struct {
	mu      sync.RWMutex
	users   map[string]user
	history []domain.HistoryEntry
	nextID  int64
	now     func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users: make(map[string]user),
		now:   time.Now,
	}
}

// CreateUser stores a new user; an existing username returns ErrUserExists
func (s *Store) CreateUser(ctx context.Context, username string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return fmt.Errorf("%s: %w", username, application.ErrUserExists)
	}
	s.users[username] = user{hash: bytes.Clone(hash), createdAt: s.now().UTC()}
	return nil
}

// PasswordHash returns the stored hash for username
func (s *Store) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, application.ErrNotFound)
	}
	return bytes.Clone(u.hash), nil
}

// AppendHistory records one quiz run
func (s *Store) AppendHistory(ctx context.Context, userID string, query domain.PreferenceQuery, recommended []domain.ItemRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.history = append(s.history, domain.HistoryEntry{
		ID:          s.nextID,
		UserID:      userID,
		Query:       query.Clone(),
		Recommended: slices.Clone(recommended),
		CreatedAt:   s.now().UTC(),
	})
	return nil
}

// GetHistory returns the user's runs, newest first
func (s *Store) GetHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.HistoryEntry
	for i := len(s.history) - 1; i >= 0; i-- {
		e := s.history[i]
		if e.UserID != userID {
			continue
		}
		e.Query = e.Query.Clone()
		e.Recommended = slices.Clone(e.Recommended)
		out = append(out, e)
	}
	return out, nil
}
