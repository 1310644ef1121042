package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scentquiz/internal/application"
)

// Manager owns the live sessions of a server and evicts idle ones
type Manager struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures a Manager
type Option func(*Manager)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager. A ttl of zero disables eviction.
func NewManager(deps Deps, ttl time.Duration, opts ...Option) *Manager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := &Manager{
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session for userID (empty for anonymous use)
func (m *Manager) Create(userID string) *Session {
	s := newSession(uuid.NewString(), userID, m.deps, m.now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.deps.Logger.Debug("session created", zap.String("session", s.ID), zap.String("user", userID))
	return s
}

// Get returns the session with id. A lookup counts as use, so polling
// clients are not evicted.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, application.ErrNotFound)
	}
	s.keepAlive()
	return s, nil
}

// Delete ends the session with id
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, application.ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Evict removes sessions idle for longer than the ttl and returns how many were removed
func (m *Manager) Evict() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.deps.Logger.Info("evicted idle sessions", zap.Int("count", removed), zap.Int("remaining", len(m.sessions)))
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict()
		}
	}
}
