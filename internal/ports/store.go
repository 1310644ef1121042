package ports

import (
	"context"

	"scentquiz/internal/domain"
)

// HistoryStore persists completed quiz runs per user. It is append-only.
type HistoryStore interface {
	AppendHistory(ctx context.Context, userID string, query domain.PreferenceQuery, recommended []domain.ItemRef) error

	// GetHistory returns the user's entries, newest first
	GetHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
}

// UserStore persists accounts and their password hashes
type UserStore interface {
	// CreateUser fails with application.ErrUserExists when the username is taken
	CreateUser(ctx context.Context, username string, passwordHash []byte) error

	// PasswordHash fails with application.ErrNotFound for unknown users
	PasswordHash(ctx context.Context, username string) ([]byte, error)
}

// IdentityProvider registers and authenticates users.
// It never exposes password hashes to callers.
type IdentityProvider interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
