// Package auth verifies usernames and passwords against bcrypt hashes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// BcryptIdentity implements ports.IdentityProvider on top of a UserStore
type BcryptIdentity struct {
	users  ports.UserStore
	cost   int
	logger *zap.Logger
	now    func() time.Time
}

var _ ports.IdentityProvider = (*BcryptIdentity)(nil)

// NewBcryptIdentity creates an identity provider. A cost outside bcrypt's range uses bcrypt.DefaultCost.
func NewBcryptIdentity(users ports.UserStore, cost int, logger *zap.Logger) *BcryptIdentity {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BcryptIdentity{users: users, cost: cost, logger: logger, now: time.Now}
}

// Register hashes the password and stores the user; the store rejects duplicates
func (p *BcryptIdentity) Register(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := p.users.CreateUser(ctx, username, hash); err != nil {
		return nil, err
	}
	p.logger.Info("user registered", zap.String("user", username))
	return &domain.User{Username: username, CreatedAt: p.now().UTC()}, nil
}

// Authenticate checks the password. Unknown users and wrong passwords both
// return ErrInvalidCredentials.
func (p *BcryptIdentity) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := p.users.PasswordHash(ctx, username)
	if errors.Is(err, application.ErrNotFound) {
		return nil, application.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			p.logger.Debug("password mismatch", zap.String("user", username))
			return nil, application.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return &domain.User{Username: username}, nil
}
