package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// LoginCommand authenticates an existing user
type LoginCommand struct {
	identity ports.IdentityProvider
	Username string
	Password string
}

// NewLoginCommand creates a new LoginCommand
func NewLoginCommand(identity ports.IdentityProvider, username, password string) *LoginCommand {
	return &LoginCommand{
		identity: identity,
		Username: strings.TrimSpace(username),
		Password: password,
	}
}

// Validate checks both credentials are present
func (c *LoginCommand) Validate() error {
	if err := application.ValidateRequired("username", c.Username); err != nil {
		return err
	}
	return application.ValidateRequired("password", c.Password)
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context) (*domain.User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.identity.Authenticate(ctx, c.Username, c.Password)
}

// RegisterCommand creates a new user
type RegisterCommand struct {
	identity ports.IdentityProvider
	Username string
	Password string
}

// NewRegisterCommand creates a new RegisterCommand
func NewRegisterCommand(identity ports.IdentityProvider, username, password string) *RegisterCommand {
	return &RegisterCommand{
		identity: identity,
		Username: strings.TrimSpace(username),
		Password: password,
	}
}

// Validate checks the username format and password length
func (c *RegisterCommand) Validate() error {
	if err := application.ValidateUsername(c.Username); err != nil {
		return err
	}
	return application.ValidatePassword(c.Password)
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context) (*domain.User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.identity.Register(ctx, c.Username, c.Password)
}

// CheckUserCommand confirms a username belongs to a registered account before
// history is read or written under it
type CheckUserCommand struct {
	users    ports.UserStore
	Username string
}

// NewCheckUserCommand creates a new CheckUserCommand. With a nil store every
// name is accepted.
func NewCheckUserCommand(users ports.UserStore, username string) *CheckUserCommand {
	return &CheckUserCommand{
		users:    users,
		Username: strings.TrimSpace(username),
	}
}

// Validate checks the username is present
func (c *CheckUserCommand) Validate() error {
	return application.ValidateRequired("username", c.Username)
}

// Execute fails with application.ErrNotFound for unknown users
func (c *CheckUserCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.users == nil {
		return nil
	}
	if _, err := c.users.PasswordHash(ctx, c.Username); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return fmt.Errorf("unknown user %q: %w", c.Username, application.ErrNotFound)
		}
		return fmt.Errorf("look up user %s: %w", c.Username, err)
	}
	return nil
}
