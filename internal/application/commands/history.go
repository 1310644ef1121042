package commands

import (
	"context"
	"fmt"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// HistoryCommand lists a user's past quiz runs, newest first
type HistoryCommand struct {
	history ports.HistoryStore
	UserID  string
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(history ports.HistoryStore, userID string) *HistoryCommand {
	return &HistoryCommand{
		history: history,
		UserID:  userID,
	}
}

// Validate checks the user is set
func (c *HistoryCommand) Validate() error {
	return application.ValidateRequired("userID", c.UserID)
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.history == nil {
		return nil, nil
	}

	entries, err := c.history.GetHistory(ctx, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("get history for %s: %w", c.UserID, err)
	}
	return entries, nil
}
