package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// RecommendResult contains the outcome of a quiz run
type RecommendResult struct {
	Query    domain.PreferenceQuery
	Results  []domain.RankedResult
	Strategy string
	// HistoryErr is set when the run could not be recorded. The results are still valid.
	HistoryErr error
}

// NoMatch reports whether nothing in the catalog matched the query
func (r *RecommendResult) NoMatch() bool {
	return len(r.Results) == 0
}

// RecommendCommand ranks the catalog against a completed query and records the run
type RecommendCommand struct {
	matcher ports.Matcher
	history ports.HistoryStore
	logger  *zap.Logger
	UserID  string
	Query   domain.PreferenceQuery
}

// NewRecommendCommand creates a new RecommendCommand. history may be nil, in which
// case nothing is recorded.
func NewRecommendCommand(matcher ports.Matcher, history ports.HistoryStore, logger *zap.Logger, userID string, query domain.PreferenceQuery) *RecommendCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendCommand{
		matcher: matcher,
		history: history,
		logger:  logger,
		UserID:  userID,
		Query:   query,
	}
}

// Validate checks the query is complete
func (c *RecommendCommand) Validate() error {
	return c.Query.Validate()
}

// Execute runs the matcher and appends a history entry when a user is known
func (c *RecommendCommand) Execute(ctx context.Context) (*RecommendResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results, err := c.matcher.Match(c.Query)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	res := &RecommendResult{
		Query:    c.Query.Clone(),
		Results:  results,
		Strategy: c.matcher.Strategy(),
	}

	c.logger.Debug("recommendations computed",
		zap.String("strategy", res.Strategy),
		zap.String("query", c.Query.Text()),
		zap.Int("results", len(results)),
	)

	if c.UserID == "" || c.history == nil {
		return res, nil
	}

	if err := c.history.AppendHistory(ctx, c.UserID, res.Query, domain.Refs(results)); err != nil {
		res.HistoryErr = &application.HistoryError{UserID: c.UserID, Err: err}
		c.logger.Warn("history append failed",
			zap.String("user", c.UserID),
			zap.Error(err),
		)
	}

	return res, nil
}
