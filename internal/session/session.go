// Package session holds the per-session quiz context. Every client (a TUI run,
// an HTTP session) gets its own Session; nothing is shared between sessions
// except the read-only matcher and the stores.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// Deps are the collaborators shared by all sessions
type Deps struct {
	Matcher ports.Matcher
	History ports.HistoryStore
	Logger  *zap.Logger
}

// Session is one user's walk through the quiz
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	deps Deps

	mu       sync.Mutex
	wizard   *domain.Wizard
	result   *commands.RecommendResult
	matchErr error
	lastUsed time.Time
	now      func() time.Time
}

// Snapshot is a consistent copy of a session's state
type Snapshot struct {
	ID         string
	UserID     string
	Step       domain.Step
	Options    []string
	Query      domain.PreferenceQuery
	Results    []domain.RankedResult
	Strategy   string
	NoMatch    bool
	HistoryErr error
	// Err is set when the recommendations could not be computed. It is never
	// reported as NoMatch.
	Err error
}

// New creates a session at the Mood step
func New(id, userID string, deps Deps) *Session {
	return newSession(id, userID, deps, time.Now)
}

func newSession(id, userID string, deps Deps, now func() time.Time) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	t := now()
	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: t,
		deps:      deps,
		wizard:    domain.NewWizard(),
		lastUsed:  t,
		now:       now,
	}
}

// Step returns the current wizard step
func (s *Session) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Step()
}

// Options returns the choices for the current step
func (s *Session) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Options()
}

// SelectMood answers the Mood step
func (s *Session) SelectMood(m domain.Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.wizard.SelectMood(m)
}

// SelectOccasion answers the Occasion step
func (s *Session) SelectOccasion(o domain.Occasion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.wizard.SelectOccasion(o)
}

// SubmitNotes answers the Notes step and computes the recommendations on entry to Results.
// A failed history append is reported in the result, not as an error.
func (s *Session) SubmitNotes(ctx context.Context, notes []domain.Note) (*commands.RecommendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	q, err := s.wizard.SelectNotes(notes)
	if err != nil {
		return nil, err
	}

	res, err := commands.NewRecommendCommand(s.deps.Matcher, s.deps.History, s.deps.Logger, s.UserID, q).Execute(ctx)
	if err != nil {
		// the wizard already moved to Results; only Restart leaves this state
		s.result, s.matchErr = nil, err
		return nil, err
	}
	s.result, s.matchErr = res, nil
	return res, nil
}

// Results returns the last recommendations, or nil before Results is reached
// and after a failed match
func (s *Session) Results() *commands.RecommendResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wizard.Step() != domain.StepResults {
		return nil
	}
	return s.result
}

// Restart clears the query and returns to Mood
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.wizard.Restart(); err != nil {
		return err
	}
	s.result, s.matchErr = nil, nil
	return nil
}

// Snapshot returns a copy of the session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:      s.ID,
		UserID:  s.UserID,
		Step:    s.wizard.Step(),
		Options: s.wizard.Options(),
		Query:   s.wizard.Partial(),
	}
	if snap.Step == domain.StepResults && s.matchErr != nil {
		snap.Err = s.matchErr
	}
	if snap.Step == domain.StepResults && s.result != nil {
		snap.Results = append([]domain.RankedResult(nil), s.result.Results...)
		snap.Strategy = s.result.Strategy
		snap.NoMatch = s.result.NoMatch()
		snap.HistoryErr = s.result.HistoryErr
	}
	return snap
}

// LastUsed returns when the session was last looked up or changed
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) keepAlive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}
