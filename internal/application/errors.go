package application

import (
	"errors"
	"fmt"

	"scentquiz/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCatalogLoad        = errors.New("catalog load failed")

	ErrEmptyQuery        = domain.ErrEmptyQuery
	ErrInvalidChoice     = domain.ErrInvalidChoice
	ErrInvalidTransition = domain.ErrInvalidTransition
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CatalogLoadError reports a missing or corrupt catalog source. It is fatal at startup.
type CatalogLoadError struct {
	Source string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("cannot load catalog %s: %v", e.Source, e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

func (e *CatalogLoadError) Is(target error) bool {
	return target == ErrCatalogLoad
}

// HistoryError reports a failed history append. Recommendations are still shown.
type HistoryError struct {
	UserID string
	Err    error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("cannot record history for %s: %v", e.UserID, e.Err)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}
