package domain

import "errors"

var (
	// ErrEmptyQuery is returned when matching is attempted on a query whose
	// mood or occasion has not been chosen yet.
	ErrEmptyQuery = errors.New("preference query is incomplete")

	// ErrInvalidChoice is returned for a value outside its enumeration.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidTransition is returned when a wizard step is answered out of order.
	ErrInvalidTransition = errors.New("invalid wizard transition")
)
