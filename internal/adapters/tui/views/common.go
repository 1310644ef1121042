package views

import (
	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// LoggedInMsg is sent by the login view once the user is authenticated
type LoggedInMsg struct {
	User       *domain.User
	Registered bool
}

// RecommendedMsg carries the outcome of the Notes step
type RecommendedMsg struct {
	Result *commands.RecommendResult
	Err    error
}

// SwitchToWizardMsg returns to the quiz after a restart
type SwitchToWizardMsg struct{}

// SwitchToHistoryMsg opens the history of the logged-in user
type SwitchToHistoryMsg struct{}

// SwitchToHelpMsg opens the key reference
type SwitchToHelpMsg struct{}

// SwitchBackMsg closes history or help and returns to the previous view
type SwitchBackMsg struct{}

// statusMsg reports the outcome of a side action (copy, open) in the current view
type statusMsg struct {
	text  string
	isErr bool
}
