package views

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scentquiz/internal/application"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/ports"
)

// LoginKeyMap defines key bindings for the login view
type LoginKeyMap struct {
	Submit key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var LoginKeys = LoginKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "login/register"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

const (
	fieldUsername = iota
	fieldPassword
)

// LoginModel asks for credentials and either logs in or registers
type LoginModel struct {
	ViewState
	identity ports.IdentityProvider
	form     *InputForm
	register bool
	busy     bool
}

type loginErrMsg struct{ err error }

// NewLoginModel creates the login view
func NewLoginModel(identity ports.IdentityProvider) *LoginModel {
	return &LoginModel{
		identity: identity,
		form: NewInputForm(
			NewInputField("Username", "testuser", 64),
			NewPasswordField("Password", 72),
		),
	}
}

// Registering reports whether the view is in register mode
func (m *LoginModel) Registering() bool {
	return m.register
}

// Init initializes the login view
func (m *LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login view
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case loginErrMsg:
		m.busy = false
		m.SetMessage(loginErrorText(msg.err, m.register), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, LoginKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, LoginKeys.Toggle):
			m.register = !m.register
			m.ClearMessage()
			return m, nil
		case key.Matches(msg, LoginKeys.Submit):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.ClearMessage()
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *LoginModel) submit() tea.Cmd {
	username := m.form.Value(fieldUsername)
	password := m.form.RawValue(fieldPassword)
	register := m.register
	identity := m.identity

	return func() tea.Msg {
		ctx := context.Background()
		if register {
			user, err := commands.NewRegisterCommand(identity, username, password).Execute(ctx)
			if err != nil {
				return loginErrMsg{err: err}
			}
			return LoggedInMsg{User: user, Registered: true}
		}
		user, err := commands.NewLoginCommand(identity, username, password).Execute(ctx)
		if err != nil {
			return loginErrMsg{err: err}
		}
		return LoggedInMsg{User: user}
	}
}

func loginErrorText(err error, register bool) string {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, application.ErrInvalidCredentials):
		return "Incorrect username or password. New here? Press ctrl+r to register."
	case errors.Is(err, application.ErrUserExists):
		return "That username is taken. Press ctrl+r to log in instead."
	case register:
		return "Registration failed: " + err.Error()
	default:
		return "Login failed: " + err.Error()
	}
}

// View renders the login view
func (m *LoginModel) View() string {
	title := "Log in"
	if m.register {
		title = "Create an account"
	}

	return NewViewBuilder().
		Title("Scent Quiz").
		Subtitle(title).
		Line(m.form.View()).
		Message(m.Message, m.MessageErr).
		Help(LoginKeys.Submit, m.form.Keys.Next, LoginKeys.Toggle, LoginKeys.Quit).
		String()
}
