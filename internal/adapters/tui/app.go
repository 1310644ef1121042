package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"scentquiz/internal/adapters/tui/views"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
	"scentquiz/internal/session"
)

// ViewState represents the current view
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewWizard
	ViewResults
	ViewHistory
	ViewHelp
)

// Options wires the collaborators of the TUI
type Options struct {
	Identity     ports.IdentityProvider
	Session      session.Deps
	Opener       ports.URLOpener
	Clipboard    views.ClipboardWriter
	AuthRequired bool
	Logger       *zap.Logger
}

// App is the main TUI application model
type App struct {
	opts   Options
	logger *zap.Logger

	state ViewState
	prev  ViewState
	user  *domain.User
	sess  *session.Session

	login   *views.LoginModel
	wizard  *views.WizardModel
	results *views.ResultsModel
	history *views.HistoryModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. Without required auth the quiz starts
// immediately for an anonymous user and nothing is written to history.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Session.Logger = logger

	strategy := ""
	if opts.Session.Matcher != nil {
		strategy = opts.Session.Matcher.Strategy()
	}

	a := &App{
		opts:   opts,
		logger: logger,
		login:  views.NewLoginModel(opts.Identity),
		help:   views.NewHelpModel(strategy),
	}
	if opts.AuthRequired && opts.Identity != nil {
		a.state = ViewLogin
	} else {
		a.startQuiz(nil)
	}
	return a
}

// State returns the visible view
func (a *App) State() ViewState {
	return a.state
}

// User returns the logged-in user, nil when anonymous
func (a *App) User() *domain.User {
	return a.user
}

// Session returns the quiz session, nil before login
func (a *App) Session() *session.Session {
	return a.sess
}

func (a *App) startQuiz(user *domain.User) {
	a.user = user
	userID := ""
	if user != nil {
		userID = user.Username
	}

	a.sess = session.New(uuid.NewString(), userID, a.opts.Session)
	hasHistory := userID != "" && a.opts.Session.History != nil

	a.wizard = views.NewWizardModel(a.sess, hasHistory)
	a.results = views.NewResultsModel(a.sess, a.opts.Session.Matcher, a.opts.Opener, a.opts.Clipboard, hasHistory)
	a.history = views.NewHistoryModel(a.opts.Session.History, userID)
	for _, v := range []interface{ SetSize(int, int) }{a.wizard, a.results, a.history} {
		v.SetSize(a.width, a.height)
	}
	a.state = ViewWizard
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.state == ViewLogin {
		return a.login.Init()
	}
	return nil
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		if a.sess != nil {
			a.wizard.SetSize(msg.Width, msg.Height)
			a.results.SetSize(msg.Width, msg.Height)
			a.history.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case views.LoggedInMsg:
		a.logger.Info("user logged in",
			zap.String("user", msg.User.Username),
			zap.Bool("registered", msg.Registered),
		)
		a.startQuiz(msg.User)
		if msg.Registered {
			a.wizard.SetMessage("Welcome, "+msg.User.Username+"! Your account is ready.", false)
		}
		return a, nil

	case views.RecommendedMsg:
		if msg.Err != nil && a.sess.Step() != domain.StepResults {
			a.wizard.Fail(msg.Err)
			return a, nil
		}
		if msg.Err != nil {
			a.logger.Error("recommendation failed", zap.Error(msg.Err))
		}
		a.results.SetResult(msg.Result, msg.Err)
		a.state = ViewResults
		return a, nil

	case views.SwitchToWizardMsg:
		a.wizard.Reset()
		a.state = ViewWizard
		return a, nil

	case views.SwitchToHistoryMsg:
		a.prev = a.state
		a.state = ViewHistory
		return a, a.history.Reload()

	case views.SwitchToHelpMsg:
		a.prev = a.state
		a.state = ViewHelp
		return a, nil

	case views.SwitchBackMsg:
		a.state = a.prev
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewWizard:
		_, cmd = a.wizard.Update(msg)
	case ViewResults:
		_, cmd = a.results.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLogin:
		return a.login.View()
	case ViewResults:
		return a.results.View()
	case ViewHistory:
		return a.history.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.wizard.View()
	}
}
