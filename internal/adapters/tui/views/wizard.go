package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scentquiz/internal/adapters/tui/styles"
	"scentquiz/internal/domain"
	"scentquiz/internal/session"
)

// WizardKeyMap defines key bindings for the quiz steps
type WizardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Select  key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var WizardKeys = WizardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "toggle"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	History: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "history"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// WizardModel walks the user through Mood, Occasion and Notes
type WizardModel struct {
	ViewState
	session    *session.Session
	cursor     int
	checked    map[string]bool
	hasHistory bool
	busy       bool
}

// NewWizardModel creates the quiz view for a session. hasHistory enables the history key.
func NewWizardModel(s *session.Session, hasHistory bool) *WizardModel {
	return &WizardModel{
		session:    s,
		checked:    make(map[string]bool),
		hasHistory: hasHistory,
	}
}

// Reset returns the view to the first option with nothing checked
func (m *WizardModel) Reset() {
	m.cursor = 0
	m.busy = false
	clear(m.checked)
	m.ClearMessage()
}

// Fail shows an error from a submission that left the session on the Notes step
func (m *WizardModel) Fail(err error) {
	m.busy = false
	m.SetMessage(err.Error(), true)
}

// Cursor returns the highlighted option index
func (m *WizardModel) Cursor() int {
	return m.cursor
}

// Init initializes the wizard view
func (m *WizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wizard view
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		options := m.session.Options()

		switch {
		case key.Matches(msg, WizardKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, WizardKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, WizardKeys.History):
			if !m.hasHistory {
				return m, nil
			}
			return m, func() tea.Msg { return SwitchToHistoryMsg{} }
		case key.Matches(msg, WizardKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, WizardKeys.Down):
			if m.cursor < len(options)-1 {
				m.cursor++
			}
		case key.Matches(msg, WizardKeys.Toggle):
			if m.session.Step().MultiSelect() && m.cursor < len(options) {
				opt := options[m.cursor]
				m.checked[opt] = !m.checked[opt]
			}
		case key.Matches(msg, WizardKeys.Select):
			return m, m.choose(options)
		}
	}
	return m, nil
}

func (m *WizardModel) choose(options []string) tea.Cmd {
	if m.cursor >= len(options) {
		return nil
	}

	var err error
	switch m.session.Step() {
	case domain.StepMood:
		err = m.session.SelectMood(domain.Mood(options[m.cursor]))
	case domain.StepOccasion:
		err = m.session.SelectOccasion(domain.Occasion(options[m.cursor]))
	case domain.StepNotes:
		return m.submit(options)
	}
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.cursor = 0
	m.ClearMessage()
	return nil
}

func (m *WizardModel) submit(options []string) tea.Cmd {
	var notes []domain.Note
	for _, opt := range options {
		if m.checked[opt] {
			notes = append(notes, domain.Note(opt))
		}
	}
	m.busy = true
	s := m.session

	return func() tea.Msg {
		res, err := s.SubmitNotes(context.Background(), notes)
		return RecommendedMsg{Result: res, Err: err}
	}
}

// View renders the current step
func (m *WizardModel) View() string {
	step := m.session.Step()
	options := m.session.Options()
	partial := m.session.Snapshot().Query

	vb := NewViewBuilder().
		Title("Scent Quiz").
		Line(m.progress(step, partial)).
		BlankLine().
		Subtitle(step.Prompt())

	for i, opt := range options {
		vb.Line(RenderChoice(opt, i == m.cursor, step.MultiSelect(), m.checked[opt]))
	}
	if step.MultiSelect() {
		vb.BlankLine().Muted("Pick any number of notes, or none at all.")
	}
	if m.busy {
		vb.BlankLine().Muted("Finding your perfumes...")
	}

	toggle := WizardKeys.Toggle
	toggle.SetEnabled(step.MultiSelect())
	history := WizardKeys.History
	history.SetEnabled(m.hasHistory)

	return vb.
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(WizardKeys.Up, WizardKeys.Down, toggle, WizardKeys.Select, history, WizardKeys.Help, WizardKeys.Quit).
		String()
}

func (m *WizardModel) progress(step domain.Step, partial domain.PreferenceQuery) string {
	labels := []string{"Mood", "Occasion", "Notes"}
	answers := []string{string(partial.Mood), string(partial.Occasion), ""}

	var out string
	for i, label := range labels {
		if i > 0 {
			out += styles.MutedText.Render(" › ")
		}
		switch {
		case int(step) > i && answers[i] != "":
			out += styles.StepDone.Render(fmt.Sprintf("%s: %s", label, answers[i]))
		case int(step) == i:
			out += styles.Step.Render(label)
		default:
			out += styles.MutedText.Render(label)
		}
	}
	return out
}
