package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scentquiz/internal/adapters/tui/styles"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Back     key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "pgup"),
		key.WithHelp("←", "prev page"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "h"),
		key.WithHelp("esc", "back"),
	),
}

const historyPageSize = 8

type historyLoadedMsg struct {
	entries []domain.HistoryEntry
	err     error
}

// HistoryModel lists the past recommendations of the logged-in user
type HistoryModel struct {
	ViewState
	history ports.HistoryStore
	userID  string

	entries   []domain.HistoryEntry
	paginator *Paginator
	loading   bool
}

// NewHistoryModel creates the history view
func NewHistoryModel(history ports.HistoryStore, userID string) *HistoryModel {
	return &HistoryModel{
		history:   history,
		userID:    userID,
		paginator: NewPaginator(historyPageSize),
	}
}

// SetUser changes whose history is shown
func (m *HistoryModel) SetUser(userID string) {
	m.userID = userID
}

// Entries returns the loaded entries, newest first
func (m *HistoryModel) Entries() []domain.HistoryEntry {
	return m.entries
}

// Init initializes the history view
func (m *HistoryModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the history again
func (m *HistoryModel) Reload() tea.Cmd {
	m.loading = true
	m.ClearMessage()
	history, userID := m.history, m.userID
	return func() tea.Msg {
		entries, err := commands.NewHistoryCommand(history, userID).Execute(context.Background())
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case historyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.entries = nil
			m.SetMessage("Cannot load history: "+msg.err.Error(), true)
		} else {
			m.entries = msg.entries
		}
		m.paginator.Reset()
		m.paginator.SetTotal(len(m.entries))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, HistoryKeys.Back):
			return m, func() tea.Msg { return SwitchBackMsg{} }
		case key.Matches(msg, HistoryKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, HistoryKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, HistoryKeys.NextPage):
			m.paginator.NextPage()
		case key.Matches(msg, HistoryKeys.PrevPage):
			m.paginator.PrevPage()
		}
	}
	return m, nil
}

// View renders the history view
func (m *HistoryModel) View() string {
	vb := NewViewBuilder().
		Title("Past recommendations").
		Subtitle(m.userID)

	switch {
	case m.loading:
		vb.Muted("Loading...")
	case len(m.entries) == 0 && m.Message == "":
		vb.Muted("No quiz taken yet.")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			vb.Line(m.renderEntry(m.entries[i], i == m.paginator.Cursor()))
		}
		if m.paginator.TotalPages() > 1 {
			vb.BlankLine().Muted(fmt.Sprintf("Page %d of %d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
		}
	}

	return vb.
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(HistoryKeys.Up, HistoryKeys.Down, HistoryKeys.NextPage, HistoryKeys.PrevPage, HistoryKeys.Back).
		String()
}

func (m *HistoryModel) renderEntry(e domain.HistoryEntry, selected bool) string {
	header := styles.MutedText.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")) + "  " + RenderQuery(e.Query)
	if !selected {
		return "  " + header
	}

	body := styles.Pointer + header
	if len(e.Recommended) == 0 {
		return body + "\n    " + styles.MutedText.Render("no match")
	}
	for i, ref := range e.Recommended {
		body += fmt.Sprintf("\n    %d. %s", i+1, ref)
	}
	return body
}
