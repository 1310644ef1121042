package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scentquiz/internal/adapters/tui/styles"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
	"scentquiz/internal/session"
)

// ResultsKeyMap defines key bindings for the results view
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Copy    key.Binding
	Restart key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open image"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy list"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
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

// ClipboardWriter copies text to the system clipboard
type ClipboardWriter func(text string) error

// ResultsModel shows the ranked recommendations of a finished quiz
type ResultsModel struct {
	ViewState
	session    *session.Session
	matcher    ports.Matcher
	opener     ports.URLOpener
	clipboard  ClipboardWriter
	hasHistory bool

	result *commands.RecommendResult
	err    error
	cursor int
}

// NewResultsModel creates the results view. opener and clipboard may be nil.
func NewResultsModel(s *session.Session, matcher ports.Matcher, opener ports.URLOpener, clipboard ClipboardWriter, hasHistory bool) *ResultsModel {
	return &ResultsModel{
		session:    s,
		matcher:    matcher,
		opener:     opener,
		clipboard:  clipboard,
		hasHistory: hasHistory,
	}
}

// SetResult shows the outcome of a quiz run
func (m *ResultsModel) SetResult(res *commands.RecommendResult, err error) {
	m.result = res
	m.err = err
	m.cursor = 0
	m.ClearMessage()
	if res != nil && res.HistoryErr != nil {
		m.SetMessage("Your recommendations could not be saved to history.", true)
	}
}

// Selected returns the highlighted result, if any
func (m *ResultsModel) Selected() (domain.RankedResult, bool) {
	if m.result == nil || m.cursor >= len(m.result.Results) {
		return domain.RankedResult{}, false
	}
	return m.result.Results[m.cursor], true
}

// Init initializes the results view
func (m *ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results view
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case statusMsg:
		m.SetMessage(msg.text, msg.isErr)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ResultsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, ResultsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, ResultsKeys.History):
			if !m.hasHistory {
				return m, nil
			}
			return m, func() tea.Msg { return SwitchToHistoryMsg{} }
		case key.Matches(msg, ResultsKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, ResultsKeys.Down):
			if m.result != nil && m.cursor < len(m.result.Results)-1 {
				m.cursor++
			}
		case key.Matches(msg, ResultsKeys.Restart):
			if err := m.session.Restart(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, func() tea.Msg { return SwitchToWizardMsg{} }
		case key.Matches(msg, ResultsKeys.Open):
			return m, m.openImage()
		case key.Matches(msg, ResultsKeys.Copy):
			return m, m.copyList()
		}
	}
	return m, nil
}

func (m *ResultsModel) openImage() tea.Cmd {
	sel, ok := m.Selected()
	if !ok || m.opener == nil {
		return nil
	}
	if sel.Item.ImageURL == "" {
		m.SetMessage(fmt.Sprintf("%s has no image.", sel.Item.Name), true)
		return nil
	}

	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(sel.Item.ImageURL); err != nil {
			return statusMsg{text: "Cannot open image: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Opened image of " + sel.Item.Name}
	}
}

func (m *ResultsModel) copyList() tea.Cmd {
	if m.clipboard == nil || m.result == nil || m.result.NoMatch() {
		return nil
	}

	text := FormatResultList(m.result.Results)
	write := m.clipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return statusMsg{text: "Cannot copy: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Copied to clipboard"}
	}
}

// FormatResultList renders results as a plain numbered list
func FormatResultList(results []domain.RankedResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", r.Rank, r.Item.Ref())
	}
	return b.String()
}

// View renders the results view
func (m *ResultsModel) View() string {
	vb := NewViewBuilder().Title("Your recommendations")

	if m.result != nil {
		vb.Subtitle(RenderQuery(m.result.Query))
	}

	switch {
	case m.err != nil:
		vb.Line(styles.ErrorMsg.Render("Something went wrong while matching: " + m.err.Error()))
	case m.result == nil || m.result.NoMatch():
		vb.Line(styles.WarningMsg.Render("No perfumes match your answers."))
		vb.Muted("Try a different mood or a few more notes.")
	default:
		for i, r := range m.result.Results {
			vb.Line(m.renderCard(r, i == m.cursor))
		}
	}

	history := ResultsKeys.History
	history.SetEnabled(m.hasHistory)
	open := ResultsKeys.Open
	open.SetEnabled(m.opener != nil)
	cp := ResultsKeys.Copy
	cp.SetEnabled(m.clipboard != nil)

	return vb.
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(ResultsKeys.Up, ResultsKeys.Down, open, cp, ResultsKeys.Restart, history, ResultsKeys.Help, ResultsKeys.Quit).
		String()
}

func (m *ResultsModel) renderCard(r domain.RankedResult, selected bool) string {
	var b strings.Builder
	b.WriteString(styles.Rank.Render(fmt.Sprintf("#%d", r.Rank)))
	b.WriteString(" ")
	b.WriteString(styles.PerfumeName.Render(r.Item.Name))
	if r.Item.Brand != "" {
		b.WriteString(" ")
		b.WriteString(styles.Brand.Render(r.Item.Brand))
	}
	b.WriteString("  ")
	b.WriteString(RenderScore(m.result.Strategy, r.Score))

	if d := strings.TrimSpace(r.Item.Description); d != "" {
		b.WriteString("\n")
		b.WriteString(m.highlight(d))
	}
	if n := strings.TrimSpace(r.Item.Notes); n != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Notes: "))
		b.WriteString(m.highlight(n))
	}

	if selected {
		return styles.CardSelected.Render(b.String())
	}
	return styles.Card.Render(b.String())
}

func (m *ResultsModel) highlight(text string) string {
	if m.matcher == nil {
		return text
	}
	return m.matcher.Highlight(text, m.result.Query, styles.Mark)
}
