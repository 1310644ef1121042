package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scentquiz/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	strategy string
}

// NewHelpModel creates a new help view model. strategy names the active matcher.
func NewHelpModel(strategy string) *HelpModel {
	return &HelpModel{strategy: strategy}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchBackMsg{} }
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Scent Quiz Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Answer three questions, get five perfumes"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Quiz"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move between options"))
	b.WriteString(helpLine("space", "Toggle a note (notes step)"))
	b.WriteString(helpLine("enter", "Choose / get recommendations"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Results"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k", "Select a perfume"))
	b.WriteString(helpLine("o", "Open the perfume image"))
	b.WriteString(helpLine("y", "Copy the recommendations"))
	b.WriteString(helpLine("r", "Take the quiz again"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("h", "Past recommendations"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	if m.strategy != "" {
		b.WriteString(styles.MutedText.Render("  Matching: " + m.strategy))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
