package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#B45309") // Amber, like an old bottle of parfum
	Secondary = lipgloss.Color("#DB2777") // Rose
	Accent    = lipgloss.Color("#7C3AED") // Violet
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Wizard
	Step = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	StepDone = lipgloss.NewStyle().
			Foreground(Muted)

	Choice = lipgloss.NewStyle()

	ChoiceCursor = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	ChoiceChecked = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	CheckOn  = "[x] "
	CheckOff = "[ ] "
	Pointer  = "› "

	// Results
	Rank = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	PerfumeName = lipgloss.NewStyle().
			Bold(true)

	Brand = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	Score = lipgloss.NewStyle().
		Foreground(Muted)

	Highlight = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Mark renders a highlighted query match inside a description
func Mark(s string) string {
	return Highlight.Render(s)
}
