package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"scentquiz/internal/adapters/tui/styles"
	"scentquiz/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders the enabled key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderChoice renders one option of a wizard step
func RenderChoice(label string, atCursor, multi, checked bool) string {
	prefix := "  "
	if atCursor {
		prefix = styles.Pointer
	}
	if multi {
		if checked {
			label = styles.CheckOn + label
		} else {
			label = styles.CheckOff + label
		}
	}

	switch {
	case atCursor:
		return prefix + styles.ChoiceCursor.Render(label)
	case checked:
		return prefix + styles.ChoiceChecked.Render(label)
	default:
		return prefix + styles.Choice.Render(label)
	}
}

// RenderQuery summarises a query as "Fresh · Everyday Wear · Citrus, Woody"
func RenderQuery(q domain.PreferenceQuery) string {
	parts := []string{string(q.Mood), string(q.Occasion)}
	if len(q.Notes) == 0 {
		parts = append(parts, "any notes")
	} else {
		notes := make([]string, len(q.Notes))
		for i, n := range q.Notes {
			notes[i] = string(n)
		}
		parts = append(parts, strings.Join(notes, ", "))
	}
	return strings.Join(parts, " · ")
}

// RenderScore formats a similarity score for display
func RenderScore(strategy string, score float64) string {
	if strategy == "keyword" {
		return styles.Score.Render(fmt.Sprintf("%.0f matching terms", score))
	}
	return styles.Score.Render(fmt.Sprintf("%.0f%% match", score*100))
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
