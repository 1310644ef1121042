package views

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/matching"
	"scentquiz/internal/session"
)

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	assert.Equal(t, 3, p.PageSize())
	assert.Equal(t, 3, p.TotalPages())
	start, end := p.VisibleRange()
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	for range 3 {
		p.CursorDown()
	}
	assert.Equal(t, 3, p.Cursor())
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, 0, p.CursorInPage())

	require.True(t, p.NextPage())
	start, end = p.VisibleRange()
	assert.Equal(t, [2]int{6, 7}, [2]int{start, end})
	assert.False(t, p.NextPage())

	p.SetTotal(2)
	assert.Equal(t, 1, p.Cursor())
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPaginator_EmptyHasOnePage(t *testing.T) {
	p := NewPaginator(0)
	assert.Equal(t, 10, p.PageSize())
	assert.Equal(t, 1, p.TotalPages())
	assert.False(t, p.CursorDown())
	assert.False(t, p.CursorUp())
}

func TestInputForm_FocusAndValues(t *testing.T) {
	form := NewInputForm(
		NewInputField("Username", "", 0),
		NewPasswordField("Password", 0),
	)
	assert.Equal(t, textinput.EchoPassword, form.Fields[1].Input.EchoMode)

	form.SetValue(0, "  alice ")
	form.SetValue(1, " pass ")
	assert.Equal(t, "alice", form.Value(0))
	assert.Equal(t, " pass ", form.RawValue(1))
	assert.Equal(t, "", form.Value(5))

	handled, _ := form.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, handled)
	assert.Equal(t, 1, form.FocusedField)

	handled, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, handled)
	assert.Equal(t, 0, form.FocusedField)

	form.Reset()
	assert.Equal(t, "", form.Value(0))
}

func TestRenderQuery(t *testing.T) {
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday, domain.NoteWoody, domain.NoteCitrus)
	assert.Equal(t, "Fresh · Everyday Wear · Citrus, Woody", RenderQuery(q))

	q = domain.NewPreferenceQuery(domain.MoodCozy, domain.OccasionWork)
	assert.Equal(t, "Cozy · Work · any notes", RenderQuery(q))
}

func TestRenderScore(t *testing.T) {
	assert.Contains(t, RenderScore(matching.StrategyTFIDF, 0.42), "42% match")
	assert.Contains(t, RenderScore(matching.StrategyKeyword, 3), "3 matching terms")
}

func TestFormatResultList(t *testing.T) {
	results := []domain.RankedResult{
		{Item: domain.CatalogItem{Name: "Aqua", Brand: "X"}, Rank: 1},
		{Item: domain.CatalogItem{Name: "Solo"}, Rank: 2},
	}
	assert.Equal(t, "1. Aqua (X)\n2. Solo\n", FormatResultList(results))
}

func TestLoginErrorText(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		register bool
		want     string
	}{
		{"bad credentials", application.ErrInvalidCredentials, false, "Incorrect username or password. New here? Press ctrl+r to register."},
		{"taken", fmt.Errorf("create: %w", application.ErrUserExists), true, "That username is taken. Press ctrl+r to log in instead."},
		{"validation", &application.ValidationError{Field: "password", Message: "too short"}, true, (&application.ValidationError{Field: "password", Message: "too short"}).Error()},
		{"other login", errors.New("disk full"), false, "Login failed: disk full"},
		{"other register", errors.New("disk full"), true, "Registration failed: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loginErrorText(tt.err, tt.register))
		})
	}
}

func TestWizardModel_ToggleOnlyOnNotes(t *testing.T) {
	catalog := domain.NewCatalog([]domain.CatalogItem{{Name: "Aqua", Description: "citrus"}})
	s := session.New("s1", "", session.Deps{Matcher: matching.NewTFIDF(catalog)})
	m := NewWizardModel(s, false)
	space := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")}

	m.Update(space)
	assert.Empty(t, m.checked)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, domain.StepNotes, s.Step())
	assert.Equal(t, 0, m.Cursor())

	m.Update(space)
	m.Update(space)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(space)
	assert.Equal(t, map[string]bool{"Vanilla": false, "Oud": true}, m.checked)
	assert.Contains(t, m.View(), "[x] Oud")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(RecommendedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, []domain.Note{domain.NoteOud}, msg.Result.Query.Notes)
}

func TestWizardModel_CursorStaysInBounds(t *testing.T) {
	catalog := domain.NewCatalog(nil)
	s := session.New("s1", "", session.Deps{Matcher: matching.NewTFIDF(catalog)})
	m := NewWizardModel(s, false)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())
	for range 20 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(domain.Moods())-1, m.Cursor())
}
