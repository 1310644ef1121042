package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"scentquiz/internal/adapters/auth"
	"scentquiz/internal/adapters/memory"
	"scentquiz/internal/domain"
	"scentquiz/internal/matching"
	"scentquiz/internal/session"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

type fixture struct {
	app       *App
	store     *memory.Store
	opener    *fakeOpener
	clipboard []string
}

func newFixture(t *testing.T, authRequired bool) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), opener: &fakeOpener{}}
	catalog := domain.NewCatalog([]domain.CatalogItem{
		{Name: "Aqua", Brand: "X", Description: "fresh citrus morning scent for everyday wear", Notes: "citrus, fresh", ImageURL: "https://example.com/aqua.png"},
		{Name: "Noir", Brand: "Y", Description: "dark smoky oud", Notes: "oud, woody"},
	})
	f.app = NewApp(Options{
		Identity:     auth.NewBcryptIdentity(f.store, bcrypt.MinCost, zap.NewNop()),
		Session:      session.Deps{Matcher: matching.NewTFIDF(catalog), History: f.store},
		Opener:       f.opener,
		Clipboard:    func(s string) error { f.clipboard = append(f.clipboard, s); return nil },
		AuthRequired: authRequired,
		Logger:       zap.NewNop(),
	})
	return f
}

// press sends keys to the app and runs the command of the last one to completion
func (f *fixture) press(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.app.Update(k)
	}
	f.run(cmd)
}

func (f *fixture) run(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = f.app.Update(msg)
	}
}

// typeText sends text to the focused input; blink commands are dropped
func (f *fixture) typeText(text string) {
	f.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = runes(" ")
)

// answer picks Fresh, Everyday Wear and Citrus
func (f *fixture) answer(t *testing.T) {
	t.Helper()
	f.press(t, down, down, enter)
	require.Equal(t, domain.StepOccasion, f.app.Session().Step())
	f.press(t, enter)
	require.Equal(t, domain.StepNotes, f.app.Session().Step())
	f.press(t, down, down, space, enter)
}

func TestApp_RegisterQuizHistoryRestart(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, ViewLogin, f.app.State())

	f.typeText("alice")
	f.app.Update(tab)
	f.typeText("secret1")
	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlR}, enter)

	require.Equal(t, ViewWizard, f.app.State())
	require.NotNil(t, f.app.User())
	assert.Equal(t, "alice", f.app.User().Username)
	assert.Contains(t, f.app.View(), "Welcome, alice")

	f.answer(t)
	require.Equal(t, ViewResults, f.app.State())
	assert.Contains(t, f.app.View(), "Aqua")
	assert.Equal(t, domain.StepResults, f.app.Session().Step())

	hist, err := f.store.GetHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday, domain.NoteCitrus), hist[0].Query)

	f.press(t, runes("h"))
	require.Equal(t, ViewHistory, f.app.State())
	assert.Len(t, f.app.history.Entries(), 1)
	assert.Contains(t, f.app.View(), "Aqua (X)")

	f.press(t, esc)
	assert.Equal(t, ViewResults, f.app.State())

	f.press(t, runes("r"))
	assert.Equal(t, ViewWizard, f.app.State())
	assert.Equal(t, domain.StepMood, f.app.Session().Step())
}

func TestApp_LoginFailureShowsRegisterHint(t *testing.T) {
	f := newFixture(t, true)

	f.typeText("bob")
	f.app.Update(tab)
	f.typeText("wrongpass")
	f.press(t, enter)

	assert.Equal(t, ViewLogin, f.app.State())
	assert.Contains(t, f.app.View(), "Incorrect username or password")
	assert.Contains(t, f.app.View(), "ctrl+r to register")
}

func TestApp_LoginAfterRegister(t *testing.T) {
	f := newFixture(t, true)
	_, err := auth.NewBcryptIdentity(f.store, bcrypt.MinCost, nil).Register(context.Background(), "testuser", "testpassword")
	require.NoError(t, err)

	f.typeText("testuser")
	f.app.Update(tab)
	f.typeText("testpassword")
	f.press(t, enter)

	assert.Equal(t, ViewWizard, f.app.State())
	assert.Equal(t, "testuser", f.app.Session().UserID)
}

func TestApp_AnonymousWithoutAuth(t *testing.T) {
	f := newFixture(t, false)
	require.Equal(t, ViewWizard, f.app.State())
	assert.Nil(t, f.app.User())

	f.press(t, runes("h"))
	assert.Equal(t, ViewWizard, f.app.State(), "history needs a logged-in user")

	f.answer(t)
	require.Equal(t, ViewResults, f.app.State())

	hist, err := f.store.GetHistory(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestApp_NoMatchState(t *testing.T) {
	f := newFixture(t, false)

	// Romantic, Party, no notes: nothing in the catalog shares a term
	f.press(t, enter)
	f.press(t, down, down, down, enter)
	f.press(t, enter)

	require.Equal(t, ViewResults, f.app.State())
	assert.Contains(t, f.app.View(), "No perfumes match")

	f.press(t, runes("y"))
	assert.Empty(t, f.clipboard)
}

func TestApp_CopyAndOpen(t *testing.T) {
	f := newFixture(t, false)
	f.answer(t)

	f.press(t, runes("y"))
	require.Len(t, f.clipboard, 1)
	assert.Equal(t, "1. Aqua (X)\n", f.clipboard[0])
	assert.Contains(t, f.app.View(), "Copied to clipboard")

	f.press(t, runes("o"))
	assert.Equal(t, []string{"https://example.com/aqua.png"}, f.opener.opened)

	f.opener.err = errors.New("no browser")
	f.press(t, runes("o"))
	assert.Contains(t, f.app.View(), "Cannot open image")
}

func TestApp_HelpReturnsToPreviousView(t *testing.T) {
	f := newFixture(t, false)
	f.press(t, down, down, enter)

	f.press(t, runes("?"))
	require.Equal(t, ViewHelp, f.app.State())
	assert.Contains(t, f.app.View(), "Matching: tfidf")

	f.press(t, esc)
	assert.Equal(t, ViewWizard, f.app.State())
	assert.Equal(t, domain.StepOccasion, f.app.Session().Step())
}

func TestApp_NotesAreOptional(t *testing.T) {
	f := newFixture(t, false)
	f.press(t, down, down, enter)
	f.press(t, enter)
	f.press(t, enter)

	require.Equal(t, ViewResults, f.app.State())
	res := f.app.Session().Results()
	require.NotNil(t, res)
	assert.Empty(t, res.Query.Notes)
	assert.False(t, res.NoMatch())
}
