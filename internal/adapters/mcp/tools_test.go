package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scentquiz/internal/adapters/memory"
	"scentquiz/internal/domain"
	"scentquiz/internal/matching"
)

func testDeps() (Deps, *memory.Store) {
	store := memory.NewStore()
	for _, name := range []string{"alice", "bob"} {
		_ = store.CreateUser(context.Background(), name, []byte("hash"))
	}
	catalog := domain.NewCatalog([]domain.CatalogItem{
		{Name: "Aqua", Brand: "X", Description: "fresh citrus morning scent", Notes: "citrus, fresh"},
		{Name: "Noir", Brand: "Y", Description: "dark smoky oud", Notes: "oud, woody"},
	})
	return Deps{
		Catalog: catalog,
		Matcher: matching.NewTFIDF(catalog),
		History: store,
		Users:   store,
		Logger:  zap.NewNop(),
	}, store
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestOptionsTool(t *testing.T) {
	text, isErr := call(t, optionsHandler(), nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "mood: Romantic, Bold, Fresh, Mysterious, Cozy, Energetic")
	assert.Contains(t, text, "occasion: Everyday Wear, Date Night, Work, Party")
	assert.Contains(t, text, "notes: Vanilla, Oud, Citrus")
}

func TestCatalogTool(t *testing.T) {
	deps, _ := testDeps()

	text, isErr := call(t, catalogHandler(deps.Catalog), nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "Aqua (X)  [citrus, fresh]")
	assert.Contains(t, text, "Noir (Y)")

	text, _ = call(t, catalogHandler(deps.Catalog), map[string]any{"brand": "y"})
	assert.NotContains(t, text, "Aqua")
	assert.Contains(t, text, "Noir")

	text, _ = call(t, catalogHandler(deps.Catalog), map[string]any{"brand": "Nobody"})
	assert.Equal(t, "No results.", text)

	_, isErr = call(t, catalogHandler(nil), nil)
	assert.True(t, isErr)
}

func TestRecommendTool_RecordsHistory(t *testing.T) {
	deps, store := testDeps()
	h := recommendHandler(deps)

	text, isErr := call(t, h, map[string]any{
		"mood":     "fresh",
		"occasion": "Everyday Wear",
		"notes":    []any{"Citrus"},
		"user":     "alice",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Query: Fresh / Everyday Wear / Citrus")
	assert.Contains(t, text, "1. Aqua (X)")
	assert.Contains(t, text, "**fresh** **citrus**")
	assert.NotContains(t, text, "Noir")

	hist, err := store.GetHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, []domain.ItemRef{{Name: "Aqua", Brand: "X"}}, hist[0].Recommended)

	text, isErr = call(t, historyHandler(deps.History, deps.Users), map[string]any{"user": "alice"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Fresh / Everyday Wear / Citrus  →  Aqua (X)")
}

func TestRecommendTool_NoMatchAndAnonymous(t *testing.T) {
	deps, store := testDeps()

	text, isErr := call(t, recommendHandler(deps), map[string]any{"mood": "Romantic", "occasion": "Party"})
	assert.False(t, isErr)
	assert.Contains(t, text, "No perfumes match")
	assert.Contains(t, text, "any notes")

	hist, err := store.GetHistory(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestRecommendTool_InvalidInput(t *testing.T) {
	deps, _ := testDeps()
	h := recommendHandler(deps)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing mood", map[string]any{"occasion": "Work"}},
		{"unknown occasion", map[string]any{"mood": "Bold", "occasion": "Brunch"}},
		{"unknown note", map[string]any{"mood": "Bold", "occasion": "Work", "notes": []any{"Smoke"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isErr := call(t, h, tt.args)
			assert.True(t, isErr)
		})
	}
}

type failingHistory struct{ *memory.Store }

func (failingHistory) AppendHistory(context.Context, string, domain.PreferenceQuery, []domain.ItemRef) error {
	return errors.New("disk full")
}

func TestRecommendTool_HistoryFailureIsAWarning(t *testing.T) {
	deps, store := testDeps()
	deps.History = failingHistory{store}

	text, isErr := call(t, recommendHandler(deps), map[string]any{"mood": "Fresh", "occasion": "Work", "user": "bob"})
	assert.False(t, isErr)
	assert.Contains(t, text, "1. Aqua (X)")
	assert.Contains(t, text, "Warning: not saved to history")
}

func TestHistoryTool_RequiresRegisteredUser(t *testing.T) {
	deps, _ := testDeps()
	h := historyHandler(deps.History, deps.Users)

	_, isErr := call(t, h, nil)
	assert.True(t, isErr)

	text, isErr := call(t, h, map[string]any{"user": "nobody"})
	assert.True(t, isErr)
	assert.Contains(t, text, `unknown user "nobody"`)

	text, isErr = call(t, h, map[string]any{"user": "bob"})
	assert.False(t, isErr)
	assert.Equal(t, "No results.", text)
}

func TestRecommendTool_UnknownUserIsNotRecorded(t *testing.T) {
	deps, store := testDeps()

	text, isErr := call(t, recommendHandler(deps), map[string]any{"mood": "Fresh", "occasion": "Work", "user": "alcie"})
	assert.True(t, isErr)
	assert.Contains(t, text, `unknown user "alcie"`)

	hist, err := store.GetHistory(context.Background(), "alcie")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestRegisterTools(t *testing.T) {
	deps, _ := testDeps()
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))
	assert.NotPanics(t, func() {
		RegisterReadTools(s, deps)
		RegisterWriteTools(s, deps)
	})
}
