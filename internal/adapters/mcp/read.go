package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"scentquiz/internal/application"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// Deps are the collaborators the tools run against
type Deps struct {
	Catalog *domain.Catalog
	Matcher ports.Matcher
	History ports.HistoryStore
	// Users, when set, restricts history to registered usernames
	Users  ports.UserStore
	Logger *zap.Logger
}

// RegisterReadTools adds the read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(optionsTool(), optionsHandler())
	s.AddTool(catalogTool(), catalogHandler(deps.Catalog))
	s.AddTool(historyTool(), historyHandler(deps.History, deps.Users))
}

// --- options ---

func optionsTool() mcp.Tool {
	return mcp.NewTool("options",
		mcp.WithDescription("List the answers accepted by the quiz: moods, occasions and scent notes."),
	)
}

func optionsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := application.Options()
		var sb strings.Builder
		for _, k := range []string{"mood", "occasion", "notes"} {
			fmt.Fprintf(&sb, "%s: %s\n", k, strings.Join(opts[k], ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- catalog ---

func catalogTool() mcp.Tool {
	return mcp.NewTool("catalog",
		mcp.WithDescription("List the perfumes that can be recommended, optionally filtered by brand."),
		mcp.WithString("brand",
			mcp.Description("Only list perfumes of this brand (case-insensitive)"),
		),
	)
}

func catalogHandler(catalog *domain.Catalog) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if catalog == nil {
			return toolError(fmt.Errorf("no catalog loaded"))
		}
		brand := strings.TrimSpace(req.GetString("brand", ""))

		var items []domain.CatalogItem
		for _, item := range catalog.Items() {
			if brand != "" && !strings.EqualFold(item.Brand, brand) {
				continue
			}
			items = append(items, item)
		}
		return formatEntities(items, formatItem)
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("Show the past recommendations of a user, newest first."),
		mcp.WithString("user",
			mcp.Description("Username of a registered account"),
			mcp.Required(),
		),
	)
}

func historyHandler(history ports.HistoryStore, users ports.UserStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user := strings.TrimSpace(req.GetString("user", ""))
		if err := commands.NewCheckUserCommand(users, user).Execute(ctx); err != nil {
			return toolError(err)
		}

		entries, err := commands.NewHistoryCommand(history, user).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatHistoryEntry)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatItem(i domain.CatalogItem) string {
	if i.Notes == "" {
		return i.Ref().String()
	}
	return fmt.Sprintf("%s  [%s]", i.Ref(), i.Notes)
}

func formatHistoryEntry(e domain.HistoryEntry) string {
	refs := make([]string, len(e.Recommended))
	for i, r := range e.Recommended {
		refs[i] = r.String()
	}
	rec := "no match"
	if len(refs) > 0 {
		rec = strings.Join(refs, "; ")
	}
	return fmt.Sprintf("%s  %s  →  %s", e.CreatedAt.UTC().Format("2006-01-02 15:04"), formatQuery(e.Query), rec)
}

func formatQuery(q domain.PreferenceQuery) string {
	notes := "any notes"
	if len(q.Notes) > 0 {
		ns := make([]string, len(q.Notes))
		for i, n := range q.Notes {
			ns[i] = string(n)
		}
		notes = strings.Join(ns, ", ")
	}
	return fmt.Sprintf("%s / %s / %s", q.Mood, q.Occasion, notes)
}
