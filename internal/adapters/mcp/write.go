package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scentquiz/internal/application"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/matching"
)

// RegisterWriteTools adds the tools that record history to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(recommendTool(), recommendHandler(deps))
}

// --- recommend ---

func recommendTool() mcp.Tool {
	return mcp.NewTool("recommend",
		mcp.WithDescription("Recommend up to five perfumes for a mood, an occasion and optional scent notes. Words matching the answers are marked with **. When a user is given the run is saved to their history."),
		mcp.WithString("mood",
			mcp.Description("One of the moods listed by the options tool"),
			mcp.Required(),
		),
		mcp.WithString("occasion",
			mcp.Description("One of the occasions listed by the options tool"),
			mcp.Required(),
		),
		mcp.WithArray("notes",
			mcp.Description("Any number of scent notes; may be empty"),
			mcp.WithStringItems(),
		),
		mcp.WithString("user",
			mcp.Description("Registered username whose history records this run"),
		),
	)
}

func recommendHandler(deps Deps) server.ToolHandlerFunc {
	mark := matching.Delimiters("**", "**")

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := application.ParseQuery(
			req.GetString("mood", ""),
			req.GetString("occasion", ""),
			req.GetStringSlice("notes", nil),
		)
		if err != nil {
			return toolError(err)
		}

		user := strings.TrimSpace(req.GetString("user", ""))
		if user != "" {
			if err := commands.NewCheckUserCommand(deps.Users, user).Execute(ctx); err != nil {
				return toolError(err)
			}
		}
		result, err := commands.NewRecommendCommand(deps.Matcher, deps.History, deps.Logger, user, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Query: %s\n\n", formatQuery(result.Query))
		if result.NoMatch() {
			sb.WriteString("No perfumes match these answers.\n")
		}
		for _, r := range result.Results {
			fmt.Fprintf(&sb, "%d. %s  (score %.3f)\n", r.Rank, r.Item.Ref(), r.Score)
			if text := r.Item.CombinedText(); text != "" {
				fmt.Fprintf(&sb, "   %s\n", deps.Matcher.Highlight(text, result.Query, mark))
			}
		}
		if result.HistoryErr != nil {
			fmt.Fprintf(&sb, "\nWarning: not saved to history: %v\n", result.HistoryErr)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
