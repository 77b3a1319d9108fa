package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/resonanz/internal/journal"
)

// HistoryTool handles the resonanz_history MCP tool.
type HistoryTool struct {
	journal journal.Journal
}

// NewHistoryTool creates a HistoryTool reading from j.
func NewHistoryTool(j journal.Journal) *HistoryTool {
	return &HistoryTool{journal: j}
}

// Definition returns the MCP tool definition for resonanz_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_history",
		mcp.WithDescription("List previously analyzed thoughts from the journal, newest first, optionally filtered by a search query."),
		mcp.WithString("query",
			mcp.Description("Full-text search over thought content and semantic fields"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max results (default: %d, max: %d)", journal.DefaultLimit, journal.MaxLimit)),
		),
	)
}

// Handle processes the resonanz_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	limit := intArg(req, "limit", journal.DefaultLimit)

	var (
		entries []journal.Entry
		err     error
	)
	if strings.TrimSpace(query) == "" {
		entries, err = t.journal.Recent(ctx, limit)
	} else {
		entries, err = t.journal.Search(ctx, query, limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading journal: %v", err)), nil
	}
	if len(entries) == 0 {
		if query != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No thoughts found for: %q", query)), nil
		}
		return mcp.NewToolResultText("The journal is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d thought(s):\n\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&b, "[%d] %s (%s)\n", i+1, e.Content, e.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "    Resonanz: %.1f/10 · Gesamtresonanz: %d%% · System: %s · Sicherheit: %s\n",
			e.ResonanceLevel, e.Gesamtresonanz, e.ActiveSystem, e.Security)
		if len(e.SemanticFields) > 0 {
			fmt.Fprintf(&b, "    Felder: %s\n", strings.Join(e.SemanticFields, ", "))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
