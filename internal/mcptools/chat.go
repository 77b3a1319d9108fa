package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/resonanz/internal/docs"
	"github.com/HendryAvila/resonanz/internal/page"
)

// ChatTool handles the resonanz_chat MCP tool.
type ChatTool struct {
	page *page.Page
}

// NewChatTool creates a ChatTool.
func NewChatTool(p *page.Page) *ChatTool {
	return &ChatTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_chat.
func (t *ChatTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_chat",
		mcp.WithDescription("Ask the resonance system a question. Replies are canned and do not depend on the question."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
		mcp.WithBoolean("transcript",
			mcp.Description("Return the whole conversation instead of just the reply (default: false)"),
		),
	)
}

// Handle processes the resonanz_chat tool call.
func (t *ChatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reply, err := t.page.Chat.Ask(ctx, req.GetString("question", ""))
	if errors.Is(err, page.ErrBlankQuestion) {
		return mcp.NewToolResultError("'question' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}
	if boolArg(req, "transcript", false) {
		return jsonResult(t.page.Chat.Transcript())
	}
	return mcp.NewToolResultText(reply.Text), nil
}

// ─── ModulesTool ────────────────────────────────────────────────────────────

// ModulesTool handles the resonanz_modules MCP tool.
type ModulesTool struct{}

// NewModulesTool creates a ModulesTool.
func NewModulesTool() *ModulesTool {
	return &ModulesTool{}
}

// Definition returns the MCP tool definition for resonanz_modules.
func (t *ModulesTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_modules",
		mcp.WithDescription("Read the module documentation: what each facet does, with sample payloads."),
		mcp.WithString("section",
			mcp.Description("Only this section: einleitung, corelexikon, zielgruppen, resonanzfilter, syntaxtransformer, metainterface"),
		),
	)
}

// Handle processes the resonanz_modules tool call.
func (t *ModulesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if key := req.GetString("section", ""); key != "" {
		s, err := docs.Lookup(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(s.Markdown), nil
	}
	md, err := docs.Markdown()
	if err != nil {
		return nil, fmt.Errorf("loading module docs: %w", err)
	}
	return mcp.NewToolResultText(md), nil
}
