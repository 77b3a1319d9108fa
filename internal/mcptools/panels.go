package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
)

// PanelTool handles the resonanz_panel MCP tool.
type PanelTool struct {
	page *page.Page
}

// NewPanelTool creates a PanelTool.
func NewPanelTool(p *page.Page) *PanelTool {
	return &PanelTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_panel.
func (t *PanelTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_panel",
		mcp.WithDescription("Show one facet panel: its state (empty, loading, populated) and records for the current thought."),
		mcp.WithString("facet",
			mcp.Required(),
			mcp.Description("Facet: corelexikon, zielgruppen, resonanzfilter, syntaxtransformer, metainterface"),
		),
		mcp.WithBoolean("wait",
			mcp.Description("Wait until the panel has finished loading (default: false)"),
		),
	)
}

// Handle processes the resonanz_panel tool call.
func (t *PanelTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := facets.ParseName(req.GetString("facet", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if boolArg(req, "wait", false) {
		if err := t.page.Composer.AwaitPanels(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("waiting for panels: %v", err)), nil
		}
	}
	v, err := t.page.Composer.Panels().View(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(v)
}

// ─── RegenerateTool ─────────────────────────────────────────────────────────

// RegenerateTool handles the resonanz_regenerate MCP tool.
type RegenerateTool struct {
	page *page.Page
}

// NewRegenerateTool creates a RegenerateTool.
func NewRegenerateTool(p *page.Page) *RegenerateTool {
	return &RegenerateTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_regenerate.
func (t *RegenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_regenerate",
		mcp.WithDescription(
			"Regenerate one SyntaxTransformer output with deeper semantics. Raises that format's confidence by 0.05, capped at 0.99.",
		),
		mcp.WithString("zielsyntax",
			mcp.Required(),
			mcp.Description("Target format: LLM-Prompt, Code, Philosophisch, Visuell"),
		),
		mcp.WithBoolean("wait",
			mcp.Description("Wait for the regeneration to finish and return the syntax panel (default: true)"),
		),
	)
}

// Handle processes the resonanz_regenerate tool call.
func (t *RegenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zielsyntax := req.GetString("zielsyntax", "")

	err := t.page.Composer.RegenerateSyntax(zielsyntax)
	switch {
	case errors.Is(err, facets.ErrUnknownSyntax):
		return mcp.NewToolResultError(fmt.Sprintf("%v: must be one of: %v", err, simulator.SyntaxFormats)), nil
	case errors.Is(err, panel.ErrNotPopulated):
		return mcp.NewToolResultError("The SyntaxTransformer has no output yet. Submit a thought and wait for the panel first."), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !boolArg(req, "wait", true) {
		return mcp.NewToolResultText(fmt.Sprintf("Regenerating %s ...", zielsyntax)), nil
	}
	if err := t.page.Composer.AwaitPanels(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("waiting for panels: %v", err)), nil
	}
	v, _ := t.page.Composer.Panels().View(facets.SyntaxTransformer)
	return jsonResult(v)
}
