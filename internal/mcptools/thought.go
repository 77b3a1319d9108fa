package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/thought"
)

// snapshot is what the thought tools report back.
type snapshot struct {
	Thought  *thought.Thought         `json:"thought"`
	Analysis *thought.GedankenAnalyse `json:"analysis,omitempty"`
	Panels   []facets.View            `json:"panels,omitempty"`
}

// SubmitTool handles the resonanz_submit MCP tool.
type SubmitTool struct {
	page *page.Page
}

// NewSubmitTool creates a SubmitTool bound to p.
func NewSubmitTool(p *page.Page) *SubmitTool {
	return &SubmitTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_submit.
func (t *SubmitTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_submit",
		mcp.WithDescription(
			"Submit a thought for simulated resonance analysis. The thought becomes the page's current thought "+
				"and all five facet panels (CoreLexikon, ZielgruppenMatrix, ResonanzFilter, SyntaxTransformer, MetaInterface) reload for it.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The thought to analyze, in free text"),
		),
		mcp.WithBoolean("wait",
			mcp.Description("Wait for every panel to finish loading and include them in the result (default: true)"),
		),
	)
}

// Handle processes the resonanz_submit tool call.
func (t *SubmitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")

	th, err := t.page.Input.Submit(ctx, text)
	switch {
	case errors.Is(err, page.ErrBlankThought):
		return mcp.NewToolResultError(page.BlankNotice), nil
	case errors.Is(err, page.ErrSubmitting):
		return mcp.NewToolResultError("Another thought is still being analyzed. Try again in a moment."), nil
	case errors.Is(err, page.ErrDiscarded):
		return mcp.NewToolResultError("The page was reset while this thought was being analyzed."), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	out := snapshot{Thought: th, Analysis: t.page.Input.LastAnalysis()}
	if boolArg(req, "wait", true) {
		if err := t.page.Composer.AwaitPanels(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("waiting for panels: %v", err)), nil
		}
		out.Panels = t.page.Composer.Panels().Views()
	}
	return jsonResult(out)
}

// ─── ResetTool ──────────────────────────────────────────────────────────────

// ResetTool handles the resonanz_reset MCP tool.
type ResetTool struct {
	page *page.Page
}

// NewResetTool creates a ResetTool.
func NewResetTool(p *page.Page) *ResetTool {
	return &ResetTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_reset.
func (t *ResetTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_reset",
		mcp.WithDescription("Clear the current thought. Every facet panel returns to its empty state."),
	)
}

// Handle processes the resonanz_reset tool call.
func (t *ResetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.page.Input.Reset()
	return mcp.NewToolResultText("Gedanke zurückgesetzt. Alle Panels sind leer."), nil
}

// ─── CurrentTool ────────────────────────────────────────────────────────────

// CurrentTool handles the resonanz_current MCP tool.
type CurrentTool struct {
	page *page.Page
}

// NewCurrentTool creates a CurrentTool.
func NewCurrentTool(p *page.Page) *CurrentTool {
	return &CurrentTool{page: p}
}

// Definition returns the MCP tool definition for resonanz_current.
func (t *CurrentTool) Definition() mcp.Tool {
	return mcp.NewTool("resonanz_current",
		mcp.WithDescription("Show the current thought, its analysis and the state of every facet panel."),
	)
}

// Handle processes the resonanz_current tool call.
func (t *CurrentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	th := t.page.Composer.Current()
	if th == nil {
		return mcp.NewToolResultText("No current thought. Use resonanz_submit to analyze one."), nil
	}
	return jsonResult(snapshot{
		Thought:  th,
		Analysis: t.page.Input.LastAnalysis(),
		Panels:   t.page.Composer.Panels().Views(),
	})
}
