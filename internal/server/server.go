// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it takes the running page and optional
// journal and injects them into the tools, prompts and resources that
// depend on them. No business logic lives here, only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/journal"
	"github.com/HendryAvila/resonanz/internal/mcptools"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/prompts"
	"github.com/HendryAvila/resonanz/internal/resources"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. j may be nil, in which case the history
// tool is not offered.
func New(p *page.Page, j journal.Journal, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"resonanz",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Thought lifecycle ---

	submitTool := mcptools.NewSubmitTool(p)
	s.AddTool(submitTool.Definition(), submitTool.Handle)

	resetTool := mcptools.NewResetTool(p)
	s.AddTool(resetTool.Definition(), resetTool.Handle)

	currentTool := mcptools.NewCurrentTool(p)
	s.AddTool(currentTool.Definition(), currentTool.Handle)

	// --- Panels ---

	panelTool := mcptools.NewPanelTool(p)
	s.AddTool(panelTool.Definition(), panelTool.Handle)

	regenerateTool := mcptools.NewRegenerateTool(p)
	s.AddTool(regenerateTool.Definition(), regenerateTool.Handle)

	// --- Chat & docs ---

	chatTool := mcptools.NewChatTool(p)
	s.AddTool(chatTool.Definition(), chatTool.Handle)

	modulesTool := mcptools.NewModulesTool()
	s.AddTool(modulesTool.Definition(), modulesTool.Handle)

	// --- Journal ---
	//
	// The journal is optional: without one, submissions still work and
	// the history tool is simply not offered.

	if j != nil {
		historyTool := mcptools.NewHistoryTool(j)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	} else {
		logger.Info("journal disabled, resonanz_history not registered")
	}

	// --- Prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(p)
	s.AddResource(resourceHandler.CurrentThoughtResource(), resourceHandler.HandleCurrentThought)
	s.AddResource(resourceHandler.ModulesResource(), resourceHandler.HandleModules)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the resonance page.
func serverInstructions() string {
	return `You have access to Resonanz, a concept demo that simulates the analysis of a single thought.

## How it works

The user types a thought. resonanz_submit runs a simulated analysis and makes it the
current thought. Five facet panels then reload for it, each after its own delay:

- corelexikon: key terms of the thought with meaning, domains and meta layer
- zielgruppen: fixed target-audience matrix with access tiers and scores
- resonanzfilter: three resonance patterns and the overall resonance in percent
- syntaxtransformer: the thought rendered as LLM-Prompt, Code, Philosophisch and Visuell
- metainterface: routing to an AI system plus a security check

All values are simulated. Do not present them as real measurements.

## Tools

- resonanz_submit: analyze a thought (waits for the panels by default)
- resonanz_current / resonanz_panel: read what the page shows right now
- resonanz_regenerate: deepen one syntax format (+0.05 confidence, max 0.99)
- resonanz_reset: clear the page
- resonanz_chat: the side chat; replies are canned
- resonanz_modules: module documentation with sample payloads
- resonanz_history: earlier thoughts from the journal, when one is configured

Blank thoughts are rejected with a notice; ask the user for a real thought instead.`
}
