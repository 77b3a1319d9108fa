// Package resources implements MCP resource handlers for the resonance page.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (resonanz://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/resonanz/internal/docs"
	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/thought"
)

const (
	CurrentThoughtURI = "resonanz://thought/current"
	ModulesURI        = "resonanz://modules"
)

// Handler manages resonance resource endpoints.
type Handler struct {
	page *page.Page
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(p *page.Page) *Handler {
	return &Handler{page: p}
}

// CurrentThoughtResource returns the MCP resource definition for the
// current thought.
func (h *Handler) CurrentThoughtResource() mcp.Resource {
	return mcp.NewResource(
		CurrentThoughtURI,
		"Current Thought",
		mcp.WithResourceDescription("The thought on the resonance page and the state of every facet panel"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCurrentThought returns the current thought as JSON. With no
// thought the document has a null thought and empty panels.
func (h *Handler) HandleCurrentThought(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := struct {
		Thought *thought.Thought `json:"thought"`
		Panels  []facets.View    `json:"panels"`
	}{
		Thought: h.page.Composer.Current(),
		Panels:  h.page.Composer.Panels().Views(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling current thought: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// ModulesResource returns the MCP resource definition for the module docs.
func (h *Handler) ModulesResource() mcp.Resource {
	return mcp.NewResource(
		ModulesURI,
		"Module Documentation",
		mcp.WithResourceDescription("What each facet does, with sample payloads"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// HandleModules returns the module documentation as markdown.
func (h *Handler) HandleModules(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	md, err := docs.Markdown()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     md,
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
