package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the resonanz-status MCP prompt.
// It instructs the AI to read and present the current page state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("resonanz-status",
		mcp.WithPromptDescription(
			"Show the current thought and which facet panels are empty, loading or populated.",
		),
	)
}

// Handle processes the resonanz-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Resonanz Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `resonanz_current` to check the resonance page.\n\n" +
						"Then:\n" +
						"1. Tell me which thought is current, or that there is none\n" +
						"2. Show the state of each facet panel\n" +
						"3. If a panel is still loading, say which one",
				),
			},
		},
	}, nil
}
