// Package prompts implements MCP prompt handlers for the resonance page.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the resonanz-start MCP prompt.
// It guides the AI through analyzing one thought across all five facets.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("resonanz-start",
		mcp.WithPromptDescription(
			"Analyze a thought on the resonance page. "+
				"Submits the thought and walks through every facet panel once it has loaded.",
		),
		mcp.WithArgument("gedanke",
			mcp.ArgumentDescription("The thought to analyze. If omitted, the AI asks for one."),
		),
	)
}

// Handle processes the resonanz-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	gedanke := ""
	if args := req.Params.Arguments; args != nil {
		gedanke = strings.TrimSpace(args["gedanke"])
	}

	var text string
	if gedanke == "" {
		text = "I want to analyze a thought on the resonance page.\n\n" +
			"Ask me which thought I have in mind. Then call `resonanz_submit` with it and continue as below."
	} else {
		text = fmt.Sprintf("Please analyze this thought on the resonance page: %q\n\n"+
			"Call `resonanz_submit` with it.", gedanke)
	}
	text += "\n\nOnce the panels are populated:\n" +
		"1. Summarize the CoreLexikon terms and their meta layers\n" +
		"2. Show the ZielgruppenMatrix as a small table\n" +
		"3. Report the ResonanzFilter patterns and the overall resonance\n" +
		"4. List the SyntaxTransformer outputs with their confidence\n" +
		"5. Name the active MetaInterface system and the security status\n\n" +
		"Offer to regenerate a syntax format with `resonanz_regenerate` if one looks weak."

	return &mcp.GetPromptResult{
		Description: "Resonanz Start",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
