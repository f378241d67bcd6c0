package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the quietscan-status MCP prompt.
// It instructs the AI to read and present where the scan stands.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("quietscan-status",
		mcp.WithPromptDescription(
			"Check where the current Quiet Presence scan stands: who is answering, "+
				"which pillars are included and what to do next.",
		),
	)
}

// Handle processes the quietscan-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Quiet Presence Scan Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `qps_status` to check my Quiet Presence scan.\n\n" +
						"Then:\n" +
						"1. Tell me who is answering and which pillars are included\n" +
						"2. Show me the current screen exactly as rendered\n" +
						"3. Tell me exactly what I should do next\n" +
						"4. If the summary is open, offer to export the data package with `qps_export`",
				),
			},
		},
	}, nil
}
