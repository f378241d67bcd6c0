// Package prompts implements MCP prompt handlers for the Quiet Presence scan.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the quietscan-start MCP prompt.
// It guides the AI through setting up and running a scan.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("quietscan-start",
		mcp.WithPromptDescription(
			"Run a Quiet Presence scan. The brand owner answers first and can invite "+
				"up to three clients to rate the same pillars; the summary compares both sides.",
		),
		mcp.WithArgument("who",
			mcp.ArgumentDescription("Who answers first: 'my-brand' (owner, default) or 'client'."),
		),
		mcp.WithArgument("scope",
			mcp.ArgumentDescription("'full' for all five pillars (default) or 'custom' to pick pillars."),
		),
	)
}

// Handle processes the quietscan-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	who := "my-brand"
	scope := "full"
	if args := req.Params.Arguments; args != nil {
		if w, ok := args["who"]; ok && w != "" {
			who = w
		}
		if s, ok := args["scope"]; ok && s != "" {
			scope = s
		}
	}

	whoExplanation := "The brand owner answers first. When they finish, offer to add a client, guest or visitor."
	if who == "client" {
		whoExplanation = "A single client answers. There is no comparison, so the summary shows their view only."
	}
	scopeStep := fmt.Sprintf("2. Call `qps_setup` with who='%s' and scope='full'.\n", who)
	if scope == "custom" {
		scopeStep = fmt.Sprintf(
			"2. Ask which pillars to include (presence, digital, space, narrative, signature), then call "+
				"`qps_setup` with who='%s', scope='custom' and `toggle` set to the chosen keys.\n", who)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start a Quiet Presence scan (%s, %s scope)", who, scope),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to run a Quiet Presence scan.\n\n" +
						"Please:\n" +
						"1. Call `qps_setup` with screen='intro', then screen='rules', and show me each screen\n" +
						scopeStep +
						"3. Call `qps_start` and show me the pillar intro\n" +
						"4. Ask me each question exactly as rendered and record my choice with `qps_answer` " +
						"(Yes = yes, Not sure = maybe, Not really = no). Never answer for me\n" +
						"5. At the role prompt, ask whether to add a client (`qps_role` add_client) or finish\n" +
						"6. Walk me through the summary with `qps_summary` next, then call `qps_export`\n\n" +
						whoExplanation,
				),
			},
		},
	}, nil
}
