package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// SetupTool handles the qps_setup MCP tool.
// It moves between the intro, rules and setup screens and edits the
// selection: who answers first, full or custom scope, and which pillars.
type SetupTool struct {
	scan *Scan
}

// NewSetupTool creates a SetupTool.
func NewSetupTool(scan *Scan) *SetupTool {
	return &SetupTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *SetupTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_setup",
		mcp.WithDescription(
			"Navigate the opening screens and configure the Quiet Presence scan. "+
				"Use `screen` alone to show intro, rules or setup. Otherwise set `who` "+
				"(my-brand: the owner answers first and may invite up to three clients; "+
				"client: a single client answers, no comparison), `scope` (full selects all "+
				"five pillars, custom starts from an empty selection) and `toggle` pillars "+
				"on or off. Call qps_start when the selection is ready.",
		),
		mcp.WithString("screen",
			mcp.Description("Opening screen to show. Ignored when any other argument is set."),
			mcp.Enum(string(flow.ModeIntro), string(flow.ModeRules), string(flow.ModeSetup)),
		),
		mcp.WithString("who",
			mcp.Description("Who is answering first."),
			mcp.Enum(string(flow.WhoMyBrand), string(flow.WhoClient)),
		),
		mcp.WithString("scope",
			mcp.Description("Full scan (all five pillars) or a custom pillar selection."),
			mcp.Enum(string(flow.ScopeFull), string(flow.ScopeCustom)),
		),
		mcp.WithString("toggle",
			mcp.Description(
				"Comma-separated pillar keys to flip in the selection, applied after scope. "+
					"Keys: presence, digital, space, narrative, signature.",
			),
		),
	)
}

// Handle processes the qps_setup tool call.
func (t *SetupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	whoArg := req.GetString("who", "")
	scopeArg := req.GetString("scope", "")
	toggles := listArg(req, "toggle")

	var actions []flow.Action
	if whoArg != "" {
		who, err := flow.ParseWho(whoArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		actions = append(actions, flow.SetWho{Who: who})
	}
	if scopeArg != "" {
		scope, err := flow.ParseScope(scopeArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		actions = append(actions, flow.SetScope{Scope: scope})
	}
	for _, key := range toggles {
		pk := catalog.PillarKey(key)
		if err := catalog.ValidatePillar(pk); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		actions = append(actions, flow.TogglePillar{Pillar: pk})
	}

	if len(actions) == 0 {
		screen := flow.Mode(req.GetString("screen", string(flow.ModeSetup)))
		st, err := t.scan.Session.Dispatch(flow.GoTo{Mode: screen})
		if err != nil {
			return flowError(err)
		}
		return t.scan.screenResult("", st)
	}

	// The edits land together or not at all.
	if m := t.scan.Session.State().Mode; m == flow.ModeIntro || m == flow.ModeRules {
		actions = append([]flow.Action{flow.GoTo{Mode: flow.ModeSetup}}, actions...)
	}
	st, err := t.scan.Session.DispatchAll(actions...)
	if err != nil {
		return flowError(err)
	}
	lead := fmt.Sprintf("Setup updated: %d of %d pillars selected.", st.Selection.Count(), catalog.PillarCount)
	return t.scan.screenResult(lead, st)
}
