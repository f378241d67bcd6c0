package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// RoleTool handles the qps_role MCP tool.
// It answers the prompt shown when a respondent finishes every pillar.
type RoleTool struct {
	scan *Scan
}

// NewRoleTool creates a RoleTool.
func NewRoleTool(scan *Scan) *RoleTool {
	return &RoleTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *RoleTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_role",
		mcp.WithDescription(
			"Respond to the role prompt after a respondent completes the scan. "+
				"add_client: the next client (up to three) answers the same pillars. "+
				"finish: open the summary. back: return to the last question.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Role prompt choice."),
			mcp.Enum("add_client", "finish", "back"),
		),
	)
}

// Handle processes the qps_role tool call.
func (t *RoleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("action", "")
	var action flow.Action
	switch name {
	case "add_client":
		action = flow.AddClient{}
	case "finish":
		action = flow.Finish{}
	case "back":
		action = flow.Prev{}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be one of: add_client, finish, back", name)), nil
	}

	if !t.scan.Session.State().RoleComplete() {
		return mcp.NewToolResultError("The role prompt is not on screen. Finish the current respondent's pillars first."), nil
	}
	st, err := t.scan.Session.Dispatch(action)
	if err != nil {
		return flowError(err)
	}

	lead := ""
	switch name {
	case "add_client":
		lead = fmt.Sprintf("%s now answers the same pillars.", st.Role.Label())
	case "finish":
		lead = fmt.Sprintf("Summary opened for %d respondent(s).", len(st.Roles))
	}
	return t.scan.screenResult(lead, st)
}
