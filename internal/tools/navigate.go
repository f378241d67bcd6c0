package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// NavigateTool handles the qps_navigate MCP tool.
// It moves the question cursor without recording an answer.
type NavigateTool struct {
	scan *Scan
}

// NewNavigateTool creates a NavigateTool.
func NewNavigateTool(scan *Scan) *NavigateTool {
	return &NavigateTool{scan: scan}
}

var navigateActions = map[string]flow.Action{
	"begin":        flow.Begin{},
	"next":         flow.Next{},
	"back":         flow.Prev{},
	"reset_pillar": flow.ResetPillar{},
}

// Definition returns the MCP tool definition for registration.
func (t *NavigateTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_navigate",
		mcp.WithDescription(
			"Move through the questions. begin: leave a pillar intro. next: skip ahead "+
				"(unanswered questions stay unanswered). back: previous question, crossing "+
				"into the previous pillar when needed. reset_pillar: clear the current "+
				"respondent's answers for this pillar and return to its intro.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Navigation step."),
			mcp.Enum("begin", "next", "back", "reset_pillar"),
		),
	)
}

// Handle processes the qps_navigate tool call.
func (t *NavigateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("action", "")
	action, ok := navigateActions[name]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be one of: begin, next, back, reset_pillar", name)), nil
	}
	st, err := t.scan.Session.Dispatch(action)
	if err != nil {
		return flowError(err)
	}
	lead := ""
	if name == "reset_pillar" {
		lead = "Pillar answers cleared for " + st.Role.Label() + "."
	}
	return t.scan.screenResult(lead, st)
}
