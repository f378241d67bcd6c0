package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// StartTool handles the qps_start MCP tool.
// It validates the selection and enters the question flow.
type StartTool struct {
	scan *Scan
}

// NewStartTool creates a StartTool.
func NewStartTool(scan *Scan) *StartTool {
	return &StartTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_start",
		mcp.WithDescription(
			"Begin the Quiet Presence scan with the current setup. Fails when no pillar "+
				"is selected. Who defaults to my-brand. Starting again from setup keeps "+
				"answers already given.",
		),
	)
}

// Handle processes the qps_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.scan.toSetup(); err != nil {
		return flowError(err)
	}
	st, err := t.scan.Session.Dispatch(flow.Start{})
	if err != nil {
		return flowError(err)
	}
	lead := fmt.Sprintf("Scan started: %s answers %d pillar(s) (%s scope).",
		st.Role.Label(), st.Selection.Count(), st.Selection.Scope)
	return t.scan.screenResult(lead, st)
}
