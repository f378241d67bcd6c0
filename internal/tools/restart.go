package tools

import (
	"context"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// RestartTool handles the qps_restart MCP tool.
type RestartTool struct {
	scan *Scan
}

// NewRestartTool creates a RestartTool.
func NewRestartTool(scan *Scan) *RestartTool {
	return &RestartTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *RestartTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_restart",
		mcp.WithDescription(
			"Discard every answer and the setup, and return to the intro screen. "+
				"Archived reports are kept.",
		),
	)
}

// Handle processes the qps_restart tool call.
func (t *RestartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := t.scan.Session.Dispatch(flow.Restart{})
	if err != nil {
		return flowError(err)
	}
	return t.scan.screenResult("Scan restarted. All answers were discarded.", st)
}
