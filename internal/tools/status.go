package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the qps_status MCP tool.
// It shows where the session stands and renders the current screen.
type StatusTool struct {
	scan *Scan
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(scan *Scan) *StatusTool {
	return &StatusTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_status",
		mcp.WithDescription(
			"Show the current state of the Quiet Presence scan: mode, respondent, "+
				"selected pillars, respondents so far, and the screen to show next.",
		),
	)
}

// Handle processes the qps_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := t.scan.Session.State()

	var b strings.Builder
	b.WriteString("# Scan Status\n\n")
	fmt.Fprintf(&b, "**Mode:** %s\n", st.Mode)
	if st.Mode == flow.ModeFlow || st.Mode == flow.ModeSummary {
		fmt.Fprintf(&b, "**Respondent:** %s\n", st.Role.Label())
		roles := make([]string, len(st.Roles))
		for i, r := range st.Roles {
			roles[i] = string(r)
		}
		fmt.Fprintf(&b, "**Respondents so far:** %s\n", strings.Join(roles, ", "))
	}
	active := st.Active()
	keys := make([]string, len(active))
	for i, k := range active {
		keys[i] = string(k)
	}
	if len(keys) == 0 {
		keys = []string{"none"}
	}
	fmt.Fprintf(&b, "**Pillars:** %s\n", strings.Join(keys, ", "))
	if t.scan.Session.Pending() {
		b.WriteString("**Auto-advance:** pending\n")
	}

	return t.scan.screenResult(strings.TrimRight(b.String(), "\n")+"\n\n---", st)
}
