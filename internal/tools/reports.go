package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReportsTool handles the qps_reports MCP tool.
// It lists archived reports or renders one of them.
type ReportsTool struct {
	store ReportStore
}

// NewReportsTool creates a ReportsTool. A nil store reports the archive
// as unavailable.
func NewReportsTool(store ReportStore) *ReportsTool {
	return &ReportsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportsTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_reports",
		mcp.WithDescription(
			"Browse archived Quiet Presence reports. list: most recent first. "+
				"show: the full data package of report `id`.",
		),
		mcp.WithString("action",
			mcp.Description("list (default) or show."),
			mcp.Enum("list", "show"),
		),
		mcp.WithString("id",
			mcp.Description("Report id for show."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum reports to list. Default: 20."),
		),
	)
}

// Handle processes the qps_reports tool call.
func (t *ReportsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("The report archive is unavailable in this session."), nil
	}

	switch action := req.GetString("action", "list"); action {
	case "list":
		return t.list(intArg(req, "limit", 20))
	case "show":
		id := req.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("'id' is required for show"), nil
		}
		return t.show(id)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be one of: list, show", action)), nil
	}
}

func (t *ReportsTool) list(limit int) (*mcp.CallToolResult, error) {
	reports, err := t.store.List(limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	if len(reports) == 0 {
		return mcp.NewToolResultText("No archived reports yet. Finish a scan and call `qps_export`."), nil
	}

	var b strings.Builder
	b.WriteString("# Archived Reports\n\n")
	b.WriteString("| ID | Created | Who | Pillars | Respondents | Owner QPS | Clients QPS |\n")
	b.WriteString("|----|---------|-----|---------|-------------|-----------|-------------|\n")
	for _, r := range reports {
		pillars := make([]string, len(r.Pillars))
		for i, p := range r.Pillars {
			pillars[i] = string(p)
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %d | %s | %s |\n",
			r.ID, r.CreatedAt, r.InitialWho, strings.Join(pillars, ", "), len(r.Roles),
			render.FmtScore(r.OwnerScore), render.FmtScore(r.ClientsScore))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *ReportsTool) show(id string) (*mcp.CallToolResult, error) {
	r, err := t.store.Get(id)
	if errors.Is(err, archive.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("Report %q not found.", id)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	text, err := render.Final(r.Payload)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("**Report id:** `%s` · %s\n\n%s", r.ID, r.CreatedAt, text)), nil
}
