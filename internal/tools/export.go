package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ExportTool handles the qps_export MCP tool.
// It builds the data package for the finished scan and archives it.
type ExportTool struct {
	scan *Scan
}

// NewExportTool creates an ExportTool.
func NewExportTool(scan *Scan) *ExportTool {
	return &ExportTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_export",
		mcp.WithDescription(
			"Build the Quiet Presence data package (meta plus per-role scores and the "+
				"clients average) and store it in the report archive. Available once the "+
				"summary is open. Returns the report id and the JSON payload.",
		),
	)
}

// Handle processes the qps_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := t.scan.Session.State()
	if st.Mode != flow.ModeSummary {
		return mcp.NewToolResultError("Export is available once the summary is open."), nil
	}

	payload := summary.Export(t.scan.input(st))
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	archived := "Report archive unavailable; payload not stored."
	ok := false
	if t.scan.Reports != nil {
		id, err := t.scan.Reports.Save(payload)
		if err != nil {
			t.scan.logger().Warn("archive save failed", zap.Error(err))
			archived = fmt.Sprintf("Report could not be archived: %v", err)
		} else {
			ok = true
			archived = fmt.Sprintf("**Report id:** `%s`", id)
		}
	}
	t.scan.Metrics.Exported(ok)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Quiet Presence Score · data package\n\n%s\n\n```json\n%s\n```\n",
		archived, string(data),
	)), nil
}
