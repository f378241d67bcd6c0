package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryTool handles the qps_summary MCP tool.
// It walks the result screens and renders the one under the cursor.
type SummaryTool struct {
	scan *Scan
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(scan *Scan) *SummaryTool {
	return &SummaryTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_summary",
		mcp.WithDescription(
			"Navigate the summary. Screens run pillar → pillar-ghi for each selected "+
				"pillar, then overall → overall-ghi → final. show: render the current screen. "+
				"next/prev: one screen. next_pillar/prev_pillar: jump between pillars. "+
				"jump: open `stage` directly (and `pillar` for pillar stages).",
		),
		mcp.WithString("action",
			mcp.Description("Summary navigation. Default: show."),
			mcp.Enum("show", "next", "prev", "next_pillar", "prev_pillar", "jump"),
		),
		mcp.WithString("stage",
			mcp.Description("Target stage for jump."),
			mcp.Enum(summary.StageValues()...),
		),
		mcp.WithString("pillar",
			mcp.Description("Pillar key for jump to a pillar stage. Omit to keep the current pillar."),
			mcp.Enum(catalog.PillarKeyValues()...),
		),
	)
}

// Handle processes the qps_summary tool call.
func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("action", "show")

	var action flow.Action
	switch name {
	case "show":
		st := t.scan.Session.State()
		if st.Mode != flow.ModeSummary {
			return mcp.NewToolResultError("The summary is not open yet. Finish the scan first."), nil
		}
		return t.scan.screenResult("", st)
	case "next":
		action = flow.SummaryNext{}
	case "prev":
		action = flow.SummaryPrev{}
	case "next_pillar":
		action = flow.SummaryNextPillar{}
	case "prev_pillar":
		action = flow.SummaryPrevPillar{}
	case "jump":
		stage := summary.Stage(req.GetString("stage", ""))
		if err := summary.ValidateStage(stage); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		pillar := catalog.PillarKey(req.GetString("pillar", ""))
		if pillar != "" {
			if err := catalog.ValidatePillar(pillar); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		action = flow.SummaryJump{Stage: stage, Pillar: pillar}
	default:
		return mcp.NewToolResultError(fmt.Sprintf(
			"invalid action %q: must be one of: show, next, prev, next_pillar, prev_pillar, jump", name)), nil
	}

	st, err := t.scan.Session.Dispatch(action)
	if err != nil {
		return flowError(err)
	}
	return t.scan.screenResult("", st)
}
