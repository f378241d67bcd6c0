package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// AnswerTool handles the qps_answer MCP tool.
// It records an answer by question id. The move to the next question
// happens after the auto-advance delay unless advance=now.
type AnswerTool struct {
	scan *Scan
}

// NewAnswerTool creates an AnswerTool.
func NewAnswerTool(scan *Scan) *AnswerTool {
	return &AnswerTool{scan: scan}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("qps_answer",
		mcp.WithDescription(
			"Record the respondent's answer to the question on screen. `question_id` must "+
				"match the current question; answering the first question of a pillar intro "+
				"begins the pillar. Answers replace earlier ones for the same question.",
		),
		mcp.WithString("question_id",
			mcp.Required(),
			mcp.Description("Id of the question being answered (e.g. P1, D3)."),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("yes, maybe (shown as 'Not sure') or no (shown as 'Not really')."),
			mcp.Enum(catalog.AnswerValues()...),
		),
		mcp.WithString("advance",
			mcp.Description("auto: move on after the short delay (default). now: show the next screen immediately."),
			mcp.Enum("auto", "now"),
		),
	)
}

// Handle processes the qps_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("question_id", "")
	if id == "" {
		return mcp.NewToolResultError("'question_id' is required"), nil
	}
	answer, err := catalog.ParseAnswer(req.GetString("answer", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := t.scan.Session.AnswerQuestion(id, answer)
	if err != nil {
		return flowError(err)
	}
	lead := fmt.Sprintf("Recorded **%s** for `%s`.", answer.Label(), id)

	if req.GetString("advance", "auto") == "now" {
		st, _ = t.scan.Session.Flush()
		return t.scan.screenResult(lead, st)
	}
	return t.scan.screenResult(lead+" Moving to the next question shortly.", st)
}
