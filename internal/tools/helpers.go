// Package tools implements the MCP tool handlers for the Quiet Presence scan.
//
// Each tool receives its dependencies via its struct and exposes a
// Definition for registration and a Handle compatible with mcp-go's
// CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the ReportStore interface, not the SQLite archive
// - Validation failures are tool errors the host shows to the user;
//   infrastructure failures are returned as Go errors
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/metrics"
	"github.com/HendryAvila/quietscan/internal/render"
	"github.com/HendryAvila/quietscan/internal/scoring"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ReportStore persists exported payloads.
type ReportStore interface {
	Save(p *summary.Payload) (string, error)
	Get(id string) (*archive.Report, error)
	List(limit int) ([]archive.Summary, error)
}

// Scan is the state shared by every qps tool: the one live session, the
// scoring engine behind the summary views and the optional archive.
type Scan struct {
	Session *flow.Session
	Engine  *scoring.Engine
	Reports ReportStore
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

func (s *Scan) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// input builds the summary input for st.
func (s *Scan) input(st flow.State) summary.Input {
	return summary.Input{
		Engine:     s.Engine,
		Ledger:     st.Ledger,
		Active:     st.Active(),
		Roles:      st.Roles,
		InitialWho: string(st.Selection.Who),
		Scope:      string(st.Selection.Scope),
	}
}

// screen renders st: the flow screen outside the summary, the stage view
// inside it.
func (s *Scan) screen(st flow.State) (string, error) {
	if st.Mode != flow.ModeSummary {
		return render.State(s.Session.Catalog(), st), nil
	}
	return render.Stage(s.input(st), st.Summary)
}

// screenResult renders st under an optional lead line.
func (s *Scan) screenResult(lead string, st flow.State) (*mcp.CallToolResult, error) {
	text, err := s.screen(st)
	if err != nil {
		return nil, fmt.Errorf("rendering screen: %w", err)
	}
	if lead != "" {
		text = lead + "\n\n" + text
	}
	return mcp.NewToolResultText(text), nil
}

// toSetup moves an intro or rules session to setup so setup tools work
// from the first screen.
func (s *Scan) toSetup() error {
	switch s.Session.State().Mode {
	case flow.ModeIntro, flow.ModeRules:
		_, err := s.Session.Dispatch(flow.GoTo{Mode: flow.ModeSetup})
		return err
	}
	return nil
}

// flowError maps a flow error to a tool error result. Errors outside the
// flow's sentinel set are returned as Go errors.
func flowError(err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, flow.ErrEmptySelection):
		return mcp.NewToolResultError(flow.ErrEmptySelection.Error()), nil
	case errors.Is(err, flow.ErrInvalidAction),
		errors.Is(err, flow.ErrUnknownQuestion),
		errors.Is(err, flow.ErrSessionClosed):
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// intArg extracts an integer argument from a tool request.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// listArg extracts a comma-separated or array argument.
func listArg(req mcp.CallToolRequest, key string) []string {
	var out []string
	switch v := req.GetArguments()[key].(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}
