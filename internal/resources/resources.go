// Package resources implements MCP resource handlers for the Quiet Presence scan.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (qps://...) following MCP conventions.
package resources

import (
	"context"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	CatalogURI = "qps://catalog"
	StatusURI  = "qps://session/status"
)

// Handler manages scan resource endpoints.
type Handler struct {
	cat     *catalog.Catalog
	session *flow.Session
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(cat *catalog.Catalog, session *flow.Session) *Handler {
	return &Handler{cat: cat, session: session}
}

// CatalogResource returns the MCP resource definition for the catalog.
func (h *Handler) CatalogResource() mcp.Resource {
	return mcp.NewResource(
		CatalogURI,
		"Quiet Presence Catalog",
		mcp.WithResourceDescription("Pillars, questions, answer scale and Global Brand Health indicators"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCatalog returns the catalog as JSON.
func (h *Handler) HandleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.cat)
}

// StatusResource returns the MCP resource definition for the live session.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		StatusURI,
		"Quiet Presence Session Status",
		mcp.WithResourceDescription("Current scan mode, selection, respondents, answers and screen"),
		mcp.WithMIMEType("application/json"),
	)
}

// Status is the JSON view of a session.
type Status struct {
	Mode          flow.Mode                     `json:"mode"`
	Who           flow.Who                      `json:"who,omitempty"`
	Scope         flow.Scope                    `json:"scope,omitempty"`
	Pillars       []catalog.PillarKey           `json:"pillars"`
	Role          ledger.Role                   `json:"role,omitempty"`
	Roles         ledger.Sequence               `json:"roles"`
	PillarIndex   int                           `json:"pillarIndex"`
	QuestionIndex int                           `json:"questionIndex"`
	Answers       map[ledger.Role]ledger.Bundle `json:"answers"`
	Summary       *summary.Cursor               `json:"summary,omitempty"`
	Screen        flow.Screen                   `json:"screen"`
	Pending       bool                          `json:"autoAdvancePending"`
}

// StatusOf builds the JSON view of st.
func StatusOf(cat *catalog.Catalog, st flow.State, pending bool) Status {
	s := Status{
		Mode:          st.Mode,
		Who:           st.Selection.Who,
		Scope:         st.Selection.Scope,
		Pillars:       st.Active(),
		Role:          st.Role,
		Roles:         st.Roles,
		PillarIndex:   st.PillarIndex,
		QuestionIndex: st.QuestionIndex,
		Answers:       st.Ledger.Snapshot(),
		Screen:        flow.Describe(cat, st),
		Pending:       pending,
	}
	if st.Mode == flow.ModeSummary {
		c := st.Summary
		s.Summary = &c
	}
	return s
}

// HandleStatus returns the current session state as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.session == nil {
		return errorResource(req.Params.URI, "no active session"), nil
	}
	return jsonResource(req.Params.URI, StatusOf(h.cat, h.session.State(), h.session.Pending()))
}
