package flow

import (
	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/summary"
)

// Action is a user intent fed to Reduce.
type Action interface {
	// Name is a stable identifier used in logs and metrics.
	Name() string
}

// GoTo moves between intro, rules and setup.
type GoTo struct{ Mode Mode }

// SetWho picks the first respondent.
type SetWho struct{ Who Who }

// SetScope picks full or custom scope.
type SetScope struct{ Scope Scope }

// TogglePillar flips one pillar in the selection.
type TogglePillar struct{ Pillar catalog.PillarKey }

// Start validates the selection and enters the flow.
type Start struct{}

// Begin leaves the pillar intro for the first question.
type Begin struct{}

// Answer records an answer for the current question.
type Answer struct{ Answer catalog.Answer }

// Next advances one question, pillar or role.
type Next struct{}

// Prev steps back one question.
type Prev struct{}

// ResetPillar clears the current role's answers for the current pillar.
type ResetPillar struct{}

// AddClient accepts the role prompt.
type AddClient struct{}

// Finish declines the role prompt and opens the summary.
type Finish struct{}

// SummaryNext advances one summary screen.
type SummaryNext struct{}

// SummaryPrev steps back one summary screen.
type SummaryPrev struct{}

// SummaryNextPillar skips to the next pillar's summary.
type SummaryNextPillar struct{}

// SummaryPrevPillar returns to the previous pillar's summary.
type SummaryPrevPillar struct{}

// SummaryJump opens a summary stage directly. An empty Pillar keeps the
// current pillar for pillar stages.
type SummaryJump struct {
	Stage  summary.Stage
	Pillar catalog.PillarKey
}

// Restart discards everything.
type Restart struct{}

func (GoTo) Name() string              { return "goto" }
func (SetWho) Name() string            { return "set_who" }
func (SetScope) Name() string          { return "set_scope" }
func (TogglePillar) Name() string      { return "toggle_pillar" }
func (Start) Name() string             { return "start" }
func (Begin) Name() string             { return "begin" }
func (Answer) Name() string            { return "answer" }
func (Next) Name() string              { return "next" }
func (Prev) Name() string              { return "prev" }
func (ResetPillar) Name() string       { return "reset_pillar" }
func (AddClient) Name() string         { return "add_client" }
func (Finish) Name() string            { return "finish" }
func (SummaryNext) Name() string       { return "summary_next" }
func (SummaryPrev) Name() string       { return "summary_prev" }
func (SummaryNextPillar) Name() string { return "summary_next_pillar" }
func (SummaryPrevPillar) Name() string { return "summary_prev_pillar" }
func (SummaryJump) Name() string       { return "summary_jump" }
func (Restart) Name() string           { return "restart" }
