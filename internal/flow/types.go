// Package flow implements the scan's state machine.
//
// Reduce is a pure transition function: it takes a State and an Action and
// returns the next State without mutating its input. Session owns exactly
// one State, serializes actions behind a mutex and runs the single
// cancellable auto-advance that follows an answer.
//
// Modes progress intro → rules → setup → flow → summary. Inside flow the
// cursors (pillar index, question index) walk the active pillars for the
// current role; pillar index == len(active) means the role is complete.
package flow

import (
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/summary"
)

// Mode is the top-level screen group.
type Mode string

const (
	ModeIntro   Mode = "intro"
	ModeRules   Mode = "rules"
	ModeSetup   Mode = "setup"
	ModeFlow    Mode = "flow"
	ModeSummary Mode = "summary"
)

// Who is the first respondent chosen at setup.
type Who string

const (
	WhoUnset   Who = ""
	WhoMyBrand Who = "my-brand"
	WhoClient  Who = "client"
)

// ParseWho accepts "my-brand" (or "owner") and "client".
func ParseWho(s string) (Who, error) {
	switch s {
	case "my-brand", "owner":
		return WhoMyBrand, nil
	case "client":
		return WhoClient, nil
	}
	return WhoUnset, fmt.Errorf("invalid who %q: must be one of: my-brand, client", s)
}

// Scope records how the pillar set was chosen.
type Scope string

const (
	ScopeUnset  Scope = ""
	ScopeFull   Scope = "full"
	ScopeCustom Scope = "custom"
)

// ParseScope accepts "full" and "custom".
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeFull, ScopeCustom:
		return Scope(s), nil
	}
	return ScopeUnset, fmt.Errorf("invalid scope %q: must be one of: full, custom", s)
}

// Selection is the setup choice. Pillars is aligned to catalog.PillarOrder
// so iteration is canonical regardless of the order pillars were toggled.
type Selection struct {
	Pillars [catalog.PillarCount]bool
	Scope   Scope
	Who     Who
}

// Active returns the selected pillar keys in canonical order.
func (s Selection) Active() []catalog.PillarKey {
	out := make([]catalog.PillarKey, 0, catalog.PillarCount)
	for i, on := range s.Pillars {
		if on {
			out = append(out, catalog.PillarOrder[i])
		}
	}
	return out
}

// Count returns the number of selected pillars.
func (s Selection) Count() int {
	n := 0
	for _, on := range s.Pillars {
		if on {
			n++
		}
	}
	return n
}

// Has reports whether key is selected.
func (s Selection) Has(key catalog.PillarKey) bool {
	i := catalog.PillarIndex(key)
	return i >= 0 && s.Pillars[i]
}

// State is the complete session state. Treat it as a value: Reduce clones
// the ledger before writing so earlier States stay valid.
type State struct {
	Mode          Mode
	Selection     Selection
	Role          ledger.Role
	Roles         ledger.Sequence
	PillarIndex   int
	QuestionIndex int
	Ledger        *ledger.Ledger
	Summary       summary.Cursor
}

// Initial returns the state of a fresh session.
func Initial() State {
	return State{
		Mode:          ModeIntro,
		QuestionIndex: -1,
		Ledger:        ledger.New(),
	}
}

// Active returns the active pillars in canonical order.
func (s State) Active() []catalog.PillarKey {
	return s.Selection.Active()
}

// RoleComplete reports whether the current role has walked past its last
// active pillar.
func (s State) RoleComplete() bool {
	return s.Mode == ModeFlow && s.PillarIndex >= s.Selection.Count()
}

// CurrentPillar returns the pillar under the cursor, or nil outside flow or
// after role completion.
func (s State) CurrentPillar(cat *catalog.Catalog) *catalog.Pillar {
	if s.Mode != ModeFlow {
		return nil
	}
	active := s.Active()
	if s.PillarIndex < 0 || s.PillarIndex >= len(active) {
		return nil
	}
	return cat.Pillar(active[s.PillarIndex])
}

// CurrentQuestion returns the question under the cursor, if any.
func (s State) CurrentQuestion(cat *catalog.Catalog) (*catalog.Question, bool) {
	p := s.CurrentPillar(cat)
	if p == nil || s.QuestionIndex < 0 || s.QuestionIndex >= len(p.Questions) {
		return nil, false
	}
	return &p.Questions[s.QuestionIndex], true
}

// NextRole returns the role a role prompt would add.
func (s State) NextRole() (ledger.Role, bool) {
	return ledger.Next(s.Role)
}

// offersRolePrompt reports whether completing the current role should ask
// about adding a client instead of entering the summary.
func (s State) offersRolePrompt() bool {
	if s.Selection.Who != WhoMyBrand {
		return false
	}
	_, ok := s.NextRole()
	return ok
}

// clone returns a copy that shares nothing mutable with s.
func (s State) clone() State {
	out := s
	out.Roles = append(ledger.Sequence(nil), s.Roles...)
	out.Ledger = s.Ledger.Clone()
	return out
}
