package flow

import (
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/summary"
)

// Reduce applies a to st. On error the returned State is st itself and the
// error wraps one of the package sentinels. st is never mutated.
func Reduce(cat *catalog.Catalog, st State, a Action) (State, error) {
	next, err := reduce(cat, st, a)
	if err != nil {
		return st, err
	}
	return next, nil
}

func reduce(cat *catalog.Catalog, st State, a Action) (State, error) {
	switch a := a.(type) {
	case Restart:
		return Initial(), nil
	case GoTo:
		if st.Mode != ModeIntro && st.Mode != ModeRules && st.Mode != ModeSetup {
			return st, invalid(a, st, "only before the scan starts; use restart")
		}
		return goTo(st, a.Mode)
	case SetWho, SetScope, TogglePillar, Start:
		if st.Mode != ModeSetup {
			return st, invalid(a, st, "only during setup")
		}
		return reduceSetup(st, a)
	case Begin, Answer, Next, Prev, ResetPillar, AddClient, Finish:
		if st.Mode != ModeFlow {
			return st, invalid(a, st, "only while answering")
		}
		return reduceFlow(cat, st, a)
	case SummaryNext, SummaryPrev, SummaryNextPillar, SummaryPrevPillar, SummaryJump:
		if st.Mode != ModeSummary {
			return st, invalid(a, st, "only in the summary")
		}
		return reduceSummary(st, a)
	case nil:
		return st, fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	return st, fmt.Errorf("%w: unknown action %T", ErrInvalidAction, a)
}

func invalid(a Action, st State, detail string) error {
	return fmt.Errorf("%w: %s is available %s (mode: %s)", ErrInvalidAction, a.Name(), detail, st.Mode)
}

func goTo(st State, m Mode) (State, error) {
	switch m {
	case ModeIntro, ModeRules, ModeSetup:
	default:
		return st, fmt.Errorf("%w: cannot go to %q directly", ErrInvalidAction, m)
	}
	out := st
	out.Mode = m
	return out, nil
}

// --- setup ---

func reduceSetup(st State, a Action) (State, error) {
	out := st
	switch a := a.(type) {
	case SetWho:
		if a.Who != WhoMyBrand && a.Who != WhoClient {
			return st, fmt.Errorf("%w: who %q", ErrInvalidAction, a.Who)
		}
		out.Selection.Who = a.Who

	case SetScope:
		switch a.Scope {
		case ScopeFull:
			for i := range out.Selection.Pillars {
				out.Selection.Pillars[i] = true
			}
		case ScopeCustom:
			if out.Selection.Count() == catalog.PillarCount {
				out.Selection.Pillars = [catalog.PillarCount]bool{}
			}
		default:
			return st, fmt.Errorf("%w: scope %q", ErrInvalidAction, a.Scope)
		}
		out.Selection.Scope = a.Scope

	case TogglePillar:
		i := catalog.PillarIndex(a.Pillar)
		if i < 0 {
			return st, fmt.Errorf("%w: %v", ErrInvalidAction, catalog.ValidatePillar(a.Pillar))
		}
		out.Selection.Pillars[i] = !out.Selection.Pillars[i]
		// Full scope means all five; dropping one makes it custom.
		if out.Selection.Scope == ScopeFull && out.Selection.Count() < catalog.PillarCount {
			out.Selection.Scope = ScopeCustom
		}

	case Start:
		return start(st)
	}
	return out, nil
}

func start(st State) (State, error) {
	sel := st.Selection
	if sel.Count() == 0 {
		return st, ErrEmptySelection
	}
	if sel.Who == WhoUnset {
		sel.Who = WhoMyBrand
	}
	if sel.Scope == ScopeUnset {
		if sel.Count() == catalog.PillarCount {
			sel.Scope = ScopeFull
		} else {
			sel.Scope = ScopeCustom
		}
	}

	first := ledger.RoleOwner
	if sel.Who == WhoClient {
		first = ledger.RoleClient1
	}

	out := st
	out.Selection = sel
	out.Mode = ModeFlow
	out.Roles = ledger.Sequence{first}
	out.Role = first
	out.PillarIndex = 0
	out.QuestionIndex = -1
	out.Summary = summary.Cursor{}
	// A run owns its answers; nothing carries over from an earlier one.
	out.Ledger = ledger.New()
	return out, nil
}

// --- flow ---

func reduceFlow(cat *catalog.Catalog, st State, a Action) (State, error) {
	active := st.Active()
	n := len(active)

	if st.PillarIndex >= n {
		return reduceRolePrompt(cat, st, a, active)
	}

	p := cat.Pillar(active[st.PillarIndex])
	if p == nil {
		return st, fmt.Errorf("%w: pillar %q missing from catalog", ErrInvalidAction, active[st.PillarIndex])
	}
	last := len(p.Questions) - 1

	out := st
	switch a := a.(type) {
	case Begin:
		if st.QuestionIndex != -1 {
			return st, fmt.Errorf("%w: already answering %s", ErrInvalidAction, p.Name)
		}
		out.QuestionIndex = 0

	case Answer:
		if st.QuestionIndex < 0 || st.QuestionIndex > last {
			return st, fmt.Errorf("%w: no question on screen", ErrInvalidAction)
		}
		if _, ok := a.Answer.Score(); !ok {
			return st, fmt.Errorf("%w: answer %q", ErrInvalidAction, a.Answer)
		}
		out.Ledger = st.Ledger.Clone()
		out.Ledger.Set(st.Role, p.Key, p.Questions[st.QuestionIndex].ID, a.Answer)

	case Next:
		if st.QuestionIndex < last {
			out.QuestionIndex++
			return out, nil
		}
		if st.PillarIndex < n-1 {
			out.PillarIndex++
			out.QuestionIndex = -1
			return out, nil
		}
		return completeRole(out, n), nil

	case Prev:
		switch {
		case st.QuestionIndex > 0:
			out.QuestionIndex--
		case st.PillarIndex > 0:
			prev := cat.Pillar(active[st.PillarIndex-1])
			out.PillarIndex--
			out.QuestionIndex = len(prev.Questions) - 1
		default:
			// First question of the first pillar: nothing before it.
			return st, nil
		}

	case ResetPillar:
		out.Ledger = st.Ledger.Clone()
		out.Ledger.ClearPillar(st.Role, p.Key)
		out.QuestionIndex = -1

	case AddClient, Finish:
		return st, fmt.Errorf("%w: %s is available once the role is complete", ErrInvalidAction, a.Name())
	}
	return out, nil
}

// completeRole moves past the last pillar. Owner-led sessions with another
// client slot stop at the role prompt; everything else opens the summary.
func completeRole(st State, n int) State {
	st.PillarIndex = n
	st.QuestionIndex = -1
	if st.offersRolePrompt() {
		return st
	}
	return enterSummary(st)
}

func enterSummary(st State) State {
	st.Mode = ModeSummary
	st.Summary = summary.Start()
	return st
}

func reduceRolePrompt(cat *catalog.Catalog, st State, a Action, active []catalog.PillarKey) (State, error) {
	out := st
	switch a.(type) {
	case AddClient:
		nr, ok := st.NextRole()
		if !ok {
			return st, fmt.Errorf("%w: all client slots are used", ErrInvalidAction)
		}
		roles, err := st.Roles.Append(nr)
		if err != nil {
			return st, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		out.Roles = roles
		out.Role = nr
		out.PillarIndex = 0
		out.QuestionIndex = -1
		return out, nil

	case Finish:
		return enterSummary(out), nil

	case Prev:
		if len(active) == 0 {
			return st, nil
		}
		lastPillar := cat.Pillar(active[len(active)-1])
		out.PillarIndex = len(active) - 1
		out.QuestionIndex = len(lastPillar.Questions) - 1
		return out, nil
	}
	return st, fmt.Errorf("%w: %s is not available at the role prompt", ErrInvalidAction, a.Name())
}

// --- summary ---

func reduceSummary(st State, a Action) (State, error) {
	n := st.Selection.Count()
	out := st
	switch a := a.(type) {
	case SummaryNext:
		out.Summary = summary.Next(st.Summary, n)
	case SummaryPrev:
		out.Summary = summary.Prev(st.Summary, n)
	case SummaryNextPillar:
		out.Summary = summary.NextPillar(st.Summary, n)
	case SummaryPrevPillar:
		out.Summary = summary.PrevPillar(st.Summary, n)
	case SummaryJump:
		idx := -1
		if a.Pillar != "" {
			idx = indexOf(st.Active(), a.Pillar)
			if idx < 0 {
				return st, fmt.Errorf("%w: pillar %q is not part of this scan", ErrInvalidAction, a.Pillar)
			}
		}
		c, err := summary.Jump(st.Summary, a.Stage, idx, n)
		if err != nil {
			return st, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		out.Summary = c
	}
	return out, nil
}

func indexOf(keys []catalog.PillarKey, k catalog.PillarKey) int {
	for i, x := range keys {
		if x == k {
			return i
		}
	}
	return -1
}
