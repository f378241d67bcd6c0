// Package summary sequences and derives the result screens shown once
// every role has finished answering.
//
// The navigator is a linear walk:
//
//	pillar(0) → pillar-ghi(0) → … → pillar-ghi(n−1) → overall → overall-ghi → final
//
// A Cursor (stage + pillar index) fully determines which slice of derived
// data is on screen. Views recompute that slice on demand from the ledger;
// nothing derived is ever stored.
package summary

import (
	"fmt"
	"strings"
)

// Stage is a summary sub-screen.
type Stage string

const (
	StagePillar     Stage = "pillar"
	StagePillarGHI  Stage = "pillar-ghi"
	StageOverall    Stage = "overall"
	StageOverallGHI Stage = "overall-ghi"
	StageFinal      Stage = "final"
)

var validStages = map[Stage]bool{
	StagePillar:     true,
	StagePillarGHI:  true,
	StageOverall:    true,
	StageOverallGHI: true,
	StageFinal:      true,
}

// ValidateStage returns an error if s is not a known stage.
func ValidateStage(s Stage) error {
	if !validStages[s] {
		return fmt.Errorf("invalid stage %q: must be one of: %s", s, strings.Join(StageValues(), ", "))
	}
	return nil
}

// StageValues returns the stages as strings for MCP enums.
func StageValues() []string {
	return []string{
		string(StagePillar), string(StagePillarGHI),
		string(StageOverall), string(StageOverallGHI), string(StageFinal),
	}
}

// IsPillarStage reports whether s shows a single pillar.
func (s Stage) IsPillarStage() bool {
	return s == StagePillar || s == StagePillarGHI
}

// Cursor is the summary sub-state.
type Cursor struct {
	Stage       Stage `json:"stage"`
	PillarIndex int   `json:"pillarIndex"`
}

// Start is the first summary screen.
func Start() Cursor {
	return Cursor{Stage: StagePillar}
}

// position maps a cursor onto the linear sequence for n active pillars.
func position(c Cursor, n int) int {
	switch c.Stage {
	case StagePillar:
		return 2 * clampIndex(c.PillarIndex, n)
	case StagePillarGHI:
		return 2*clampIndex(c.PillarIndex, n) + 1
	case StageOverall:
		return 2 * n
	case StageOverallGHI:
		return 2*n + 1
	case StageFinal:
		return 2*n + 2
	}
	return 0
}

func fromPosition(p, n int) Cursor {
	switch {
	case p < 2*n && p%2 == 0:
		return Cursor{Stage: StagePillar, PillarIndex: p / 2}
	case p < 2*n:
		return Cursor{Stage: StagePillarGHI, PillarIndex: p / 2}
	case p == 2*n:
		return Cursor{Stage: StageOverall}
	case p == 2*n+1:
		return Cursor{Stage: StageOverallGHI}
	default:
		return Cursor{Stage: StageFinal}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if n > 0 && i >= n {
		return n - 1
	}
	return i
}

// Next advances one screen. It is a no-op on the final screen.
func Next(c Cursor, n int) Cursor {
	last := 2*n + 2
	p := position(c, n)
	if p >= last {
		return fromPosition(last, n)
	}
	return fromPosition(p+1, n)
}

// Prev steps back one screen. It is a no-op on the first pillar screen.
func Prev(c Cursor, n int) Cursor {
	p := position(c, n)
	if p <= 0 {
		return fromPosition(0, n)
	}
	return fromPosition(p-1, n)
}

// NextPillar skips from either pillar stage to the next pillar's first
// screen, or to overall after the last pillar. Other stages are unchanged.
func NextPillar(c Cursor, n int) Cursor {
	if !c.Stage.IsPillarStage() {
		return c
	}
	if c.PillarIndex >= n-1 {
		return Cursor{Stage: StageOverall}
	}
	return Cursor{Stage: StagePillar, PillarIndex: c.PillarIndex + 1}
}

// PrevPillar returns to the previous pillar's first screen. It is a no-op
// on pillar 0 and outside the pillar stages.
func PrevPillar(c Cursor, n int) Cursor {
	if !c.Stage.IsPillarStage() || c.PillarIndex <= 0 {
		return c
	}
	return Cursor{Stage: StagePillar, PillarIndex: clampIndex(c.PillarIndex-1, n)}
}

// Jump moves straight to stage. For pillar stages, pillarIndex selects
// the pillar; a negative index keeps the current one. Overall stages
// always reset the pillar index.
func Jump(c Cursor, stage Stage, pillarIndex, n int) (Cursor, error) {
	if err := ValidateStage(stage); err != nil {
		return c, err
	}
	if !stage.IsPillarStage() {
		return Cursor{Stage: stage}, nil
	}
	idx := c.PillarIndex
	if pillarIndex >= 0 {
		if pillarIndex >= n {
			return c, fmt.Errorf("pillar index %d out of range (0..%d)", pillarIndex, n-1)
		}
		idx = pillarIndex
	}
	return Cursor{Stage: stage, PillarIndex: clampIndex(idx, n)}, nil
}
