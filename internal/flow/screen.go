package flow

import (
	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/summary"
)

// ScreenKind tells the host what to show.
type ScreenKind string

const (
	ScreenIntro       ScreenKind = "intro"
	ScreenRules       ScreenKind = "rules"
	ScreenSetup       ScreenKind = "setup"
	ScreenPillarIntro ScreenKind = "pillar-intro"
	ScreenQuestion    ScreenKind = "question"
	ScreenRolePrompt  ScreenKind = "role-prompt"
	ScreenSummary     ScreenKind = "summary"
)

// Screen is a render-ready description of a State.
type Screen struct {
	Kind ScreenKind `json:"kind"`
	Mode Mode       `json:"mode"`

	Role        ledger.Role         `json:"role,omitempty"`
	Perspective ledger.Perspective  `json:"perspective,omitempty"`
	Active      []catalog.PillarKey `json:"active,omitempty"`

	Pillar      *catalog.Pillar   `json:"-"`
	PillarKey   catalog.PillarKey `json:"pillar,omitempty"`
	PillarPos   int               `json:"pillarPos,omitempty"`
	PillarCount int               `json:"pillarCount,omitempty"`

	Question    *catalog.Question `json:"question,omitempty"`
	QuestionPos int               `json:"questionPos,omitempty"`
	Recorded    catalog.Answer    `json:"recorded,omitempty"`

	NextRole ledger.Role `json:"nextRole,omitempty"`

	Summary *summary.Cursor `json:"summary,omitempty"`
}

// Describe derives the Screen for st. Positions are 1-based.
func Describe(cat *catalog.Catalog, st State) Screen {
	sc := Screen{Mode: st.Mode}
	switch st.Mode {
	case ModeIntro:
		sc.Kind = ScreenIntro
		return sc
	case ModeRules:
		sc.Kind = ScreenRules
		return sc
	case ModeSetup:
		sc.Kind = ScreenSetup
		sc.Active = st.Active()
		return sc
	case ModeSummary:
		sc.Kind = ScreenSummary
		sc.Active = st.Active()
		c := st.Summary
		sc.Summary = &c
		return sc
	}

	sc.Role = st.Role
	sc.Perspective = st.Role.Perspective()
	sc.Active = st.Active()
	sc.PillarCount = len(sc.Active)

	if st.RoleComplete() {
		sc.Kind = ScreenRolePrompt
		if nr, ok := st.NextRole(); ok {
			sc.NextRole = nr
		}
		return sc
	}

	p := st.CurrentPillar(cat)
	sc.Pillar = p
	if p != nil {
		sc.PillarKey = p.Key
	}
	sc.PillarPos = st.PillarIndex + 1

	q, ok := st.CurrentQuestion(cat)
	if !ok {
		sc.Kind = ScreenPillarIntro
		return sc
	}
	sc.Kind = ScreenQuestion
	sc.Question = q
	sc.QuestionPos = st.QuestionIndex + 1
	if a, ok := st.Ledger.Get(st.Role, p.Key, q.ID); ok {
		sc.Recorded = a
	}
	return sc
}
