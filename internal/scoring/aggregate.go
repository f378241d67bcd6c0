package scoring

import (
	"math"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
)

// QualifyingClients returns the client roles that have at least one answer
// in an active pillar, in progression order.
func QualifyingClients(l *ledger.Ledger, active []catalog.PillarKey) []ledger.Role {
	var out []ledger.Role
	for _, r := range ledger.ClientRoles {
		if l.HasAnswers(r, active) {
			out = append(out, r)
		}
	}
	return out
}

// AverageClients averages the qualifying clients' results. It returns nil
// when no client has answered any active pillar.
func AverageClients(cat *catalog.Catalog, l *ledger.Ledger, active []catalog.PillarKey) *ScoresResult {
	roles := QualifyingClients(l, active)
	if len(roles) == 0 {
		return nil
	}
	per := make([]*ScoresResult, 0, len(roles))
	for _, r := range roles {
		per = append(per, Score(cat, l.Bundle(r), active, string(r)))
	}
	return Average(per, active)
}

// Average combines already-scored client results with a skip-null mean.
// Pillar metadata comes from the first result; labels follow the averaged
// score. Average returns nil for an empty input.
func Average(per []*ScoresResult, active []catalog.PillarKey) *ScoresResult {
	if len(per) == 0 {
		return nil
	}
	first := per[0]
	out := &ScoresResult{
		Meta: Meta{
			Role:          RoleClientsAverage,
			PillarsActive: append([]catalog.PillarKey(nil), active...),
		},
		Pillars:    make(map[catalog.PillarKey]PillarSummary, len(active)),
		Indicators: make([]IndicatorResult, len(first.Indicators)),
	}

	for _, key := range active {
		ps, ok := first.Pillars[key]
		if !ok {
			continue
		}
		ps.Score = meanOf(per, func(r *ScoresResult) *float64 { return r.PillarScore(key) })
		ps.Label, ps.Note = PillarLabel(ps.Score)
		out.Pillars[key] = ps
	}

	for i, ind := range first.Indicators {
		ind.Score = meanOf(per, func(r *ScoresResult) *float64 { return r.IndicatorScore(i) })
		ind.Level = IndicatorLevel(ind.Score)
		out.Indicators[i] = ind
	}

	out.Global.Score = meanOf(per, (*ScoresResult).GlobalScore)
	return out
}

func meanOf(per []*ScoresResult, pick func(*ScoresResult) *float64) *float64 {
	var sum float64
	n := 0
	for _, r := range per {
		if v := pick(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return ptr(sum / float64(n))
}

// MeanPtr averages the non-nil values, or returns nil.
func MeanPtr(values ...*float64) *float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return ptr(sum / float64(n))
}

// --- Gap ---

// Gap is |a-b|, or nil when either side is missing.
func Gap(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return ptr(math.Abs(*a - *b))
}

// Tone buckets a perception gap.
type Tone string

const (
	ToneInsufficient Tone = "insufficient"
	ToneAligned      Tone = "aligned"
	ToneModerate     Tone = "moderate"
	ToneStrong       Tone = "strong"
)

// Gap thresholds.
const (
	StrongGap   = 1.0
	ModerateGap = 0.4
)

// ToneOf classifies a gap.
func ToneOf(gap *float64) Tone {
	switch {
	case gap == nil:
		return ToneInsufficient
	case *gap >= StrongGap:
		return ToneStrong
	case *gap >= ModerateGap:
		return ToneModerate
	default:
		return ToneAligned
	}
}

var toneLabels = map[Tone]string{
	ToneInsufficient: "not enough data",
	ToneAligned:      "aligned perception",
	ToneModerate:     "moderate perception gap",
	ToneStrong:       "strong perception gap",
}

// Label returns the human bucket name, e.g. "strong perception gap".
func (t Tone) Label() string {
	if l, ok := toneLabels[t]; ok {
		return l
	}
	return string(t)
}
