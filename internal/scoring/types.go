// Package scoring turns categorical answers into comparable numbers.
//
// Score is the per-role engine: pillar means, indicator (GHI) means and the
// weighted global QPS. AverageClients aggregates client roles with a
// skip-null mean, and Gap/ToneOf compare an owner value with a client
// average. Every function here is pure; Engine adds memoization on top.
//
// Scores are *float64 so that "no data" survives all the way to JSON as
// null instead of collapsing into zero.
package scoring

import "github.com/HendryAvila/quietscan/internal/catalog"

// RoleClientsAverage is the meta role of an aggregated client result.
const RoleClientsAverage = "clientsAverage"

// Label thresholds on the 0..4 scale.
const (
	StrongThreshold = 3.2
	SteadyThreshold = 2.2
)

// Level labels shared by pillars and indicators.
const (
	LabelStrong       = "Strong"
	LabelSteady       = "Steady"
	LabelUnderpowered = "Underpowered"
	LabelIncomplete   = "Incomplete"
	LabelUnknown      = "Unknown"
)

// Meta identifies whose scores these are and over which pillars.
type Meta struct {
	Role          string              `json:"role"`
	PillarsActive []catalog.PillarKey `json:"pillarsActive"`
}

// PillarSummary is the score of one pillar for one role.
type PillarSummary struct {
	Key            catalog.PillarKey `json:"key"`
	Name           string            `json:"name"`
	Tag            string            `json:"tag"`
	Score          *float64          `json:"score"`
	Label          string            `json:"label"`
	Note           string            `json:"note"`
	Answered       int               `json:"answered"`
	QuestionsTotal int               `json:"questionsTotal"`
}

// IndicatorResult is the score of one GHI indicator.
type IndicatorResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Score       *float64 `json:"score"`
	Level       string   `json:"level"`
}

// Global holds the QPS.
type Global struct {
	Score *float64 `json:"score"`
}

// ScoresResult is the derived-data contract consumed by summaries and
// the export payload.
type ScoresResult struct {
	Meta       Meta                                `json:"meta"`
	Pillars    map[catalog.PillarKey]PillarSummary `json:"pillars"`
	Indicators []IndicatorResult                   `json:"indicators"`
	Global     Global                              `json:"global"`
}

// Pillar returns the summary for key and whether the pillar was scored.
func (r *ScoresResult) Pillar(key catalog.PillarKey) (PillarSummary, bool) {
	if r == nil {
		return PillarSummary{}, false
	}
	p, ok := r.Pillars[key]
	return p, ok
}

// PillarScore returns the score of key, or nil.
func (r *ScoresResult) PillarScore(key catalog.PillarKey) *float64 {
	p, _ := r.Pillar(key)
	return p.Score
}

// GlobalScore returns the QPS, or nil. Safe on a nil result.
func (r *ScoresResult) GlobalScore() *float64 {
	if r == nil {
		return nil
	}
	return r.Global.Score
}

// IndicatorScore returns the score of the i-th indicator, or nil.
func (r *ScoresResult) IndicatorScore(i int) *float64 {
	if r == nil || i < 0 || i >= len(r.Indicators) {
		return nil
	}
	return r.Indicators[i].Score
}

// Clone deep-copies the result, including score pointers.
func (r *ScoresResult) Clone() *ScoresResult {
	if r == nil {
		return nil
	}
	out := &ScoresResult{
		Meta: Meta{
			Role:          r.Meta.Role,
			PillarsActive: append([]catalog.PillarKey(nil), r.Meta.PillarsActive...),
		},
		Pillars:    make(map[catalog.PillarKey]PillarSummary, len(r.Pillars)),
		Indicators: make([]IndicatorResult, len(r.Indicators)),
		Global:     Global{Score: clonePtr(r.Global.Score)},
	}
	for k, p := range r.Pillars {
		p.Score = clonePtr(p.Score)
		out.Pillars[k] = p
	}
	for i, ind := range r.Indicators {
		ind.Score = clonePtr(ind.Score)
		out.Indicators[i] = ind
	}
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr(v float64) *float64 { return &v }

// --- Labels ---

// PillarLabel returns the label and note for a pillar score.
func PillarLabel(score *float64) (label, note string) {
	switch {
	case score == nil:
		return LabelIncomplete, "Not enough answers yet to size this pillar."
	case *score >= StrongThreshold:
		return LabelStrong, "Consistently strong quiet signal in this area."
	case *score >= SteadyThreshold:
		return LabelSteady, "Signal is visible but could be refined."
	default:
		return LabelUnderpowered, "Signals here may be weakening your overall presence."
	}
}

// IndicatorLevel returns the level for an indicator score.
func IndicatorLevel(score *float64) string {
	if score == nil {
		return LabelUnknown
	}
	l, _ := PillarLabel(score)
	return l
}
