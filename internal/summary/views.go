package summary

import (
	"fmt"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/scoring"
)

// Input is everything a view needs from a finished session.
type Input struct {
	Engine     *scoring.Engine
	Ledger     *ledger.Ledger
	Active     []catalog.PillarKey
	Roles      ledger.Sequence
	InitialWho string
	Scope      string
}

func (in Input) cat() *catalog.Catalog { return in.Engine.Catalog() }

// owner returns the owner's scores, or nil when the owner has no answer in
// any active pillar.
func (in Input) owner() *scoring.ScoresResult {
	if !in.Ledger.HasAnswers(ledger.RoleOwner, in.Active) {
		return nil
	}
	return in.Engine.ScoreRole(in.Ledger, ledger.RoleOwner, in.Active)
}

// clients returns each qualifying client's scores in progression order.
func (in Input) clients() []RoleScores {
	var out []RoleScores
	for _, r := range scoring.QualifyingClients(in.Ledger, in.Active) {
		out = append(out, RoleScores{Role: r, Scores: in.Engine.ScoreRole(in.Ledger, r, in.Active)})
	}
	return out
}

func (in Input) average() *scoring.ScoresResult {
	return in.Engine.AverageClients(in.Ledger, in.Active)
}

// RoleScores pairs a role with its results.
type RoleScores struct {
	Role   ledger.Role
	Scores *scoring.ScoresResult
}

// --- tone texts ---

var (
	pillarTones = map[scoring.Tone]string{
		scoring.ToneInsufficient: "Not enough answers yet to see the gap clearly in this pillar.",
		scoring.ToneStrong:       "Strong perception gap – everyday experience here feels different for you and your clients.",
		scoring.ToneModerate:     "Moderate difference – worth observing and refining, but not critical yet.",
		scoring.ToneAligned:      "Views are largely aligned – you and your clients feel similar here.",
	}
	pillarIndicatorTones = map[scoring.Tone]string{
		scoring.ToneInsufficient: "Not enough answers in this pillar to size this indicator.",
		scoring.ToneStrong:       "Strong gap – the way this pillar shows up may be shifting this indicator in opposite directions for you vs. clients.",
		scoring.ToneModerate:     "Moderate difference – this pillar gently tilts this indicator for clients vs. how you perceive it.",
		scoring.ToneAligned:      "Aligned – this pillar supports a similar impression for this indicator on both sides.",
	}
	overallTones = map[scoring.Tone]string{
		scoring.ToneInsufficient: "You have at least one incomplete side, so the overall gap cannot be sized yet.",
		scoring.ToneStrong:       "The overall quiet presence you think you offer is very different from what clients experience.",
		scoring.ToneModerate:     "There is a visible difference in overall presence – refining key weak pillars will bring you closer.",
		scoring.ToneAligned:      "Your overall presence is largely aligned – focus on subtle refinement rather than reinvention.",
	}
	overallIndicatorTones = map[scoring.Tone]string{
		scoring.ToneInsufficient: "Not enough answers yet to size this indicator.",
		scoring.ToneStrong:       "Strong perception gap – business risk if left unattended.",
		scoring.ToneModerate:     "Moderate difference – refine key touchpoints linked to this indicator.",
		scoring.ToneAligned:      "Aligned – maintain consistency and watch for early drift.",
	}
)

// Comparison is one owner-vs-clients line.
type Comparison struct {
	Owner   *float64     `json:"owner"`
	Clients *float64     `json:"clientsAverage"`
	Gap     *float64     `json:"gap"`
	Tone    scoring.Tone `json:"tone"`
	Reading string       `json:"reading"`
}

func compare(owner, clients *float64, tones map[scoring.Tone]string) Comparison {
	gap := scoring.Gap(owner, clients)
	tone := scoring.ToneOf(gap)
	return Comparison{Owner: owner, Clients: clients, Gap: gap, Tone: tone, Reading: tones[tone]}
}

// --- pillar ---

// RoleRow is one respondent's score on a pillar.
type RoleRow struct {
	Role  ledger.Role `json:"role"`
	Label string      `json:"label"`
	Score *float64    `json:"score"`
}

// PillarView compares every role on one pillar.
type PillarView struct {
	Pillar   *catalog.Pillar `json:"-"`
	Position int             `json:"position"`
	Of       int             `json:"of"`
	Rows     []RoleRow       `json:"rows"`
	Comparison
}

// PillarComparison builds the pillar stage for active pillar index i.
func PillarComparison(in Input, i int) (*PillarView, error) {
	key, err := activeAt(in, i)
	if err != nil {
		return nil, err
	}
	owner := in.owner()
	clients := in.clients()
	avg := in.average()

	v := &PillarView{Pillar: in.cat().Pillar(key), Position: i + 1, Of: len(in.Active)}
	v.Rows = append(v.Rows, RoleRow{Role: ledger.RoleOwner, Label: "Owner", Score: owner.PillarScore(key)})
	for _, r := range ledger.ClientRoles {
		row := RoleRow{Role: r, Label: r.Label()}
		for _, c := range clients {
			if c.Role == r {
				row.Score = c.Scores.PillarScore(key)
			}
		}
		v.Rows = append(v.Rows, row)
	}
	v.Comparison = compare(owner.PillarScore(key), avg.PillarScore(key), pillarTones)
	return v, nil
}

// --- pillar GHI ---

// IndicatorLine is one indicator seen through one pillar or overall.
type IndicatorLine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Comparison
}

// PillarIndicatorsView lists the indicators a pillar feeds.
type PillarIndicatorsView struct {
	Pillar    *catalog.Pillar `json:"-"`
	Position  int             `json:"position"`
	Available bool            `json:"available"`
	Lines     []IndicatorLine `json:"lines"`
}

// PillarIndicators builds the pillar-ghi stage for active pillar index i.
// Owner values are the mean of the owner's answers to the indicator's
// questions in this pillar; client values are the mean over those
// questions of the per-question client mean.
func PillarIndicators(in Input, i int) (*PillarIndicatorsView, error) {
	key, err := activeAt(in, i)
	if err != nil {
		return nil, err
	}
	p := in.cat().Pillar(key)
	v := &PillarIndicatorsView{Pillar: p, Position: i + 1}
	if in.owner() == nil || in.average() == nil {
		return v, nil
	}
	v.Available = true

	for _, ind := range in.cat().Indicators {
		var ids []string
		for _, id := range ind.Questions {
			if p.QuestionIndex(id) >= 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}

		var ownerVals, clientVals []*float64
		for _, id := range ids {
			ownerVals = append(ownerVals, answerScore(in.Ledger, ledger.RoleOwner, key, id))
			var perClient []*float64
			for _, r := range ledger.ClientRoles {
				perClient = append(perClient, answerScore(in.Ledger, r, key, id))
			}
			clientVals = append(clientVals, scoring.MeanPtr(perClient...))
		}
		v.Lines = append(v.Lines, IndicatorLine{
			Name:        ind.Name,
			Description: ind.Description,
			Comparison:  compare(scoring.MeanPtr(ownerVals...), scoring.MeanPtr(clientVals...), pillarIndicatorTones),
		})
	}
	return v, nil
}

func answerScore(l *ledger.Ledger, r ledger.Role, key catalog.PillarKey, id string) *float64 {
	a, ok := l.Get(r, key, id)
	if !ok {
		return nil
	}
	s, ok := a.Score()
	if !ok {
		return nil
	}
	return &s
}

// --- overall ---

// OverallRow is one pillar in the overall comparison.
type OverallRow struct {
	Pillar catalog.PillarKey `json:"pillar"`
	Name   string            `json:"name"`
	Comparison
}

// OverallView compares owner and client average across all pillars.
type OverallView struct {
	Rows   []OverallRow `json:"rows"`
	Global Comparison   `json:"global"`
}

// Overall builds the overall stage.
func Overall(in Input) *OverallView {
	owner := in.owner()
	avg := in.average()
	v := &OverallView{}
	for _, key := range in.Active {
		v.Rows = append(v.Rows, OverallRow{
			Pillar:     key,
			Name:       in.cat().Pillar(key).Name,
			Comparison: compare(owner.PillarScore(key), avg.PillarScore(key), pillarTones),
		})
	}
	v.Global = compare(owner.GlobalScore(), avg.GlobalScore(), overallTones)
	return v
}

// OverallIndicatorsView compares owner and client average per indicator.
type OverallIndicatorsView struct {
	Available bool            `json:"available"`
	Lines     []IndicatorLine `json:"lines"`
}

// OverallIndicators builds the overall-ghi stage.
func OverallIndicators(in Input) *OverallIndicatorsView {
	owner := in.owner()
	avg := in.average()
	v := &OverallIndicatorsView{}
	if owner == nil || avg == nil {
		return v
	}
	v.Available = true
	for i, ind := range avg.Indicators {
		v.Lines = append(v.Lines, IndicatorLine{
			Name:        ind.Name,
			Description: ind.Description,
			Comparison:  compare(owner.IndicatorScore(i), ind.Score, overallIndicatorTones),
		})
	}
	return v
}

func activeAt(in Input, i int) (catalog.PillarKey, error) {
	if i < 0 || i >= len(in.Active) {
		return "", fmt.Errorf("pillar index %d out of range (%d active)", i, len(in.Active))
	}
	return in.Active[i], nil
}
