package scoring

import (
	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
)

// Score computes one role's results over the active pillars.
//
// active must be in canonical order; pillars outside it are ignored even
// when the bundle holds answers for them. Unanswered questions are skipped,
// never counted as zero.
func Score(cat *catalog.Catalog, bundle ledger.Bundle, active []catalog.PillarKey, role string) *ScoresResult {
	res := &ScoresResult{
		Meta: Meta{
			Role:          role,
			PillarsActive: append([]catalog.PillarKey(nil), active...),
		},
		Pillars: make(map[catalog.PillarKey]PillarSummary, len(active)),
	}

	var globalSum, globalWeight float64
	for _, key := range active {
		p := cat.Pillar(key)
		if p == nil {
			continue
		}
		ps := scorePillar(p, bundle)
		res.Pillars[key] = ps
		if ps.Score != nil {
			w := cat.Weight(key)
			globalSum += *ps.Score * w
			globalWeight += w
		}
	}
	if globalWeight > 0 {
		res.Global.Score = ptr(globalSum / globalWeight)
	}

	res.Indicators = make([]IndicatorResult, 0, len(cat.Indicators))
	for _, ind := range cat.Indicators {
		score := indicatorScore(cat, bundle, active, ind)
		res.Indicators = append(res.Indicators, IndicatorResult{
			Name:        ind.Name,
			Description: ind.Description,
			Score:       score,
			Level:       IndicatorLevel(score),
		})
	}
	return res
}

func scorePillar(p *catalog.Pillar, bundle ledger.Bundle) PillarSummary {
	var total float64
	count := 0
	for _, q := range p.Questions {
		a, ok := bundle.Get(p.Key, q.ID)
		if !ok {
			continue
		}
		if v, ok := a.Score(); ok {
			total += v
			count++
		}
	}
	var score *float64
	if count > 0 {
		score = ptr(total / float64(count))
	}
	label, note := PillarLabel(score)
	return PillarSummary{
		Key:            p.Key,
		Name:           p.Name,
		Tag:            p.Tag,
		Score:          score,
		Label:          label,
		Note:           note,
		Answered:       count,
		QuestionsTotal: len(p.Questions),
	}
}

// indicatorScore resolves every reference to the first active pillar, in
// canonical order, that defines the id, and averages the recorded answers.
func indicatorScore(cat *catalog.Catalog, bundle ledger.Bundle, active []catalog.PillarKey, ind catalog.Indicator) *float64 {
	var sum float64
	n := 0
	for _, id := range ind.Questions {
		owner, ok := ResolveOwner(cat, active, id)
		if !ok {
			continue
		}
		a, ok := bundle.Get(owner, id)
		if !ok {
			continue
		}
		if v, ok := a.Score(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return ptr(sum / float64(n))
}

// ResolveOwner returns the first active pillar that defines question id.
func ResolveOwner(cat *catalog.Catalog, active []catalog.PillarKey, id string) (catalog.PillarKey, bool) {
	for _, key := range active {
		p := cat.Pillar(key)
		if p != nil && p.QuestionIndex(id) >= 0 {
			return key, true
		}
	}
	return "", false
}
