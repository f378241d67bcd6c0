package scoring

import (
	"strings"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 128

// Engine memoizes Score over a fixed catalog. Score is referentially
// transparent, so a result keyed by (role, active pillars, answers) never
// goes stale. Results are cloned on the way out; callers may mutate them.
//
// Engine is safe for concurrent use.
type Engine struct {
	cat   *catalog.Catalog
	cache *lru.Cache[string, *ScoresResult]
}

// NewEngine creates an engine with an LRU of size entries. A non-positive
// size falls back to the default.
func NewEngine(cat *catalog.Catalog, size int) *Engine {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *ScoresResult](size)
	if err != nil {
		// lru.New only fails on a non-positive size, which is guarded above.
		panic(err)
	}
	return &Engine{cat: cat, cache: cache}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Score is the memoized form of the package-level Score.
func (e *Engine) Score(bundle ledger.Bundle, active []catalog.PillarKey, role string) *ScoresResult {
	key := cacheKey(bundle, active, role)
	if r, ok := e.cache.Get(key); ok {
		return r.Clone()
	}
	r := Score(e.cat, bundle, active, role)
	e.cache.Add(key, r.Clone())
	return r
}

// ScoreRole scores one role straight from the ledger.
func (e *Engine) ScoreRole(l *ledger.Ledger, role ledger.Role, active []catalog.PillarKey) *ScoresResult {
	return e.Score(l.Bundle(role), active, string(role))
}

// AverageClients is AverageClients with per-client memoization.
func (e *Engine) AverageClients(l *ledger.Ledger, active []catalog.PillarKey) *ScoresResult {
	roles := QualifyingClients(l, active)
	if len(roles) == 0 {
		return nil
	}
	per := make([]*ScoresResult, 0, len(roles))
	for _, r := range roles {
		per = append(per, e.ScoreRole(l, r, active))
	}
	return Average(per, active)
}

// Len reports how many results are cached.
func (e *Engine) Len() int { return e.cache.Len() }

// Purge empties the memo.
func (e *Engine) Purge() { e.cache.Purge() }

func cacheKey(bundle ledger.Bundle, active []catalog.PillarKey, role string) string {
	var sb strings.Builder
	sb.WriteString(role)
	sb.WriteByte('|')
	for _, k := range active {
		sb.WriteString(string(k))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	sb.WriteString(bundle.Fingerprint(active))
	return sb.String()
}
