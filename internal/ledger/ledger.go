package ledger

import (
	"sort"
	"strings"

	"github.com/HendryAvila/quietscan/internal/catalog"
)

// Bundle is one role's answers: pillar -> question id -> answer.
type Bundle map[catalog.PillarKey]map[string]catalog.Answer

// Get returns the answer recorded for (pillar, id).
func (b Bundle) Get(pillar catalog.PillarKey, id string) (catalog.Answer, bool) {
	a, ok := b[pillar][id]
	return a, ok
}

// Count returns the number of answers recorded in pillar.
func (b Bundle) Count(pillar catalog.PillarKey) int {
	return len(b[pillar])
}

// Clone deep-copies the bundle.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for k, qs := range b {
		cp := make(map[string]catalog.Answer, len(qs))
		for id, a := range qs {
			cp[id] = a
		}
		out[k] = cp
	}
	return out
}

// Fingerprint returns a canonical string for the answers in the listed
// pillars. Equal fingerprints mean equal scoring inputs.
func (b Bundle) Fingerprint(pillars []catalog.PillarKey) string {
	var sb strings.Builder
	for _, p := range pillars {
		sb.WriteString(string(p))
		sb.WriteByte('{')
		qs := b[p]
		ids := make([]string, 0, len(qs))
		for id := range qs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			sb.WriteString(id)
			sb.WriteByte('=')
			sb.WriteString(string(qs[id]))
			sb.WriteByte(';')
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

// Ledger holds the answers of every role.
//
// A Ledger value is not safe for concurrent mutation; the flow package
// treats it as a value and clones before writing.
type Ledger struct {
	answers map[Role]Bundle
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{answers: make(map[Role]Bundle)}
}

// Set upserts the answer for (role, pillar, id). Re-answering replaces the
// previous entry.
func (l *Ledger) Set(role Role, pillar catalog.PillarKey, id string, a catalog.Answer) {
	if l.answers == nil {
		l.answers = make(map[Role]Bundle)
	}
	b := l.answers[role]
	if b == nil {
		b = make(Bundle)
		l.answers[role] = b
	}
	qs := b[pillar]
	if qs == nil {
		qs = make(map[string]catalog.Answer)
		b[pillar] = qs
	}
	qs[id] = a
}

// Get returns the answer for (role, pillar, id) and whether one exists.
func (l *Ledger) Get(role Role, pillar catalog.PillarKey, id string) (catalog.Answer, bool) {
	if l == nil {
		return "", false
	}
	return l.answers[role].Get(pillar, id)
}

// ClearPillar removes every entry for (role, pillar).
func (l *Ledger) ClearPillar(role Role, pillar catalog.PillarKey) {
	if l == nil {
		return
	}
	if b := l.answers[role]; b != nil {
		delete(b, pillar)
	}
}

// Bundle returns a copy of the role's answers. The copy is never nil.
func (l *Ledger) Bundle(role Role) Bundle {
	if l == nil {
		return Bundle{}
	}
	return l.answers[role].Clone()
}

// HasAnswers reports whether role has at least one answer in any of the
// given pillars.
func (l *Ledger) HasAnswers(role Role, pillars []catalog.PillarKey) bool {
	if l == nil {
		return false
	}
	b := l.answers[role]
	for _, p := range pillars {
		if len(b[p]) > 0 {
			return true
		}
	}
	return false
}

// Count returns the number of answers role has in pillar.
func (l *Ledger) Count(role Role, pillar catalog.PillarKey) int {
	if l == nil {
		return 0
	}
	return l.answers[role].Count(pillar)
}

// Clone deep-copies the ledger.
func (l *Ledger) Clone() *Ledger {
	out := New()
	if l == nil {
		return out
	}
	for r, b := range l.answers {
		out.answers[r] = b.Clone()
	}
	return out
}

// Snapshot returns a copy of all bundles keyed by role, for serialization.
func (l *Ledger) Snapshot() map[Role]Bundle {
	out := make(map[Role]Bundle)
	if l == nil {
		return out
	}
	for r, b := range l.answers {
		if len(b) > 0 {
			out[r] = b.Clone()
		}
	}
	return out
}
