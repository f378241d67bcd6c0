// Package ledger stores the categorical answers of every respondent.
//
// A respondent is identified by a Role slot. Roles are filled in a fixed
// progression (owner, then up to three clients) and the ledger keeps, per
// role, a map from pillar to question id to Answer. Absence of an entry
// means "unanswered" and is never confused with a score.
package ledger

import "fmt"

// Role is a respondent slot.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleClient1 Role = "client1"
	RoleClient2 Role = "client2"
	RoleClient3 Role = "client3"
)

// Roles lists every role in progression order.
var Roles = []Role{RoleOwner, RoleClient1, RoleClient2, RoleClient3}

// ClientRoles lists the client roles in progression order.
var ClientRoles = []Role{RoleClient1, RoleClient2, RoleClient3}

// MaxRoles caps the length of a role sequence.
const MaxRoles = 4

var nextRole = map[Role]Role{
	RoleOwner:   RoleClient1,
	RoleClient1: RoleClient2,
	RoleClient2: RoleClient3,
}

var roleLabels = map[Role]string{
	RoleOwner:   "You – brand / business owner",
	RoleClient1: "Client 1",
	RoleClient2: "Client 2",
	RoleClient3: "Client 3",
}

// ValidateRole returns an error if r is not a known role.
func ValidateRole(r Role) error {
	if _, ok := roleLabels[r]; !ok {
		return fmt.Errorf("invalid role %q: must be one of: owner, client1, client2, client3", r)
	}
	return nil
}

// Next returns the role that follows r in the progression.
// The second result is false after client3.
func Next(r Role) (Role, bool) {
	n, ok := nextRole[r]
	return n, ok
}

// Label returns the display label for r.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// IsClient reports whether r is one of the client slots.
func (r Role) IsClient() bool {
	return r == RoleClient1 || r == RoleClient2 || r == RoleClient3
}

// Perspective selects question phrasing for a role.
type Perspective string

const (
	PerspectiveYou    Perspective = "you"
	PerspectiveClient Perspective = "client"
)

// Perspective returns "client" for the client slots and "you" otherwise.
func (r Role) Perspective() Perspective {
	if r.IsClient() {
		return PerspectiveClient
	}
	return PerspectiveYou
}

// rank is the position of r in the progression, or -1.
func (r Role) rank() int {
	for i, x := range Roles {
		if x == r {
			return i
		}
	}
	return -1
}

// Sequence is the append-only record of roles activated in a session.
type Sequence []Role

// Contains reports whether r has been activated.
func (s Sequence) Contains(r Role) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// Append returns s with r added, unless r is already present. It refuses
// roles that would break progression order or exceed MaxRoles.
func (s Sequence) Append(r Role) (Sequence, error) {
	if err := ValidateRole(r); err != nil {
		return s, err
	}
	if s.Contains(r) {
		return s, nil
	}
	if len(s) >= MaxRoles {
		return s, fmt.Errorf("role sequence is full (%d roles)", MaxRoles)
	}
	if len(s) > 0 && r.rank() <= s[len(s)-1].rank() {
		return s, fmt.Errorf("role %q cannot follow %q", r, s[len(s)-1])
	}
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, r), nil
}
