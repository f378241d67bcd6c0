package summary

import (
	"time"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/scoring"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// ExportMeta describes the session a payload came from.
type ExportMeta struct {
	InitialWho    string              `json:"initialWho"`
	Scope         string              `json:"scope"`
	Pillars       []catalog.PillarKey `json:"pillars"`
	RolesSequence []ledger.Role       `json:"rolesSequence"`
	Timestamp     string              `json:"timestamp"`
}

// ExportRoles holds one result per role with data. Absent roles are
// omitted from JSON.
type ExportRoles struct {
	Owner          *scoring.ScoresResult `json:"owner,omitempty"`
	Client1        *scoring.ScoresResult `json:"client1,omitempty"`
	Client2        *scoring.ScoresResult `json:"client2,omitempty"`
	Client3        *scoring.ScoresResult `json:"client3,omitempty"`
	ClientsAverage *scoring.ScoresResult `json:"clientsAverage,omitempty"`
}

// Payload is the final data package handed to report layers.
type Payload struct {
	Meta  ExportMeta  `json:"meta"`
	Roles ExportRoles `json:"roles"`
}

// Export builds the payload. A role is included only when it has at least
// one answer in an active pillar.
func Export(in Input) *Payload {
	p := &Payload{
		Meta: ExportMeta{
			InitialWho:    in.InitialWho,
			Scope:         in.Scope,
			Pillars:       append([]catalog.PillarKey{}, in.Active...),
			RolesSequence: append([]ledger.Role{}, in.Roles...),
			Timestamp:     timeNow().UTC().Format(time.RFC3339),
		},
	}
	p.Roles.Owner = in.owner()
	for _, c := range in.clients() {
		switch c.Role {
		case ledger.RoleClient1:
			p.Roles.Client1 = c.Scores
		case ledger.RoleClient2:
			p.Roles.Client2 = c.Scores
		case ledger.RoleClient3:
			p.Roles.Client3 = c.Scores
		}
	}
	p.Roles.ClientsAverage = in.average()
	return p
}

// Role returns the result stored for role, or nil.
func (r ExportRoles) Role(role ledger.Role) *scoring.ScoresResult {
	switch role {
	case ledger.RoleOwner:
		return r.Owner
	case ledger.RoleClient1:
		return r.Client1
	case ledger.RoleClient2:
		return r.Client2
	case ledger.RoleClient3:
		return r.Client3
	}
	return nil
}
