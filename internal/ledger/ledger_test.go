package ledger

import (
	"testing"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

func TestValidateRole(t *testing.T) {
	tests := []struct {
		name    string
		input   Role
		wantErr bool
	}{
		{"owner is valid", RoleOwner, false},
		{"client1 is valid", RoleClient1, false},
		{"client3 is valid", RoleClient3, false},
		{"empty is invalid", Role(""), true},
		{"client4 is invalid", Role("client4"), true},
		{"case sensitive", Role("Owner"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRole(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNext_Progression(t *testing.T) {
	tests := []struct {
		from   Role
		want   Role
		wantOK bool
	}{
		{RoleOwner, RoleClient1, true},
		{RoleClient1, RoleClient2, true},
		{RoleClient2, RoleClient3, true},
		{RoleClient3, "", false},
	}
	for _, tt := range tests {
		got, ok := Next(tt.from)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Next(%q) = %q, %v; want %q, %v", tt.from, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPerspective(t *testing.T) {
	if RoleOwner.Perspective() != PerspectiveYou {
		t.Errorf("owner perspective = %q, want you", RoleOwner.Perspective())
	}
	for _, r := range ClientRoles {
		if r.Perspective() != PerspectiveClient {
			t.Errorf("%s perspective = %q, want client", r, r.Perspective())
		}
	}
}

func TestIsClient(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleOwner, false},
		{RoleClient1, true},
		{RoleClient2, true},
		{RoleClient3, true},
		{Role("client4"), false},
	}
	for _, tt := range tests {
		if got := tt.role.IsClient(); got != tt.want {
			t.Errorf("%q.IsClient() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := RoleClient2.Label(); got != "Client 2" {
		t.Errorf("client2 label = %q", got)
	}
	if got := RoleOwner.Label(); got != "You – brand / business owner" {
		t.Errorf("owner label = %q", got)
	}
}

// --- Sequence ---

func TestSequence_AppendInOrder(t *testing.T) {
	var s Sequence
	var err error
	for _, r := range Roles {
		s, err = s.Append(r)
		if err != nil {
			t.Fatalf("Append(%q) error: %v", r, err)
		}
	}
	if diff := cmp.Diff(Sequence(Roles), s); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestSequence_AppendIsIdempotent(t *testing.T) {
	s := Sequence{RoleOwner, RoleClient1}
	got, err := s.Append(RoleClient1)
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestSequence_RejectsOutOfOrder(t *testing.T) {
	s := Sequence{RoleClient1}
	if _, err := s.Append(RoleOwner); err == nil {
		t.Error("owner after client1 should be rejected")
	}
	s = Sequence{RoleOwner}
	got, err := s.Append(RoleClient2)
	if err != nil {
		t.Fatalf("skipping ahead is still ordered, got error: %v", err)
	}
	if _, err := got.Append(RoleClient1); err == nil {
		t.Error("client1 after client2 should be rejected")
	}
}

func TestSequence_AppendDoesNotAlias(t *testing.T) {
	base := make(Sequence, 1, 4)
	base[0] = RoleOwner
	a, _ := base.Append(RoleClient1)
	b, _ := base.Append(RoleClient2)
	if a[1] != RoleClient1 || b[1] != RoleClient2 {
		t.Errorf("appends share storage: a=%v b=%v", a, b)
	}
}

// --- Ledger ---

func TestLedger_SetGetUpsert(t *testing.T) {
	l := New()
	if _, ok := l.Get(RoleOwner, catalog.PillarPresence, "P1"); ok {
		t.Fatal("empty ledger should report absence")
	}

	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)
	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerNo)

	got, ok := l.Get(RoleOwner, catalog.PillarPresence, "P1")
	if !ok || got != catalog.AnswerNo {
		t.Errorf("Get = %q, %v; want no, true", got, ok)
	}
	if n := l.Count(RoleOwner, catalog.PillarPresence); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestLedger_ClearPillar(t *testing.T) {
	l := New()
	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)
	l.Set(RoleOwner, catalog.PillarDigital, "D1", catalog.AnswerYes)
	l.Set(RoleClient1, catalog.PillarPresence, "P1", catalog.AnswerYes)

	l.ClearPillar(RoleOwner, catalog.PillarPresence)

	if l.Count(RoleOwner, catalog.PillarPresence) != 0 {
		t.Error("owner presence should be cleared")
	}
	if l.Count(RoleOwner, catalog.PillarDigital) != 1 {
		t.Error("owner digital should be untouched")
	}
	if l.Count(RoleClient1, catalog.PillarPresence) != 1 {
		t.Error("client1 presence should be untouched")
	}
}

func TestLedger_HasAnswers(t *testing.T) {
	l := New()
	l.Set(RoleClient1, catalog.PillarSpace, "S1", catalog.AnswerMaybe)

	if !l.HasAnswers(RoleClient1, []catalog.PillarKey{catalog.PillarPresence, catalog.PillarSpace}) {
		t.Error("client1 has an answer in space")
	}
	if l.HasAnswers(RoleClient1, []catalog.PillarKey{catalog.PillarPresence}) {
		t.Error("client1 has nothing in presence")
	}
	if l.HasAnswers(RoleClient2, catalog.PillarOrder[:]) {
		t.Error("client2 has nothing at all")
	}
}

func TestLedger_CloneIsDeep(t *testing.T) {
	l := New()
	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)

	c := l.Clone()
	c.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerNo)
	c.Set(RoleOwner, catalog.PillarPresence, "P2", catalog.AnswerNo)

	got, _ := l.Get(RoleOwner, catalog.PillarPresence, "P1")
	if got != catalog.AnswerYes {
		t.Errorf("original mutated through clone: P1 = %q", got)
	}
	if l.Count(RoleOwner, catalog.PillarPresence) != 1 {
		t.Error("original gained an entry through clone")
	}
}

func TestLedger_BundleIsCopy(t *testing.T) {
	l := New()
	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)

	b := l.Bundle(RoleOwner)
	b[catalog.PillarPresence]["P1"] = catalog.AnswerNo

	got, _ := l.Get(RoleOwner, catalog.PillarPresence, "P1")
	if got != catalog.AnswerYes {
		t.Error("Bundle() must not expose ledger storage")
	}
	if empty := l.Bundle(RoleClient3); empty == nil {
		t.Error("Bundle() of an absent role should be empty, not nil")
	}
}

func TestLedger_NilIsEmpty(t *testing.T) {
	var l *Ledger
	if l.HasAnswers(RoleOwner, catalog.PillarOrder[:]) {
		t.Error("nil ledger has no answers")
	}
	if l.Count(RoleOwner, catalog.PillarPresence) != 0 {
		t.Error("nil ledger count should be 0")
	}
	if l.Clone() == nil {
		t.Error("Clone of nil should be a fresh ledger")
	}
}

func TestBundle_FingerprintIsOrderIndependent(t *testing.T) {
	a := New()
	a.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)
	a.Set(RoleOwner, catalog.PillarPresence, "P2", catalog.AnswerNo)

	b := New()
	b.Set(RoleOwner, catalog.PillarPresence, "P2", catalog.AnswerNo)
	b.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)

	pillars := []catalog.PillarKey{catalog.PillarPresence}
	fa := a.Bundle(RoleOwner).Fingerprint(pillars)
	fb := b.Bundle(RoleOwner).Fingerprint(pillars)
	if fa != fb {
		t.Errorf("fingerprints differ: %q vs %q", fa, fb)
	}

	b.Set(RoleOwner, catalog.PillarPresence, "P2", catalog.AnswerMaybe)
	if fa == b.Bundle(RoleOwner).Fingerprint(pillars) {
		t.Error("different answers should change the fingerprint")
	}
}

func TestSnapshot_SkipsEmptyRoles(t *testing.T) {
	l := New()
	l.Set(RoleOwner, catalog.PillarPresence, "P1", catalog.AnswerYes)
	l.Set(RoleClient1, catalog.PillarPresence, "P1", catalog.AnswerYes)
	l.ClearPillar(RoleClient1, catalog.PillarPresence)

	snap := l.Snapshot()
	if _, ok := snap[RoleClient1]; ok {
		t.Error("client1 has no answers left and should be omitted")
	}
	if _, ok := snap[RoleOwner]; !ok {
		t.Error("owner should be present")
	}
}
