package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Default catalog ---

func TestDefault_HasFivePillarsInCanonicalOrder(t *testing.T) {
	c := Default()

	ordered := c.Ordered()
	if len(ordered) != PillarCount {
		t.Fatalf("Ordered() returned %d pillars, want %d", len(ordered), PillarCount)
	}
	for i, p := range ordered {
		if p.Key != PillarOrder[i] {
			t.Errorf("pillar %d = %q, want %q", i, p.Key, PillarOrder[i])
		}
		if len(p.Questions) != 5 {
			t.Errorf("pillar %q has %d questions, want 5", p.Key, len(p.Questions))
		}
	}
}

func TestDefault_TenIndicators(t *testing.T) {
	c := Default()
	if len(c.Indicators) != 10 {
		t.Fatalf("indicators = %d, want 10", len(c.Indicators))
	}
	if c.Indicators[0].Name != "Retention" {
		t.Errorf("first indicator = %q, want Retention", c.Indicators[0].Name)
	}
	last := c.Indicators[len(c.Indicators)-1]
	if strings.Join(last.Questions, ",") != "S5,G5" {
		t.Errorf("Desire to Stay refs = %v, want [S5 G5]", last.Questions)
	}
}

func TestDefault_OwnerLookup(t *testing.T) {
	c := Default()
	tests := []struct {
		id   string
		want PillarKey
	}{
		{"P1", PillarPresence},
		{"D4", PillarDigital},
		{"S2", PillarSpace},
		{"N5", PillarNarrative},
		{"G3", PillarSignature},
	}
	for _, tt := range tests {
		got, ok := c.Owner(tt.id)
		if !ok || got != tt.want {
			t.Errorf("Owner(%q) = %q, %v; want %q", tt.id, got, ok, tt.want)
		}
	}
	if _, ok := c.Owner("X9"); ok {
		t.Error("Owner(X9) should not resolve")
	}
}

func TestDefault_WeightsDefaultToOne(t *testing.T) {
	c := Default()
	for _, k := range PillarOrder {
		if w := c.Weight(k); w != 1 {
			t.Errorf("Weight(%q) = %v, want 1", k, w)
		}
	}
}

// --- Answer scale ---

func TestAnswerScores(t *testing.T) {
	tests := []struct {
		answer Answer
		want   float64
	}{
		{AnswerYes, 4},
		{AnswerMaybe, 2},
		{AnswerNo, 0},
	}
	for _, tt := range tests {
		got, ok := tt.answer.Score()
		if !ok || got != tt.want {
			t.Errorf("%s.Score() = %v, %v; want %v", tt.answer, got, ok, tt.want)
		}
	}
}

func TestAnswerScore_UnknownHasNoScore(t *testing.T) {
	if _, ok := Answer("sometimes").Score(); ok {
		t.Error("unknown answer should not have a score")
	}
}

func TestParseAnswer(t *testing.T) {
	for _, in := range []string{"yes", " YES ", "Maybe", "no"} {
		if _, err := ParseAnswer(in); err != nil {
			t.Errorf("ParseAnswer(%q) error: %v", in, err)
		}
	}
	if _, err := ParseAnswer("perhaps"); err == nil {
		t.Error("ParseAnswer(perhaps) should fail")
	}
}

func TestAnswerLabel(t *testing.T) {
	if AnswerMaybe.Label() != "Not sure" {
		t.Errorf("maybe label = %q", AnswerMaybe.Label())
	}
	if AnswerNo.Label() != "Not really" {
		t.Errorf("no label = %q", AnswerNo.Label())
	}
}

// --- Validation ---

const minimalPillars = `
pillars:
  - {key: presence, name: P, tag: P, questions: [{id: P1, you: a, client: b}]}
  - {key: digital, name: D, tag: D, questions: [{id: D1, you: a, client: b}]}
  - {key: space, name: S, tag: S, questions: [{id: S1, you: a, client: b}]}
  - {key: narrative, name: N, tag: N, questions: [{id: N1, you: a, client: b}]}
  - {key: signature, name: G, tag: G, questions: [{id: G1, you: a, client: b}]}
`

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte(minimalPillars + "indicators:\n  - {name: X, questions: [P1, G1]}\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Pillar(PillarSpace) == nil {
		t.Error("space pillar missing")
	}
}

func TestParse_RejectsDuplicateQuestionIDs(t *testing.T) {
	data := strings.Replace(minimalPillars, "id: D1", "id: P1", 1)
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("duplicate ids should be rejected")
	}
	if !strings.Contains(err.Error(), `question id "P1"`) {
		t.Errorf("error should name the duplicate id, got: %v", err)
	}
}

func TestParse_RejectsUnknownIndicatorRef(t *testing.T) {
	_, err := Parse([]byte(minimalPillars + "indicators:\n  - {name: X, questions: [Z9]}\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown question") {
		t.Fatalf("expected unknown question error, got: %v", err)
	}
}

func TestParse_RejectsTooManyIndicatorRefs(t *testing.T) {
	_, err := Parse([]byte(minimalPillars + "indicators:\n  - {name: X, questions: [P1, D1, S1, N1]}\n"))
	if err == nil || !strings.Contains(err.Error(), "1 to 3") {
		t.Fatalf("expected reference count error, got: %v", err)
	}
}

func TestParse_RejectsUnknownPillar(t *testing.T) {
	data := strings.Replace(minimalPillars, "key: space", "key: sound", 1)
	if _, err := Parse([]byte(data)); err == nil {
		t.Fatal("unknown pillar key should be rejected")
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(minimalPillars + "colour: blue\n")); err == nil {
		t.Fatal("unknown top-level field should be rejected")
	}
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if len(c.Pillars) != PillarCount {
		t.Errorf("pillars = %d", len(c.Pillars))
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalPillars), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(c.Indicators) != 0 {
		t.Errorf("indicators = %d, want 0", len(c.Indicators))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing file should fail")
	}
}

// --- Perspective helpers ---

func TestQuestionText(t *testing.T) {
	q := Default().Pillar(PillarPresence).Questions[0]
	if !strings.HasPrefix(q.Text(false), "Do people") {
		t.Errorf("owner phrasing = %q", q.Text(false))
	}
	if !strings.HasPrefix(q.Text(true), "Do you") {
		t.Errorf("client phrasing = %q", q.Text(true))
	}
}
