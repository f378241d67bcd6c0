// Package render turns flow screens and summary views into markdown for
// MCP hosts and the CLI. It formats; it never computes scores.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/flow"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/summary"
)

// Dash stands in for any value that has no data.
const Dash = "—"

// FmtScore renders a score on the 0..4 scale.
func FmtScore(v *float64) string {
	if v == nil {
		return Dash
	}
	return fmt.Sprintf("%.2f / 4", *v)
}

// FmtGap renders an absolute gap.
func FmtGap(v *float64) string {
	if v == nil {
		return Dash
	}
	return fmt.Sprintf("%.2f", *v)
}

// State renders the screen for st. Summary mode gets the current stage
// heading only; use Stage for its content.
func State(cat *catalog.Catalog, st flow.State) string {
	sc := flow.Describe(cat, st)
	switch sc.Kind {
	case flow.ScreenIntro:
		return intro()
	case flow.ScreenRules:
		return rules()
	case flow.ScreenSetup:
		return setup(cat, st.Selection)
	case flow.ScreenPillarIntro:
		return pillarIntro(sc)
	case flow.ScreenQuestion:
		return question(sc)
	case flow.ScreenRolePrompt:
		return rolePrompt(st, sc)
	case flow.ScreenSummary:
		return fmt.Sprintf("# Summary\n\n**Stage:** %s\n", stageTitle(*sc.Summary, st.Active()))
	}
	return ""
}

func intro() string {
	return "# Quiet Presence Scan\n\n" +
		"We'll guide you through simple cards, one question at a time.\n\n" +
		"Next: read the rules, then set up the scan.\n"
}

func rules() string {
	return "# How to answer\n\n" +
		"QPS works best when you:\n\n" +
		"- Go with your first impression, no overthinking.\n" +
		"- Answer from what actually happens, not from wishes or plans.\n" +
		"- Use \"Not sure\" when your feeling is mixed or inconsistent.\n"
}

func setup(cat *catalog.Catalog, sel flow.Selection) string {
	var b strings.Builder
	b.WriteString("# Set up your scan\n\n")

	who := "not chosen (defaults to you, the brand owner)"
	switch sel.Who {
	case flow.WhoMyBrand:
		who = "You, business / brand owner. You answer first, then you can invite clients."
	case flow.WhoClient:
		who = "Client / guest / visitor only. One person shares their view, no comparison."
	}
	scope := "not chosen"
	switch sel.Scope {
	case flow.ScopeFull:
		scope = "Full scan, all five pillars"
	case flow.ScopeCustom:
		scope = "Custom, selected pillars only"
	}
	fmt.Fprintf(&b, "**1 · Who is answering now?** %s\n\n", who)
	fmt.Fprintf(&b, "**2 · Full or custom?** %s\n\n", scope)

	b.WriteString("## Pillars included\n\n")
	for _, p := range cat.Ordered() {
		mark := "[ ]"
		if sel.Has(p.Key) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "- %s **%s** (`%s`) %s\n", mark, p.Name, p.Key, p.Tagline)
	}
	return b.String()
}

func header(sc flow.Screen) string {
	return fmt.Sprintf("**%s** · Pillar %d of %d · %s", sc.Role.Label(), sc.PillarPos, sc.PillarCount, sc.Pillar.Name)
}

func pillarIntro(sc flow.Screen) string {
	client := sc.Perspective == ledger.PerspectiveClient
	return fmt.Sprintf("# %s\n\n%s\n\n_%s_\n\n%s\n\n%d questions. Begin when ready.\n",
		sc.Pillar.Name, header(sc), sc.Pillar.Tag, sc.Pillar.Intro(client), len(sc.Pillar.Questions))
}

func question(sc flow.Screen) string {
	client := sc.Perspective == ledger.PerspectiveClient
	var b strings.Builder
	fmt.Fprintf(&b, "%s · Question %d of %d\n\n", header(sc), sc.QuestionPos, len(sc.Pillar.Questions))
	fmt.Fprintf(&b, "## %s\n\n", sc.Question.Text(client))
	fmt.Fprintf(&b, "Question id: `%s`\n\n", sc.Question.ID)
	for _, a := range []catalog.Answer{catalog.AnswerYes, catalog.AnswerMaybe, catalog.AnswerNo} {
		mark := " "
		if sc.Recorded == a {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (`%s`)\n", mark, a.Label(), a)
	}
	return b.String()
}

func rolePrompt(st flow.State, sc flow.Screen) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s complete\n\n", sc.Role.Label())
	switch {
	case sc.NextRole == "":
		b.WriteString("You've reached the limit of three clients.\n")
	case st.Role == ledger.RoleOwner:
		b.WriteString("Would you like a client, guest or visitor to rate the same pillars now?\n")
	default:
		b.WriteString("Would you like to add another person?\n")
	}
	if sc.NextRole != "" {
		fmt.Fprintf(&b, "\nAdd **%s**, or finish and open the summary.\n", sc.NextRole.Label())
	}
	return b.String()
}

// Stage renders the summary stage under c.
func Stage(in summary.Input, c summary.Cursor) (string, error) {
	if len(in.Active) == 0 {
		return "# No pillars selected\n\nPlease run the scan again with at least one pillar.\n", nil
	}
	switch c.Stage {
	case summary.StagePillar:
		v, err := summary.PillarComparison(in, c.PillarIndex)
		if err != nil {
			return "", err
		}
		return Pillar(v), nil
	case summary.StagePillarGHI:
		v, err := summary.PillarIndicators(in, c.PillarIndex)
		if err != nil {
			return "", err
		}
		return PillarIndicators(v), nil
	case summary.StageOverall:
		return Overall(summary.Overall(in)), nil
	case summary.StageOverallGHI:
		return OverallIndicators(summary.OverallIndicators(in)), nil
	case summary.StageFinal:
		return Final(summary.Export(in))
	}
	return "", summary.ValidateStage(c.Stage)
}

func stageTitle(c summary.Cursor, active []catalog.PillarKey) string {
	if c.Stage.IsPillarStage() && c.PillarIndex >= 0 && c.PillarIndex < len(active) {
		return fmt.Sprintf("%s (%s, %d of %d)", c.Stage, active[c.PillarIndex], c.PillarIndex+1, len(active))
	}
	return string(c.Stage)
}

// Pillar renders the per-pillar comparison.
func Pillar(v *summary.PillarView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pillar comparison · %s (%d of %d)\n\n", v.Pillar.Name, v.Position, v.Of)
	b.WriteString("| Respondent | Score |\n|---|---|\n")
	for _, r := range v.Rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Label, FmtScore(r.Score))
	}
	fmt.Fprintf(&b, "| Average of clients | %s |\n\n", FmtScore(v.Clients))
	fmt.Fprintf(&b, "**Gap (Owner vs. client avg.):** %s\n\n", FmtGap(v.Gap))
	fmt.Fprintf(&b, "**Reading this card:** %s\n", v.Reading)
	return b.String()
}

// PillarIndicators renders the pillar to indicator screen.
func PillarIndicators(v *summary.PillarIndicatorsView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pillar → Global Brand Health · %s\n\n", v.Pillar.Name)
	if !v.Available {
		b.WriteString("This view needs answers from you and at least one client.\n")
		return b.String()
	}
	writeIndicatorTable(&b, v.Lines)
	return b.String()
}

// Overall renders the all-pillar comparison.
func Overall(v *summary.OverallView) string {
	var b strings.Builder
	b.WriteString("# Overall comparison\n\nAll pillars · Owner vs. average of clients\n\n")
	b.WriteString("| Pillar | Owner | Clients avg. | Gap |\n|---|---|---|---|\n")
	for _, r := range v.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Name, FmtScore(r.Owner), FmtScore(r.Clients), FmtGap(r.Gap))
	}
	fmt.Fprintf(&b, "\n**Global Quiet Presence Score · Owner:** %s\n", FmtScore(v.Global.Owner))
	fmt.Fprintf(&b, "**Global Quiet Presence Score · Clients avg.:** %s\n", FmtScore(v.Global.Clients))
	fmt.Fprintf(&b, "**Global gap (Owner vs. clients avg.):** %s\n\n", FmtGap(v.Global.Gap))
	fmt.Fprintf(&b, "**Reading this card:** %s\n", v.Global.Reading)
	return b.String()
}

// OverallIndicators renders the overall indicator screen.
func OverallIndicators(v *summary.OverallIndicatorsView) string {
	var b strings.Builder
	b.WriteString("# Overall · Global Brand Health\n\nHow your quiet presence shows up in business language\n\n")
	if !v.Available {
		b.WriteString("This view needs answers from you and at least one client.\n")
		return b.String()
	}
	writeIndicatorTable(&b, v.Lines)
	return b.String()
}

func writeIndicatorTable(b *strings.Builder, lines []summary.IndicatorLine) {
	b.WriteString("| Indicator | Owner | Clients avg. | Gap | Reading |\n|---|---|---|---|---|\n")
	for _, l := range lines {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			l.Name, FmtScore(l.Owner), FmtScore(l.Clients), FmtGap(l.Gap), l.Reading)
	}
}

// Final renders the completed screen with the export payload.
func Final(p *summary.Payload) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: encode payload: %w", err)
	}
	return "# Completed\n\nQuiet Presence Score · data package\n\n" +
		"This JSON object can be passed to a reporting or PDF layer.\n\n" +
		"```json\n" + string(data) + "\n```\n", nil
}
