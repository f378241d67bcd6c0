// Package catalog holds the static content of the Quiet Presence scan:
// the five pillars, their questions, the answer scale and the Global
// Brand Health indicators (GHI) derived from question subsets.
//
// The catalog is data, not behavior. It is loaded once from YAML
// (embedded by default), validated, and then shared read-only by the
// flow controller, the scoring engine and the MCP tools.
package catalog

import (
	"fmt"
	"strings"
)

// --- Pillar keys ---

// PillarKey identifies one of the five fixed pillars.
type PillarKey string

const (
	PillarPresence  PillarKey = "presence"
	PillarDigital   PillarKey = "digital"
	PillarSpace     PillarKey = "space"
	PillarNarrative PillarKey = "narrative"
	PillarSignature PillarKey = "signature"
)

// PillarCount is the number of canonical pillar slots.
const PillarCount = 5

// PillarOrder is the canonical pillar order. Selection, navigation,
// display and scoring all iterate pillars in this order, never in the
// order a user happened to pick them.
var PillarOrder = [PillarCount]PillarKey{
	PillarPresence,
	PillarDigital,
	PillarSpace,
	PillarNarrative,
	PillarSignature,
}

// PillarIndex returns the canonical slot of key, or -1 if unknown.
func PillarIndex(key PillarKey) int {
	for i, k := range PillarOrder {
		if k == key {
			return i
		}
	}
	return -1
}

// ValidatePillar returns an error if key is not a canonical pillar.
func ValidatePillar(key PillarKey) error {
	if PillarIndex(key) < 0 {
		return fmt.Errorf("invalid pillar %q: must be one of: %s", key, strings.Join(PillarKeyValues(), ", "))
	}
	return nil
}

// PillarKeyValues returns the pillar keys as strings for MCP enums.
func PillarKeyValues() []string {
	out := make([]string, 0, PillarCount)
	for _, k := range PillarOrder {
		out = append(out, string(k))
	}
	return out
}

// --- Answer scale ---

// Answer is one of the three categorical answers.
type Answer string

const (
	AnswerYes   Answer = "yes"
	AnswerMaybe Answer = "maybe"
	AnswerNo    Answer = "no"
)

// answerScores maps each answer to its fixed numeric score.
var answerScores = map[Answer]float64{
	AnswerYes:   4,
	AnswerMaybe: 2,
	AnswerNo:    0,
}

// answerLabels are the labels shown to respondents.
var answerLabels = map[Answer]string{
	AnswerYes:   "Yes",
	AnswerMaybe: "Not sure",
	AnswerNo:    "Not really",
}

// MaxScore is the top of the score scale.
const MaxScore = 4.0

// ParseAnswer normalizes s into an Answer.
func ParseAnswer(s string) (Answer, error) {
	a := Answer(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := answerScores[a]; !ok {
		return "", fmt.Errorf("invalid answer %q: must be one of: yes, maybe, no", s)
	}
	return a, nil
}

// Score returns the numeric score of a and whether a is a known answer.
// Unknown answers have no score; they never default to zero.
func (a Answer) Score() (float64, bool) {
	s, ok := answerScores[a]
	return s, ok
}

// Label returns the respondent-facing label for a.
func (a Answer) Label() string {
	if l, ok := answerLabels[a]; ok {
		return l
	}
	return string(a)
}

// AnswerValues returns the answers as strings for MCP enums.
func AnswerValues() []string {
	return []string{string(AnswerYes), string(AnswerMaybe), string(AnswerNo)}
}

// --- Content types ---

// Question is a single yes/maybe/no question with two phrasings.
type Question struct {
	ID     string `yaml:"id" json:"id"`
	You    string `yaml:"you" json:"you"`
	Client string `yaml:"client" json:"client"`
}

// Text returns the phrasing for the given perspective ("you" or "client").
func (q Question) Text(clientPerspective bool) string {
	if clientPerspective {
		return q.Client
	}
	return q.You
}

// Pillar is an immutable pillar definition.
type Pillar struct {
	Key         PillarKey  `yaml:"key" json:"key"`
	Name        string     `yaml:"name" json:"name"`
	Tag         string     `yaml:"tag" json:"tag"`
	Tagline     string     `yaml:"tagline" json:"tagline"`
	IntroOwner  string     `yaml:"intro_owner" json:"intro_owner"`
	IntroClient string     `yaml:"intro_client" json:"intro_client"`
	Weight      float64    `yaml:"weight" json:"weight"`
	Questions   []Question `yaml:"questions" json:"questions"`
}

// Intro returns the framing text for the given perspective.
func (p *Pillar) Intro(clientPerspective bool) string {
	if clientPerspective {
		return p.IntroClient
	}
	return p.IntroOwner
}

// QuestionIndex returns the position of id within the pillar, or -1.
func (p *Pillar) QuestionIndex(id string) int {
	for i, q := range p.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Source is a reference link attached to the indicator guide.
type Source struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Guide is the explanatory content shown for an indicator.
type Guide struct {
	Title       string   `yaml:"title" json:"title"`
	Explanation string   `yaml:"explanation" json:"explanation"`
	Consequence string   `yaml:"consequence" json:"consequence"`
	Sources     []Source `yaml:"sources" json:"sources,omitempty"`
}

// Indicator is a GHI metric computed from up to three question ids.
type Indicator struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Questions   []string `yaml:"questions" json:"questions"`
	Guide       Guide    `yaml:"guide" json:"guide"`
}

// MaxIndicatorRefs caps the question references of one indicator.
const MaxIndicatorRefs = 3
