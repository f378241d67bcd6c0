package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the validated, read-only scan content.
type Catalog struct {
	Pillars    []Pillar    `yaml:"pillars" json:"pillars"`
	Indicators []Indicator `yaml:"indicators" json:"indicators"`
	Sources    []Source    `yaml:"sources" json:"sources,omitempty"`

	byKey   map[PillarKey]*Pillar
	owner   map[string]PillarKey
	ordered [PillarCount]*Pillar
}

// Default returns the embedded catalog. The embedded file is part of the
// binary, so a failure here is a build defect and panics.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads and validates a catalog file. An empty path returns the
// embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML catalog content and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range c.Pillars {
		if c.Pillars[i].Weight == 0 {
			c.Pillars[i].Weight = 1
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Validate checks the structural assumptions the rest of the system
// relies on. Indicator resolution takes the first active pillar that owns
// a question id, which is only well defined while ids are globally unique.
func (c *Catalog) Validate() error {
	var errs []error

	if len(c.Pillars) != PillarCount {
		errs = append(errs, fmt.Errorf("expected %d pillars, got %d", PillarCount, len(c.Pillars)))
	}

	seenPillar := make(map[PillarKey]bool)
	seenQuestion := make(map[string]PillarKey)
	for _, p := range c.Pillars {
		if err := ValidatePillar(p.Key); err != nil {
			errs = append(errs, err)
			continue
		}
		if seenPillar[p.Key] {
			errs = append(errs, fmt.Errorf("duplicate pillar %q", p.Key))
		}
		seenPillar[p.Key] = true

		if p.Weight < 0 {
			errs = append(errs, fmt.Errorf("pillar %q: weight must be positive, got %v", p.Key, p.Weight))
		}
		if len(p.Questions) == 0 {
			errs = append(errs, fmt.Errorf("pillar %q has no questions", p.Key))
		}
		for _, q := range p.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("pillar %q: question with empty id", p.Key))
				continue
			}
			if other, dup := seenQuestion[q.ID]; dup {
				errs = append(errs, fmt.Errorf("question id %q is defined in both %q and %q", q.ID, other, p.Key))
				continue
			}
			seenQuestion[q.ID] = p.Key
		}
	}

	for _, ind := range c.Indicators {
		if ind.Name == "" {
			errs = append(errs, errors.New("indicator with empty name"))
		}
		if len(ind.Questions) == 0 || len(ind.Questions) > MaxIndicatorRefs {
			errs = append(errs, fmt.Errorf("indicator %q: needs 1 to %d question references, got %d",
				ind.Name, MaxIndicatorRefs, len(ind.Questions)))
		}
		for _, id := range ind.Questions {
			if _, ok := seenQuestion[id]; !ok {
				errs = append(errs, fmt.Errorf("indicator %q references unknown question %q", ind.Name, id))
			}
		}
	}

	return errors.Join(errs...)
}

func (c *Catalog) index() {
	c.byKey = make(map[PillarKey]*Pillar, len(c.Pillars))
	c.owner = make(map[string]PillarKey)
	for i := range c.Pillars {
		p := &c.Pillars[i]
		c.byKey[p.Key] = p
		c.ordered[PillarIndex(p.Key)] = p
		for _, q := range p.Questions {
			c.owner[q.ID] = p.Key
		}
	}
}

// Pillar returns the pillar for key, or nil if unknown.
func (c *Catalog) Pillar(key PillarKey) *Pillar {
	return c.byKey[key]
}

// Ordered returns the pillars in canonical order.
func (c *Catalog) Ordered() []*Pillar {
	out := make([]*Pillar, 0, PillarCount)
	for _, p := range c.ordered {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Owner returns the pillar that defines question id.
func (c *Catalog) Owner(id string) (PillarKey, bool) {
	k, ok := c.owner[id]
	return k, ok
}

// Weight returns the scoring weight of a pillar, defaulting to 1.
func (c *Catalog) Weight(key PillarKey) float64 {
	if p := c.byKey[key]; p != nil && p.Weight > 0 {
		return p.Weight
	}
	return 1
}
