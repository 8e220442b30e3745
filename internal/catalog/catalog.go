// Package catalog holds the read-only career records careers are ranked from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/skills"
)

//go:embed careers.yaml
var careersYAML []byte

// CareerRecord describes one career and what a good fit for it looks like.
// TraitFit is the ideal trait profile on the 1-5 scale. Intersections names
// the ikigai intersections most relevant to the career, and the four quadrant
// lists hold the items a well-matched user tends to rate highly.
type CareerRecord struct {
	Name          string         `yaml:"name" json:"name" validate:"required"`
	Skills        []string       `yaml:"skills" json:"skills" validate:"required,min=1,dive,required"`
	GrowthRate    string         `yaml:"growth_rate" json:"growth_rate" validate:"required"`
	SalaryRange   string         `yaml:"salary_range" json:"salary_range" validate:"required"`
	Description   string         `yaml:"description" json:"description" validate:"required"`
	TraitFit      map[string]int `yaml:"trait_fit" json:"trait_fit" validate:"required,dive,keys,oneof=openness conscientiousness extraversion agreeableness neuroticism,endkeys,min=1,max=5"`
	Intersections []string       `yaml:"intersections" json:"intersections" validate:"dive,oneof=Passion Mission Profession Vocation"`
	Love          []string       `yaml:"love" json:"love,omitempty"`
	GoodAt        []string       `yaml:"good_at" json:"good_at,omitempty"`
	WorldNeeds    []string       `yaml:"world_needs" json:"world_needs,omitempty"`
	PaidFor       []string       `yaml:"paid_for" json:"paid_for,omitempty"`
}

// Tags returns the career's items for a quadrant.
func (r CareerRecord) Tags(q ikigai.Quadrant) []string {
	switch q {
	case ikigai.Love:
		return r.Love
	case ikigai.GoodAt:
		return r.GoodAt
	case ikigai.WorldNeeds:
		return r.WorldNeeds
	case ikigai.PaidFor:
		return r.PaidFor
	default:
		return nil
	}
}

// Catalog is an ordered, immutable set of careers. Order breaks ranking ties.
type Catalog struct {
	careers []CareerRecord
	byName  map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(careersYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in career catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates a YAML list of careers.
func Parse(data []byte) (*Catalog, error) {
	var records []CareerRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode careers: %w", err)
	}

	return New(records)
}

// New validates the records and builds a catalog. Skill names must already be
// in normalized form.
func New(records []CareerRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, errors.New("career catalog is empty")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	byName := make(map[string]int, len(records))
	copied := make([]CareerRecord, len(records))

	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("career %q: %w", record.Name, err)
		}
		if _, ok := byName[record.Name]; ok {
			return nil, fmt.Errorf("duplicate career %q", record.Name)
		}
		for _, skill := range record.Skills {
			if skills.Normalize(skill) != skill {
				return nil, fmt.Errorf("career %q: skill %q is not normalized", record.Name, skill)
			}
		}
		byName[record.Name] = i
		copied[i] = record
	}

	return &Catalog{careers: copied, byName: byName}, nil
}

// Careers returns the records in catalog order.
func (c *Catalog) Careers() []CareerRecord {
	out := make([]CareerRecord, len(c.careers))
	copy(out, c.careers)
	return out
}

func (c *Catalog) Len() int {
	return len(c.careers)
}

// Find returns the career with the given name.
func (c *Catalog) Find(name string) (CareerRecord, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return CareerRecord{}, false
	}
	return c.careers[idx], true
}
