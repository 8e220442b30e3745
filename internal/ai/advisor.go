// Package ai describes the optional coaching capability that turns a finished
// assessment into a short narrative insight.
package ai

import "context"

// CareerSummary is the slice of a recommendation the coach sees.
type CareerSummary struct {
	Name            string   `json:"name"`
	MatchPercentage int      `json:"match_percentage"`
	Skills          []string `json:"skills"`
	Highlights      []string `json:"highlights,omitempty"`
}

// Summary is the anonymized assessment outcome sent to an advisor.
type Summary struct {
	Flow             string             `json:"flow"`
	Traits           map[string]float64 `json:"traits,omitempty"`
	Strengths        []string           `json:"strengths,omitempty"`
	DevelopmentAreas []string           `json:"development_areas,omitempty"`
	Intersections    map[string]float64 `json:"intersections"`
	Careers          []CareerSummary    `json:"careers"`
	// Focus is free text from the user. It is advisory only.
	Focus string `json:"-"`
}

// Insight is the advisor's answer.
type Insight struct {
	Headline  string   `json:"headline" validate:"required"`
	Strengths []string `json:"strengths,omitempty"`
	Risks     []string `json:"risks,omitempty"`
	NextSteps []string `json:"next_steps,omitempty"`
	Raw       string   `json:"raw,omitempty"`
}

type Advisor interface {
	Advise(ctx context.Context, summary Summary) (*Insight, error)
}
