// Package assessment holds the personality questionnaire and turns the
// selected answers into a Big Five trait profile.
package assessment

import (
	"encoding/json"
	"fmt"
)

const (
	Openness          = "openness"
	Conscientiousness = "conscientiousness"
	Extraversion      = "extraversion"
	Agreeableness     = "agreeableness"
	Neuroticism       = "neuroticism"

	// NeutralScore is used for a trait no selected option contributed to.
	NeutralScore = 2.5

	MinScore = 1.0
	MaxScore = 5.0
)

// TraitNames is the fixed trait order used for profiles and reports.
var TraitNames = []string{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

// TraitInfo describes a Big Five trait for display.
type TraitInfo struct {
	Name            string
	Description     string
	HighDescription string
	LowDescription  string
}

var bigFive = map[string]TraitInfo{
	Openness: {
		Name:            "Openness to Experience",
		Description:     "Creativity, curiosity, and willingness to try new experiences",
		HighDescription: "Creative, curious, open to new ideas and experiences",
		LowDescription:  "Practical, conventional, prefers familiar approaches",
	},
	Conscientiousness: {
		Name:            "Conscientiousness",
		Description:     "Organization, discipline, and goal-directed behavior",
		HighDescription: "Organized, disciplined, reliable, and goal-oriented",
		LowDescription:  "Flexible, spontaneous, adaptable to changing situations",
	},
	Extraversion: {
		Name:            "Extraversion",
		Description:     "Energy from social interaction and external stimulation",
		HighDescription: "Outgoing, energetic, enjoys social interaction and leadership",
		LowDescription:  "Reserved, thoughtful, prefers deep work and smaller groups",
	},
	Agreeableness: {
		Name:            "Agreeableness",
		Description:     "Cooperation, empathy, and concern for others",
		HighDescription: "Cooperative, empathetic, values harmony and helping others",
		LowDescription:  "Direct, competitive, focused on results and efficiency",
	},
	Neuroticism: {
		Name:            "Emotional Stability",
		Description:     "Emotional resilience and stress management",
		HighDescription: "May experience stress under pressure, sensitive to criticism",
		LowDescription:  "Emotionally stable, calm under pressure, resilient",
	},
}

// Info returns the display information of a trait.
func Info(trait string) (TraitInfo, bool) {
	info, ok := bigFive[trait]
	return info, ok
}

// TraitProfile is the averaged score per trait. It is a value type and is
// never mutated once built.
type TraitProfile struct {
	scores map[string]float64
}

// NewProfile builds a profile from explicit scores. Missing traits get the
// neutral score and values are clamped to [1,5].
func NewProfile(scores map[string]float64) TraitProfile {
	out := make(map[string]float64, len(TraitNames))
	for _, trait := range TraitNames {
		score, ok := scores[trait]
		if !ok {
			score = NeutralScore
		}
		out[trait] = clamp(score)
	}
	return TraitProfile{scores: out}
}

// Aggregate averages the trait weights of the selected options. A trait that
// no option tagged gets NeutralScore.
func Aggregate(options []Option) TraitProfile {
	collected := make(map[string][]int, len(TraitNames))
	for _, trait := range TraitNames {
		collected[trait] = nil
	}

	for _, option := range options {
		for trait, weight := range option.Traits {
			if _, ok := collected[trait]; ok {
				collected[trait] = append(collected[trait], weight)
			}
		}
	}

	scores := make(map[string]float64, len(TraitNames))
	for trait, weights := range collected {
		if len(weights) == 0 {
			scores[trait] = NeutralScore
			continue
		}
		sum := 0
		for _, w := range weights {
			sum += w
		}
		scores[trait] = float64(sum) / float64(len(weights))
	}

	return NewProfile(scores)
}

// Score returns the score of a trait and whether the profile knows it.
func (p TraitProfile) Score(trait string) (float64, bool) {
	score, ok := p.scores[trait]
	return score, ok
}

// IsZero reports whether the profile was never computed.
func (p TraitProfile) IsZero() bool {
	return len(p.scores) == 0
}

// Map returns a copy of the scores.
func (p TraitProfile) Map() map[string]float64 {
	out := make(map[string]float64, len(p.scores))
	for k, v := range p.scores {
		out[k] = v
	}
	return out
}

// TraitScore is a single trait with its score.
type TraitScore struct {
	Trait string
	Score float64
}

// Traits returns the known scores in TraitNames order.
func (p TraitProfile) Traits() []TraitScore {
	out := make([]TraitScore, 0, len(TraitNames))
	for _, trait := range TraitNames {
		if score, ok := p.scores[trait]; ok {
			out = append(out, TraitScore{Trait: trait, Score: score})
		}
	}
	return out
}

// Percentage converts a trait score to the truncated 0-100 value shown to
// users. The epsilon absorbs float noise such as 0.7*100 = 69.99...
func Percentage(score float64) int {
	return int(score/MaxScore*100 + 1e-9)
}

func (p TraitProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.scores)
}

func (p *TraitProfile) UnmarshalJSON(data []byte) error {
	var scores map[string]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return fmt.Errorf("decode trait profile: %w", err)
	}
	*p = NewProfile(scores)
	return nil
}

func clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
