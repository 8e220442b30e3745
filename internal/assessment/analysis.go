package assessment

import (
	"fmt"
	"strings"
)

const (
	highThreshold        = 4.0
	lowThreshold         = 2.0
	developmentThreshold = 2.5
)

// TraitDetail is the per-trait part of the analysis.
type TraitDetail struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Analysis is the narrative interpretation of a trait profile.
type Analysis struct {
	Summary          string                 `json:"summary"`
	TraitDetails     map[string]TraitDetail `json:"trait_details"`
	Strengths        []string               `json:"strengths"`
	DevelopmentAreas []string               `json:"development_areas"`
}

// Analyze interprets a profile: a summary sentence, high/low/balanced
// descriptions per trait, strengths and development areas.
func Analyze(p TraitProfile) Analysis {
	analysis := Analysis{
		TraitDetails:     make(map[string]TraitDetail, len(TraitNames)),
		Strengths:        []string{},
		DevelopmentAreas: []string{},
	}

	var summary strings.Builder
	summary.WriteString("Based on your responses, you demonstrate ")
	if score(p, Openness) >= highThreshold {
		summary.WriteString("high creativity and openness to new experiences. ")
	}
	if score(p, Conscientiousness) >= highThreshold {
		summary.WriteString("strong organizational skills and attention to detail. ")
	}
	if score(p, Extraversion) >= highThreshold {
		summary.WriteString("natural leadership abilities and social energy. ")
	}
	if score(p, Agreeableness) >= highThreshold {
		summary.WriteString("excellent interpersonal skills and empathy. ")
	}
	if s, ok := p.Score(Neuroticism); ok && s <= lowThreshold {
		summary.WriteString("emotional stability and resilience under pressure. ")
	}
	analysis.Summary = summary.String()

	for _, trait := range TraitNames {
		s, ok := p.Score(trait)
		if !ok {
			continue
		}
		info := bigFive[trait]

		description := fmt.Sprintf("Balanced %s", strings.ToLower(info.Name))
		switch {
		case s >= highThreshold:
			description = info.HighDescription
		case s <= lowThreshold:
			description = info.LowDescription
		}

		analysis.TraitDetails[trait] = TraitDetail{
			Name:        info.Name,
			Score:       s,
			Description: description,
		}

		if s >= highThreshold {
			analysis.Strengths = append(analysis.Strengths, info.HighDescription)
		}
		if s <= developmentThreshold && trait != Neuroticism {
			analysis.DevelopmentAreas = append(analysis.DevelopmentAreas, "Develop "+strings.ToLower(info.Name))
		}
	}

	return analysis
}

func score(p TraitProfile, trait string) float64 {
	s, _ := p.Score(trait)
	return s
}
