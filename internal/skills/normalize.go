// Package skills normalizes free-text skill labels to canonical skill names.
package skills

import (
	"fmt"
	"sort"
	"strings"
)

// synonyms maps a canonical skill to the spellings users commonly type for it.
var synonyms = map[string][]string{
	"programming":         {"coding", "software_engineering", "development", "programming_skills", "go", "golang", "python", "javascript"},
	"mathematics":         {"math", "maths", "applied_math", "calculus"},
	"statistics":          {"stats", "statistical_analysis", "probability"},
	"analytical_thinking": {"analysis", "analytics", "analytical", "analytical_skills", "critical_thinking"},
	"machine_learning":    {"ml", "ai", "artificial_intelligence", "deep_learning"},
	"design":              {"graphic_design", "visual_design", "ui_design", "ux_design", "ui/ux"},
	"creativity":          {"creative_thinking", "creative", "ideation"},
	"user_research":       {"ux_research", "usability_testing", "user_interviews"},
	"prototyping":         {"wireframing", "mockups", "figma"},
	"communication":       {"communication_skills", "public_speaking", "presenting", "presentation"},
	"strategic_planning":  {"strategy", "strategic_thinking", "planning"},
	"leadership":          {"team_leadership", "leading_teams", "people_management", "management"},
	"market_analysis":     {"market_research", "competitive_analysis"},
	"project_management":  {"pm", "project_planning", "agile", "scrum"},
	"problem_solving":     {"troubleshooting", "solving_problems"},
	"system_design":       {"architecture", "software_architecture", "systems_design"},
	"algorithms":          {"data_structures", "algorithm_design"},
	"debugging":           {"bug_fixing", "debug"},
	"marketing":           {"digital_marketing", "seo", "advertising", "social_media"},
	"writing":             {"copywriting", "content_writing", "technical_writing"},
	"research":            {"investigation", "academic_research"},
	"empathy":             {"active_listening", "compassion"},
	"counseling":          {"counselling", "therapy", "coaching"},
	"teaching":            {"education", "tutoring", "instruction", "lesson_planning"},
	"financial_analysis":  {"finance", "financial_modeling", "accounting", "investing"},

	"classroom_management": {"behavior_management"},
}

// index maps every normalized canonical name and variant to its canonical.
var index = mustBuildIndex(synonyms)

func mustBuildIndex(table map[string][]string) map[string]string {
	idx, err := BuildIndex(table)
	if err != nil {
		panic(err)
	}
	return idx
}

// BuildIndex turns a canonical-to-variants table into a variant-to-canonical
// lookup. A spelling claimed by two canonical names is an error.
func BuildIndex(table map[string][]string) (map[string]string, error) {
	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	idx := make(map[string]string)
	claim := func(spelling, canonical string) error {
		if spelling == "" {
			return fmt.Errorf("empty spelling for canonical skill %q", canonical)
		}
		if owner, ok := idx[spelling]; ok && owner != canonical {
			return fmt.Errorf("skill spelling %q claimed by both %q and %q", spelling, owner, canonical)
		}
		idx[spelling] = canonical
		return nil
	}

	for _, canonical := range canonicals {
		normalized := Normalize(canonical)
		if err := claim(normalized, normalized); err != nil {
			return nil, err
		}
		for _, variant := range table[canonical] {
			if err := claim(Normalize(variant), normalized); err != nil {
				return nil, err
			}
		}
	}

	return idx, nil
}

// Normalize lowercases a label and joins its words with underscores.
func Normalize(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "-", " ")
	return strings.Join(strings.Fields(label), "_")
}

// Canonical returns the canonical name of a label and whether it was found in
// the synonym table. Unknown labels come back normalized.
func Canonical(label string) (string, bool) {
	normalized := Normalize(label)
	canonical, ok := index[normalized]
	if !ok {
		return normalized, false
	}
	return canonical, true
}

// Canonicalize re-keys raw skill ratings by canonical name. Labels that
// collapse onto the same canonical keep the highest rating. Empty labels are
// dropped.
func Canonicalize(raw map[string]int) map[string]int {
	out := make(map[string]int, len(raw))
	for label, rating := range raw {
		key, _ := Canonical(label)
		if key == "" {
			continue
		}
		if existing, ok := out[key]; ok && existing >= rating {
			continue
		}
		out[key] = rating
	}
	return out
}

// Known returns the canonical skill names in sorted order.
func Known() []string {
	out := make([]string, 0, len(synonyms))
	for canonical := range synonyms {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}
