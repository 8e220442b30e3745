package report

import (
	"fmt"
	"strings"

	"github.com/spigell/pathfinder/internal/matching"
)

// Section is a titled list of action items.
type Section struct {
	Title string
	Items []string
}

// NextSteps is the closing checklist of the text report.
var NextSteps = []string{
	"Focus on your top career match and research the industry",
	"Develop skills highlighted in your recommendations",
	"Network with professionals in your target field",
	"Update your resume to highlight relevant experience",
	"Set up job alerts and start applying to relevant positions",
}

const learningSkills = 3

// ActionPlan builds the four-part plan for the top recommendation: immediate
// steps, a learning plan over its first skills, networking and progress
// tracking. It is empty when there are no recommendations.
func ActionPlan(recs []matching.Recommendation) []Section {
	if len(recs) == 0 {
		return nil
	}
	top := recs[0].Career

	learning := Section{Title: "Learning Plan (next 3 months)"}
	skills := top.Skills
	if len(skills) > learningSkills {
		skills = skills[:learningSkills]
	}
	for _, skill := range skills {
		name := humanize(skill)
		learning.Items = append(learning.Items,
			fmt.Sprintf("%s: find online courses or certifications", name),
			fmt.Sprintf("%s: practice through personal projects", name),
			fmt.Sprintf("%s: join communities focused on %s", name, skill),
		)
	}

	return []Section{
		{
			Title: fmt.Sprintf("Immediate Steps (next 30 days) for %s", top.Name),
			Items: []string{
				fmt.Sprintf("Research %s job market in your area", top.Name),
				fmt.Sprintf("Identify 3-5 companies hiring for %s roles", top.Name),
				"Update your resume highlighting relevant experience",
				"Join professional communities related to your target field",
				"Set up job alerts for relevant positions",
			},
		},
		learning,
		{
			Title: "Networking",
			Items: []string{
				"LinkedIn groups in your target industry",
				"Local professional meetups and events",
				"Industry conferences and webinars",
				"Current professionals in your target roles",
				"Mentors who can guide your career transition",
			},
		},
		{
			Title: "Progress Tracking",
			Items: []string{
				"Weekly: applications submitted and new connections made",
				"Weekly: skills practiced and interview opportunities",
				"Monthly: progress toward learning goals and network expansion",
				"Monthly: market research findings and strategy adjustments",
			},
		},
	}
}

// humanize turns a snake_case key into title case words.
func humanize(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
