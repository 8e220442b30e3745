package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/ikigai"
	"github.com/spigell/pathfinder/internal/matching"
)

const (
	// DateLayout is the date format used in rendered reports.
	DateLayout = "January 02, 2006"

	textTopN       = 3
	keySkillsLimit = 5
)

// Text renders the plain-text report. Percentages are truncated, never rounded.
// The layout is literal, including the leading newline and the trailing spaces
// on wrapped lines.
func Text(r Result, now time.Time) string {
	var b strings.Builder

	b.WriteString("\n")
	heading(&b, "PATH-FINDER: COMPLETE CAREER ANALYSIS REPORT", "============================================")
	fmt.Fprintf(&b, "\nGenerated on: %s\n\n", now.Format(DateLayout))

	heading(&b, "EXECUTIVE SUMMARY", "================")
	b.WriteString("This comprehensive analysis combines personality assessment with Ikigai discovery \n")
	b.WriteString("to provide personalized career recommendations based on your psychological profile \n")
	b.WriteString("and life purpose alignment.\n\n")

	heading(&b, "PERSONALITY PROFILE", "==================")
	if r.Analysis != nil {
		b.WriteString(r.Analysis.Summary)
	}
	b.WriteString("\n\n")

	heading(&b, "BIG FIVE TRAIT SCORES", "====================")
	for _, ts := range r.Profile.Traits() {
		name := ts.Trait
		if info, ok := assessment.Info(ts.Trait); ok {
			name = info.Name
		}
		fmt.Fprintf(&b, "%s: %d%%\n", name, assessment.Percentage(ts.Score))
	}

	b.WriteString("\n\n")
	heading(&b, "IKIGAI ANALYSIS", "===============")
	fmt.Fprintf(&b, "Overall Ikigai Score: %d%%\n\n", matching.Percentage(r.Intersections.CenterScore()))
	b.WriteString("Intersection Scores:\n")
	for _, in := range r.Intersections.Pairs() {
		fmt.Fprintf(&b, "- %s: %d%% - %s\n", in.Name, matching.Percentage(in.Score), in.Description)
	}

	b.WriteString("\n\n")
	heading(&b, "TOP CAREER RECOMMENDATIONS", "==========================")
	for i, rec := range r.Top(textTopN) {
		writeRecommendation(&b, i+1, rec, r.Flow)
	}

	if r.Insight != nil {
		b.WriteString("\n")
		heading(&b, "AI COACH INSIGHT", "================")
		b.WriteString(r.Insight.Headline + "\n")
		bullets(&b, "Strengths", r.Insight.Strengths)
		bullets(&b, "Watch out for", r.Insight.Risks)
		bullets(&b, "Suggested actions", r.Insight.NextSteps)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	heading(&b, "NEXT STEPS", "==========")
	for i, step := range NextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\nRemember: Career discovery is a journey. Use this analysis as a starting \n")
	b.WriteString("point for deeper self-reflection and professional growth.\n")

	return b.String()
}

func heading(b *strings.Builder, title, underline string) {
	b.WriteString(title + "\n" + underline + "\n")
}

func writeRecommendation(b *strings.Builder, position int, rec matching.Recommendation, flow ikigai.Flow) {
	skills := rec.Career.Skills
	if len(skills) > keySkillsLimit {
		skills = skills[:keySkillsLimit]
	}

	fmt.Fprintf(b, "\n%d. %s (%d%% Match)\n", position, rec.Career.Name, rec.MatchPercentage)
	fmt.Fprintf(b, "   Description: %s\n", rec.Career.Description)
	fmt.Fprintf(b, "   Salary Range: %s\n", rec.Career.SalaryRange)
	fmt.Fprintf(b, "   Growth Rate: %s\n", rec.Career.GrowthRate)
	fmt.Fprintf(b, "   Key Skills: %s\n", strings.Join(skills, ", "))
	fmt.Fprintf(b, "   Personality Match: %d%%\n", matching.Percentage(rec.TraitFit))
	if flow == ikigai.FlowSkills {
		fmt.Fprintf(b, "   Skill Match: %d%%\n", matching.Percentage(rec.SkillMatch))
	}
	fmt.Fprintf(b, "   Ikigai Alignment: %d%%\n\n", matching.Percentage(rec.Alignment))
}

func bullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}
