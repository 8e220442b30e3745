package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/matching"
)

const barWidth = 20

// Console renders the terminal summary shown after the wizard completes.
func Console(r Result, noColor bool) string {
	lines := []string{
		stylize("PATH-FINDER results", noColor, lipgloss.Color("33"), true),
		"",
		stylize("Personality", noColor, lipgloss.Color("33"), true),
	}

	for _, ts := range r.Profile.Traits() {
		name := ts.Trait
		if info, ok := assessment.Info(ts.Trait); ok {
			name = info.Name
		}
		pct := assessment.Percentage(ts.Score)
		lines = append(lines, fmt.Sprintf("  %-20s %s %3d%%", name, bar(pct, noColor), pct))
	}

	lines = append(lines, "", stylize("Ikigai", noColor, lipgloss.Color("33"), true))
	for _, in := range r.Intersections.Pairs() {
		pct := matching.Percentage(in.Score)
		lines = append(lines, fmt.Sprintf("  %-20s %s %3d%%", in.Name, bar(pct, noColor), pct))
	}
	center := matching.Percentage(r.Intersections.CenterScore())
	lines = append(lines, fmt.Sprintf("  %-20s %s %3d%%", "Overall", bar(center, noColor), center))

	lines = append(lines, "", stylize("Top careers", noColor, lipgloss.Color("33"), true))
	for _, rec := range r.Recommendations {
		title := fmt.Sprintf("  %d. %s (%d%% Match)", rec.Rank, rec.Career.Name, rec.MatchPercentage)
		lines = append(lines, stylize(title, noColor, matchColor(rec.MatchPercentage), false))
		lines = append(lines, stylize("     "+rec.Career.SalaryRange+" | growth: "+rec.Career.GrowthRate, noColor, lipgloss.Color("242"), false))
		if len(rec.Highlights) > 0 {
			lines = append(lines, stylize("     you rated: "+strings.Join(rec.Highlights, ", "), noColor, lipgloss.Color("244"), false))
		}
	}

	if r.Insight != nil {
		lines = append(lines, "", stylize("AI coach", noColor, lipgloss.Color("33"), true), "  "+r.Insight.Headline)
		for _, step := range r.Insight.NextSteps {
			lines = append(lines, "  - "+step)
		}
	}

	box := strings.Join(lines, "\n")
	if noColor {
		return box + "\n"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(box) + "\n"
}

func bar(pct int, noColor bool) string {
	filled := pct * barWidth / 100
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	if noColor {
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("░", barWidth-filled))
}

func matchColor(pct int) lipgloss.Color {
	switch {
	case pct >= 70:
		return lipgloss.Color("35")
	case pct >= 50:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("245")
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
