package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/pathfinder/internal/catalog"
)

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "List the careers pathfinder can recommend",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), careersTable(catalog.Default(), viper.GetBool("no-color")))
	},
}

func init() {
	rootCmd.AddCommand(careersCmd)
}

func careersTable(c *catalog.Catalog, noColor bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CAREER", "SALARY RANGE", "GROWTH", "KEY SKILLS")

	if !noColor {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return lipgloss.NewStyle()
			})
	}

	for _, career := range c.Careers() {
		skills := career.Skills
		if len(skills) > 3 {
			skills = skills[:3]
		}
		t = t.Row(career.Name, career.SalaryRange, career.GrowthRate, strings.Join(skills, ", "))
	}

	return t.String()
}
