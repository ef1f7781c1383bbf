package e2e

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	passStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryOKStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	summaryBadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// FormatReport renders a run's results as a terminal report.
func FormatReport(results []Result) string {
	var b strings.Builder
	b.WriteString(reportTitleStyle.Render("Browser verification"))
	b.WriteString("\n\n")

	passed, failed := 0, 0
	var total time.Duration
	for _, r := range results {
		total += r.Duration
		mark := passStyle.Render("PASS")
		if !r.Passed() {
			mark = failStyle.Render("FAIL")
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s\n", mark, r.Name,
			dimStyle.Render(fmt.Sprintf("(%s)", r.Duration.Round(time.Millisecond)))))
		if r.Err != nil {
			failed++
			b.WriteString(dimStyle.Render(fmt.Sprintf("        %v", r.Err)))
			b.WriteString("\n")
		} else {
			passed++
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d passed, %d failed in %s", passed, failed, total.Round(time.Millisecond))
	if failed > 0 {
		b.WriteString(summaryBadStyle.Render(summary))
	} else {
		b.WriteString(summaryOKStyle.Render(summary))
	}
	b.WriteString("\n")
	return b.String()
}
