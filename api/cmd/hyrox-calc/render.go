package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/workout"
)

var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleTotal  = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
)

const labelWidth = 20

// renderSheet prints every entry, the roxzone time and the totals.
func renderSheet(s *workout.Sheet) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Splits") + "\n")

	run := 0
	for _, e := range s.Entries() {
		label := e.Exercise.Label()
		if e.Exercise == workout.Running {
			run++
			label = fmt.Sprintf("Run %d", run)
		}
		b.WriteString(row(label, timeStyle(e.Time).Render(e.Time.String())))
	}
	rox := s.Roxzone()
	b.WriteString(row(workout.Roxzone.Label(), timeStyle(rox).Render(rox.String())))

	b.WriteString("\n" + renderSummary(s.Summary()))
	return b.String()
}

func renderSummary(sum workout.Summary) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Totals") + "\n")
	lines := sum.Lines()
	for i, l := range lines {
		if i == len(lines)-1 {
			b.WriteString(row(StyleTotal.Render(l.Label), StyleTotal.Render(l.Text)))
			continue
		}
		b.WriteString(row(l.Label, l.Text))
	}
	return b.String()
}

func renderConfidence(c ocr.Confidence) string {
	style := StyleRed
	switch c {
	case ocr.ConfidenceHigh:
		style = StyleGreen
	case ocr.ConfidenceMedium:
		style = StyleYellow
	}
	return "Confidence: " + style.Render(string(c)) + "\n"
}

// zero times are dimmed so gaps stand out
func timeStyle(t workout.TimeValue) lipgloss.Style {
	if t.IsZero() {
		return StyleDim
	}
	return lipgloss.NewStyle()
}

func row(label, value string) string {
	pad := labelWidth - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return "  " + label + strings.Repeat(" ", pad) + value + "\n"
}
