package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fittrack/internal/ui/theme"
)

// Bar is one row of a horizontal bar chart. A nil Value renders as a gap.
type Bar struct {
	Label string
	Value *float64
	Text  string
}

// BarChart renders rows scaled to the largest value. Goal, when positive,
// is drawn as a marker so rows at or past it stand out.
func BarChart(title string, bars []Bar, goal float64, width int, color lipgloss.Color) string {
	labelW, textW := 0, 0
	maxV := goal
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		if b.Value != nil && *b.Value > maxV {
			maxV = *b.Value
		}
	}
	barW := width - labelW - textW - 4
	if barW < 4 {
		barW = 4
	}

	fill := lipgloss.NewStyle().Foreground(color)
	reached := lipgloss.NewStyle().Foreground(theme.Green)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n")
	for _, b := range bars {
		label := theme.Muted.Render(fmt.Sprintf("%-*s", labelW, b.Label))
		if b.Value == nil {
			sb.WriteString(label + "  " + theme.Muted.Render("·") + "\n")
			continue
		}
		n := 0
		if maxV > 0 {
			n = int(*b.Value / maxV * float64(barW))
		}
		if n == 0 && *b.Value > 0 {
			n = 1
		}
		style := fill
		if goal > 0 && *b.Value >= goal {
			style = reached
		}
		sb.WriteString(label + "  " + style.Render(strings.Repeat("█", n)) + " " + b.Text + "\n")
	}
	return sb.String()
}
