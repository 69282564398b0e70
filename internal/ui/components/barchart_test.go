package components_test

import (
	"strings"
	"testing"

	"fittrack/internal/ui/components"
	"fittrack/internal/ui/theme"
)

func value(v float64) *float64 { return &v }

func TestBarChartScalesToLargestValue(t *testing.T) {
	t.Parallel()
	out := components.BarChart("Steps", []components.Bar{
		{Label: "May 1", Value: value(5000), Text: "5,000"},
		{Label: "May 2", Value: value(10000), Text: "10,000"},
		{Label: "May 3"},
	}, 0, 40, theme.StepsColor)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title and three rows, got %d: %q", len(lines), out)
	}
	half := strings.Count(lines[1], "█")
	full := strings.Count(lines[2], "█")
	if full == 0 || half == 0 || half*2 > full+1 {
		t.Fatalf("expected the first bar to be about half the second: %d vs %d", half, full)
	}
	if strings.Contains(lines[3], "█") || !strings.Contains(lines[3], "·") {
		t.Fatalf("expected a gap for a missing value: %q", lines[3])
	}
}

func TestBarChartTinyValueStillVisible(t *testing.T) {
	t.Parallel()
	out := components.BarChart("Water", []components.Bar{
		{Label: "a", Value: value(1), Text: "1"},
		{Label: "b", Value: value(1000), Text: "1000"},
	}, 0, 30, theme.WaterColor)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if strings.Count(lines[1], "█") != 1 {
		t.Fatalf("expected a one-cell bar: %q", lines[1])
	}
}
