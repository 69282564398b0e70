package main

import (
	"fmt"
	"io"
	"strings"

	feedbackdto "fittrack/internal/modules/feedback/dto"
	trackerdto "fittrack/internal/modules/tracker/dto"
	"fittrack/internal/platform/numfmt"
)

func formatEntry(e trackerdto.EntryOutput) string {
	return formatMeasurements(e.Date, e.Weight, e.Steps, e.Water)
}

func formatPoint(p trackerdto.TimelinePointOutput) string {
	return formatMeasurements(p.Date, p.Weight, p.Steps, p.Water)
}

func formatMeasurements(date string, weight *float64, steps, water *int) string {
	cols := []string{date, "-", "-", "-"}
	if weight != nil {
		cols[1] = numfmt.Pounds(*weight) + " lbs"
	}
	if steps != nil {
		cols[2] = numfmt.Count(*steps) + " steps"
	}
	if water != nil {
		cols[3] = fmt.Sprintf("%d %s", *water, numfmt.Plural(*water, "cup", "cups"))
	}
	return strings.Join(cols, "\t")
}

func writeEntry(w io.Writer, e trackerdto.EntryOutput, draft bool) {
	if draft {
		_, _ = fmt.Fprintf(w, "%s\tnot logged\n", e.Date)
		return
	}
	_, _ = fmt.Fprintln(w, formatEntry(e))
}

func writeGoals(w io.Writer, g trackerdto.GoalsOutput) {
	target := "none"
	if g.TargetWeight != nil {
		target = numfmt.Pounds(*g.TargetWeight) + " lbs"
	}
	_, _ = fmt.Fprintf(w, "goals: %s steps, %d %s, target weight %s\n",
		numfmt.Count(g.DailySteps), g.DailyWater, numfmt.Plural(g.DailyWater, "cup", "cups"), target)
}

func writeMessages(w io.Writer, messages []feedbackdto.MessageOutput) {
	for _, m := range messages {
		mark := "•"
		if m.Achieved {
			mark = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", mark, m.Text)
	}
}
