package app

import (
	"fmt"
	"strings"

	trackerinadapter "fittrack/internal/modules/tracker/adapter/in"
	"fittrack/internal/platform/datekey"
)

// logCommand is a parsed "log [date] key=value..." palette line.
type logCommand struct {
	date   string
	fields trackerinadapter.EntryFields
}

func parseLog(args []string) (logCommand, error) {
	var cmd logCommand
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		if !datekey.Valid(args[0]) {
			return logCommand{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", args[0])
		}
		cmd.date = args[0]
		args = args[1:]
	}
	values, err := assignments(args)
	if err != nil {
		return logCommand{}, err
	}
	for k, v := range values {
		switch k {
		case "weight", "w":
			cmd.fields.Weight = ptr(v)
		case "steps", "s":
			cmd.fields.Steps = ptr(v)
		case "water", "c":
			cmd.fields.Water = ptr(v)
		default:
			return logCommand{}, fmt.Errorf("unknown field %q", k)
		}
	}
	if cmd.fields == (trackerinadapter.EntryFields{}) {
		return logCommand{}, fmt.Errorf("usage: log [YYYY-MM-DD] weight=<lbs> steps=<n> water=<cups>")
	}
	return cmd, nil
}

func parseGoal(args []string) (trackerinadapter.GoalFields, error) {
	values, err := assignments(args)
	if err != nil {
		return trackerinadapter.GoalFields{}, err
	}
	var fields trackerinadapter.GoalFields
	for k, v := range values {
		switch k {
		case "steps", "s":
			fields.DailySteps = ptr(v)
		case "water", "c":
			fields.DailyWater = ptr(v)
		case "weight", "w", "target":
			fields.TargetWeight = ptr(v)
		default:
			return trackerinadapter.GoalFields{}, fmt.Errorf("unknown goal %q", k)
		}
	}
	if fields == (trackerinadapter.GoalFields{}) {
		return fields, fmt.Errorf("usage: goal steps=<n> water=<cups> weight=<lbs>")
	}
	return fields, nil
}

// assignments splits key=value words. An empty value clears the field.
func assignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		out[strings.ToLower(k)] = v
	}
	return out, nil
}

func ptr(s string) *string { return &s }
