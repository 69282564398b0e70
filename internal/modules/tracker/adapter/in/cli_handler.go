package in

import (
	"context"
	"math"
	"strconv"
	"strings"

	"fittrack/internal/modules/tracker/dto"
	trackerin "fittrack/internal/modules/tracker/port/in"
)

// EntryFields carries raw user input. A nil field keeps the stored value; a value
// that does not parse as a number clears the measurement.
type EntryFields struct {
	Weight *string
	Steps  *string
	Water  *string
}

// GoalFields carries raw goal input. Nil fields keep the current goal.
type GoalFields struct {
	DailySteps   *string
	DailyWater   *string
	TargetWeight *string
}

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) LoadData(ctx context.Context) (dto.LoadDataOutput, error) {
	return h.usecase.LoadData(ctx)
}

// LogEntry applies fields on top of the entry for date (today when empty) and saves it.
func (h CLIHandler) LogEntry(ctx context.Context, date string, fields EntryFields) (dto.EntryOutput, error) {
	var current dto.TodayOutput
	var err error
	if strings.TrimSpace(date) == "" {
		current, err = h.usecase.TodayEntry(ctx)
	} else {
		current, err = h.usecase.EntryForDate(ctx, strings.TrimSpace(date))
	}
	if err != nil {
		return dto.EntryOutput{}, err
	}
	e := current.Entry
	input := dto.SaveEntryInput{ID: e.ID, Date: e.Date, Weight: e.Weight, Steps: e.Steps, Water: e.Water}
	if fields.Weight != nil {
		input.Weight = ParseWeight(*fields.Weight)
	}
	if fields.Steps != nil {
		input.Steps = ParseCount(*fields.Steps)
	}
	if fields.Water != nil {
		input.Water = ParseCount(*fields.Water)
	}
	return h.usecase.SaveEntry(ctx, input)
}

func (h CLIHandler) DeleteEntry(ctx context.Context, id string) error {
	return h.usecase.DeleteEntry(ctx, strings.TrimSpace(id))
}

func (h CLIHandler) ListEntries(ctx context.Context, ascending bool) ([]dto.EntryOutput, error) {
	return h.usecase.ListEntries(ctx, dto.ListEntriesInput{Ascending: ascending})
}

func (h CLIHandler) EntryForDate(ctx context.Context, date string) (dto.TodayOutput, error) {
	return h.usecase.EntryForDate(ctx, strings.TrimSpace(date))
}

func (h CLIHandler) TodayEntry(ctx context.Context) (dto.TodayOutput, error) {
	return h.usecase.TodayEntry(ctx)
}

func (h CLIHandler) LoadGoals(ctx context.Context) (dto.GoalsOutput, error) {
	return h.usecase.LoadGoals(ctx)
}

// UpdateGoals overlays fields on the current goals and saves the whole set.
func (h CLIHandler) UpdateGoals(ctx context.Context, fields GoalFields) (dto.GoalsOutput, error) {
	current, err := h.usecase.LoadGoals(ctx)
	if err != nil {
		return dto.GoalsOutput{}, err
	}
	input := dto.GoalsInput{DailySteps: current.DailySteps, DailyWater: current.DailyWater, TargetWeight: current.TargetWeight}
	if fields.DailySteps != nil {
		if v := ParseCount(*fields.DailySteps); v != nil {
			input.DailySteps = *v
		}
	}
	if fields.DailyWater != nil {
		if v := ParseCount(*fields.DailyWater); v != nil {
			input.DailyWater = *v
		}
	}
	if fields.TargetWeight != nil {
		input.TargetWeight = ParseWeight(*fields.TargetWeight)
	}
	return h.usecase.SaveGoals(ctx, input)
}

func (h CLIHandler) Timeline(ctx context.Context, period string) (dto.TimelineOutput, error) {
	return h.usecase.Timeline(ctx, dto.TimelineInput{Period: strings.TrimSpace(period)})
}

func (h CLIHandler) RebuildJournal(ctx context.Context) (dto.RebuildJournalOutput, error) {
	return h.usecase.RebuildJournal(ctx)
}

// ParseWeight reads a positive decimal; anything else is unset.
func ParseWeight(raw string) *float64 {
	v, err := strconv.ParseFloat(normalizeNumber(raw), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseCount reads a non-negative integer such as "10,000"; anything else is unset.
func ParseCount(raw string) *int {
	v, err := strconv.Atoi(normalizeNumber(raw))
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func normalizeNumber(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
}
