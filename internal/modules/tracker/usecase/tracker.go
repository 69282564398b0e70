package usecase

import (
	"context"

	"fittrack/internal/modules/tracker/domain"
	"fittrack/internal/modules/tracker/dto"
	trackerin "fittrack/internal/modules/tracker/port/in"
	"fittrack/internal/modules/tracker/service"
)

type Interactor struct {
	svc *service.TrackerService
}

func NewInteractor(svc *service.TrackerService) trackerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadData(ctx context.Context) (dto.LoadDataOutput, error) {
	entries, err := i.svc.SortedEntries(ctx, false)
	if err != nil {
		return dto.LoadDataOutput{}, err
	}
	goals, err := i.svc.LoadGoals(ctx)
	if err != nil {
		return dto.LoadDataOutput{}, err
	}
	today, err := i.svc.TodayEntry(ctx)
	if err != nil {
		return dto.LoadDataOutput{}, err
	}
	return dto.LoadDataOutput{
		Entries: toEntryOutputs(entries),
		Goals:   toGoalsOutput(goals),
		Today:   toTodayOutput(today),
	}, nil
}

func (i *Interactor) SaveEntry(ctx context.Context, input dto.SaveEntryInput) (dto.EntryOutput, error) {
	entry, err := i.svc.UpsertEntry(ctx, domain.Entry{
		ID:     input.ID,
		Date:   input.Date,
		Weight: input.Weight,
		Steps:  input.Steps,
		Water:  input.Water,
	})
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry), nil
}

func (i *Interactor) DeleteEntry(ctx context.Context, id string) error {
	return i.svc.DeleteEntry(ctx, id)
}

func (i *Interactor) ListEntries(ctx context.Context, input dto.ListEntriesInput) ([]dto.EntryOutput, error) {
	entries, err := i.svc.SortedEntries(ctx, input.Ascending)
	if err != nil {
		return nil, err
	}
	return toEntryOutputs(entries), nil
}

func (i *Interactor) EntryForDate(ctx context.Context, date string) (dto.TodayOutput, error) {
	entry, err := i.svc.EntryForDate(ctx, date)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	return toTodayOutput(entry), nil
}

func (i *Interactor) TodayEntry(ctx context.Context) (dto.TodayOutput, error) {
	entry, err := i.svc.TodayEntry(ctx)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	return toTodayOutput(entry), nil
}

func (i *Interactor) SaveGoals(ctx context.Context, input dto.GoalsInput) (dto.GoalsOutput, error) {
	goals, err := i.svc.SaveGoals(ctx, domain.Goals{
		DailySteps:   input.DailySteps,
		DailyWater:   input.DailyWater,
		TargetWeight: input.TargetWeight,
	})
	if err != nil {
		return dto.GoalsOutput{}, err
	}
	return toGoalsOutput(goals), nil
}

func (i *Interactor) LoadGoals(ctx context.Context) (dto.GoalsOutput, error) {
	goals, err := i.svc.LoadGoals(ctx)
	if err != nil {
		return dto.GoalsOutput{}, err
	}
	return toGoalsOutput(goals), nil
}

func (i *Interactor) Timeline(ctx context.Context, input dto.TimelineInput) (dto.TimelineOutput, error) {
	period := domain.ChartPeriod(input.Period)
	if period == "" {
		period = domain.Period7Days
	}
	points, err := i.svc.Timeline(ctx, period)
	if err != nil {
		return dto.TimelineOutput{}, err
	}
	out := dto.TimelineOutput{Period: string(period), Points: make([]dto.TimelinePointOutput, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, dto.TimelinePointOutput{Date: p.Date, Weight: p.Weight, Steps: p.Steps, Water: p.Water})
	}
	return out, nil
}

func (i *Interactor) RebuildJournal(ctx context.Context) (dto.RebuildJournalOutput, error) {
	n, err := i.svc.RebuildJournal(ctx)
	if err != nil {
		return dto.RebuildJournalOutput{}, err
	}
	return dto.RebuildJournalOutput{Notes: n}, nil
}

func toEntryOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{ID: e.ID, Date: e.Date, Weight: e.Weight, Steps: e.Steps, Water: e.Water}
}

func toEntryOutputs(entries []domain.Entry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryOutput(e))
	}
	return out
}

func toGoalsOutput(g domain.Goals) dto.GoalsOutput {
	return dto.GoalsOutput{DailySteps: g.DailySteps, DailyWater: g.DailyWater, TargetWeight: g.TargetWeight}
}

func toTodayOutput(t domain.TodayEntry) dto.TodayOutput {
	return dto.TodayOutput{Entry: toEntryOutput(t.Entry), Draft: !t.Persisted()}
}
