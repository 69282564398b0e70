package usecase

import (
	"context"

	"fittrack/internal/modules/feedback/domain"
	"fittrack/internal/modules/feedback/dto"
	feedbackin "fittrack/internal/modules/feedback/port/in"
	trackerdomain "fittrack/internal/modules/tracker/domain"
	trackerdto "fittrack/internal/modules/tracker/dto"
	trackerin "fittrack/internal/modules/tracker/port/in"
)

type Interactor struct {
	tracker trackerin.Usecase
}

func NewInteractor(tracker trackerin.Usecase) feedbackin.Usecase {
	return &Interactor{tracker: tracker}
}

func (i *Interactor) Today(ctx context.Context) (dto.FeedbackOutput, error) {
	today, err := i.tracker.TodayEntry(ctx)
	if err != nil {
		return dto.FeedbackOutput{}, err
	}
	return i.evaluateFor(ctx, today)
}

func (i *Interactor) ForDate(ctx context.Context, date string) (dto.FeedbackOutput, error) {
	current, err := i.tracker.EntryForDate(ctx, date)
	if err != nil {
		return dto.FeedbackOutput{}, err
	}
	return i.evaluateFor(ctx, current)
}

func (i *Interactor) Evaluate(input dto.EvaluateInput) []dto.MessageOutput {
	return toMessageOutputs(domain.Evaluate(
		toEntry(input.Today),
		toEntries(input.History),
		toGoals(input.Goals),
	))
}

func (i *Interactor) evaluateFor(ctx context.Context, current trackerdto.TodayOutput) (dto.FeedbackOutput, error) {
	entries, err := i.tracker.ListEntries(ctx, trackerdto.ListEntriesInput{})
	if err != nil {
		return dto.FeedbackOutput{}, err
	}
	goals, err := i.tracker.LoadGoals(ctx)
	if err != nil {
		return dto.FeedbackOutput{}, err
	}
	history := make([]trackerdto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		if e.Date != current.Entry.Date {
			history = append(history, e)
		}
	}
	return dto.FeedbackOutput{
		Date:  current.Entry.Date,
		Draft: current.Draft,
		Messages: i.Evaluate(dto.EvaluateInput{
			Today:   current.Entry,
			History: history,
			Goals:   goals,
		}),
	}, nil
}

func toEntry(e trackerdto.EntryOutput) trackerdomain.Entry {
	return trackerdomain.Entry{ID: e.ID, Date: e.Date, Weight: e.Weight, Steps: e.Steps, Water: e.Water}
}

func toEntries(items []trackerdto.EntryOutput) []trackerdomain.Entry {
	out := make([]trackerdomain.Entry, 0, len(items))
	for _, item := range items {
		out = append(out, toEntry(item))
	}
	return out
}

// Goals arriving here were already normalized by the tracker.
func toGoals(g trackerdto.GoalsOutput) trackerdomain.Goals {
	return trackerdomain.Goals{DailySteps: g.DailySteps, DailyWater: g.DailyWater, TargetWeight: g.TargetWeight}
}

func toMessageOutputs(messages []domain.Message) []dto.MessageOutput {
	out := make([]dto.MessageOutput, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.MessageOutput{Type: string(m.Type), Text: m.Text, Achieved: m.Achieved})
	}
	return out
}
