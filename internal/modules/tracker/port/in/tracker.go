package in

import (
	"context"

	"fittrack/internal/modules/tracker/dto"
)

type Usecase interface {
	LoadData(ctx context.Context) (dto.LoadDataOutput, error)
	SaveEntry(ctx context.Context, input dto.SaveEntryInput) (dto.EntryOutput, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, input dto.ListEntriesInput) ([]dto.EntryOutput, error)
	EntryForDate(ctx context.Context, date string) (dto.TodayOutput, error)
	TodayEntry(ctx context.Context) (dto.TodayOutput, error)
	SaveGoals(ctx context.Context, input dto.GoalsInput) (dto.GoalsOutput, error)
	LoadGoals(ctx context.Context) (dto.GoalsOutput, error)
	Timeline(ctx context.Context, input dto.TimelineInput) (dto.TimelineOutput, error)
	RebuildJournal(ctx context.Context) (dto.RebuildJournalOutput, error)
}
