package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
	"fittrack/internal/platform/clock"
	"fittrack/internal/platform/datekey"
	apperrors "fittrack/internal/platform/errors"
	"fittrack/internal/platform/id"
)

type TrackerService struct {
	clock   clock.Clock
	idGen   id.Generator
	entries trackerout.EntryRepository
	goals   trackerout.GoalsRepository
	journal trackerout.JournalProjector
}

// NewTrackerService wires the record store. journal may be nil when no vault is configured.
func NewTrackerService(clock clock.Clock, idGen id.Generator, entries trackerout.EntryRepository, goals trackerout.GoalsRepository, journal trackerout.JournalProjector) *TrackerService {
	return &TrackerService{clock: clock, idGen: idGen, entries: entries, goals: goals, journal: journal}
}

func (s *TrackerService) Today() string {
	return datekey.Today(s.clock)
}

// UpsertEntry stores entry as the single record for its date. An entry without an
// id inherits the id of the stored record for that date, or receives a fresh one.
func (s *TrackerService) UpsertEntry(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	entry = entry.Normalize()
	if !datekey.Valid(entry.Date) {
		return domain.Entry{}, fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, entry.Date)
	}
	if entry.ID == "" {
		existing, err := s.entries.FindByDate(ctx, entry.Date)
		switch {
		case err == nil:
			entry.ID = existing.ID
		case errors.Is(err, apperrors.ErrNotFound):
			entry.ID = s.idGen.New()
		default:
			return domain.Entry{}, err
		}
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.entries.Upsert(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	if s.journal != nil {
		if err := s.journal.Project(ctx, entry); err != nil {
			slog.Warn("journal projection failed", "date", entry.Date, "error", err)
		}
	}
	slog.Debug("entry saved", "id", entry.ID, "date", entry.Date)
	return entry, nil
}

func (s *TrackerService) AllEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.entries.List(ctx)
}

// SortedEntries orders entries by date, newest first unless ascending is set.
func (s *TrackerService) SortedEntries(ctx context.Context, ascending bool) ([]domain.Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

func (s *TrackerService) EntryByDate(ctx context.Context, date string) (domain.Entry, error) {
	if !datekey.Valid(date) {
		return domain.Entry{}, fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, date)
	}
	return s.entries.FindByDate(ctx, date)
}

// EntryForDate returns the stored entry for date, or an unsaved draft for it.
func (s *TrackerService) EntryForDate(ctx context.Context, date string) (domain.TodayEntry, error) {
	entry, err := s.EntryByDate(ctx, date)
	if err == nil {
		return domain.TodayEntry{Kind: domain.Existing, Entry: entry}, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.NewDraft(s.idGen.New(), date), nil
	}
	return domain.TodayEntry{}, err
}

func (s *TrackerService) TodayEntry(ctx context.Context) (domain.TodayEntry, error) {
	return s.EntryForDate(ctx, s.Today())
}

func (s *TrackerService) DeleteEntry(ctx context.Context, entryID string) error {
	var removed *domain.Entry
	if s.journal != nil {
		entries, err := s.entries.List(ctx)
		if err != nil {
			return err
		}
		for i := range entries {
			if entries[i].ID == entryID {
				removed = &entries[i]
				break
			}
		}
	}
	if err := s.entries.DeleteByID(ctx, entryID); err != nil {
		return err
	}
	if removed != nil {
		if err := s.journal.Remove(ctx, *removed); err != nil {
			slog.Warn("journal removal failed", "date", removed.Date, "error", err)
		}
	}
	slog.Debug("entry deleted", "id", entryID)
	return nil
}

func (s *TrackerService) SaveGoals(ctx context.Context, goals domain.Goals) (domain.Goals, error) {
	goals = goals.Normalize()
	if err := s.goals.Save(ctx, goals); err != nil {
		return domain.Goals{}, err
	}
	slog.Debug("goals saved", "daily_steps", goals.DailySteps, "daily_water", goals.DailyWater)
	return goals, nil
}

func (s *TrackerService) LoadGoals(ctx context.Context) (domain.Goals, error) {
	return s.goals.Load(ctx)
}

// Timeline lays entries out over a contiguous range of dates ending today.
func (s *TrackerService) Timeline(ctx context.Context, period domain.ChartPeriod) ([]domain.TimelinePoint, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]domain.Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	today := s.Today()
	var keys []string
	if days := period.Days(); days > 0 {
		keys = datekey.Recent(s.clock, days)
	} else {
		from := today
		for _, e := range entries {
			if e.Date < from && datekey.Valid(e.Date) {
				from = e.Date
			}
		}
		keys, err = datekey.Range(from, today)
		if err != nil {
			return nil, err
		}
	}

	points := make([]domain.TimelinePoint, 0, len(keys))
	for _, key := range keys {
		p := domain.TimelinePoint{Date: key}
		if e, ok := byDate[key]; ok {
			p.Weight, p.Steps, p.Water = e.Weight, e.Steps, e.Water
		}
		points = append(points, p)
	}
	return points, nil
}

// RebuildJournal re-projects every stored entry into an empty journal and reports
// how many notes were written. A note that cannot be written is logged and skipped.
func (s *TrackerService) RebuildJournal(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, fmt.Errorf("%w: journal vault is not configured", apperrors.ErrInvalidInput)
	}
	if err := s.journal.Reset(ctx); err != nil {
		return 0, err
	}
	entries, err := s.entries.List(ctx)
	if err != nil {
		return 0, err
	}
	written := 0
	for _, e := range entries {
		if err := s.journal.Project(ctx, e); err != nil {
			slog.Warn("journal note not rebuilt", "date", e.Date, "error", err)
			continue
		}
		written++
	}
	return written, nil
}
