package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	trackerout "fittrack/internal/modules/tracker/adapter/out"
	"fittrack/internal/modules/tracker/domain"
	"fittrack/internal/modules/tracker/dto"
	trackerin "fittrack/internal/modules/tracker/port/in"
	trackerport "fittrack/internal/modules/tracker/port/out"
	"fittrack/internal/modules/tracker/service"
	"fittrack/internal/modules/tracker/usecase"
	"fittrack/internal/platform/clock"
	apperrors "fittrack/internal/platform/errors"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fakeJournal struct {
	projected []string
	removed   []string
	resets    int
	failWith  error
}

func (f *fakeJournal) Project(_ context.Context, e domain.Entry) error {
	f.projected = append(f.projected, e.Date)
	return f.failWith
}

func (f *fakeJournal) Remove(_ context.Context, e domain.Entry) error {
	f.removed = append(f.removed, e.Date)
	return f.failWith
}

func (f *fakeJournal) Reset(context.Context) error {
	f.resets++
	return nil
}

var today = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func newUsecase(t *testing.T, journal *fakeJournal) (trackerin.Usecase, *trackerout.MemoryStore) {
	t.Helper()
	store := trackerout.NewMemoryStore()
	var projector trackerport.JournalProjector
	if journal != nil {
		projector = journal
	}
	svc := service.NewTrackerService(clock.Fixed(today), &seqID{}, store, store, projector)
	return usecase.NewInteractor(svc), store
}

func TestTodayEntryDraftIsNotPersisted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store := newUsecase(t, nil)

	first, err := uc.TodayEntry(ctx)
	if err != nil {
		t.Fatalf("today entry: %v", err)
	}
	if !first.Draft || first.Entry.Date != "2026-03-10" || first.Entry.ID == "" {
		t.Fatalf("expected draft for today, got %+v", first)
	}
	if first.Entry.Weight != nil || first.Entry.Steps != nil || first.Entry.Water != nil {
		t.Fatalf("draft must have no measurements: %+v", first.Entry)
	}
	all, _ := store.List(ctx)
	if len(all) != 0 {
		t.Fatalf("draft must not be stored, got %+v", all)
	}

	second, _ := uc.TodayEntry(ctx)
	if second.Entry.ID == first.Entry.ID {
		t.Fatalf("each draft gets a fresh id")
	}

	steps := 4000
	saved, err := uc.SaveEntry(ctx, dto.SaveEntryInput{ID: first.Entry.ID, Date: first.Entry.Date, Steps: &steps})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	existing, err := uc.TodayEntry(ctx)
	if err != nil {
		t.Fatalf("today after save: %v", err)
	}
	if existing.Draft || existing.Entry.ID != saved.ID || *existing.Entry.Steps != 4000 {
		t.Fatalf("expected existing entry after save, got %+v", existing)
	}
}

func TestSaveEntryWithoutIDReusesStoredID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store := newUsecase(t, nil)
	water := 3
	first, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-09", Water: &water})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-09"})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected stable id, got %s then %s", first.ID, second.ID)
	}
	all, _ := store.List(ctx)
	if len(all) != 1 || all[0].Water != nil {
		t.Fatalf("second save must overwrite the whole entry, got %+v", all)
	}
}

func TestSaveEntryRejectsMalformedDateAndDropsInvalidMeasurements(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase(t, nil)
	if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "03/10/2026"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	weight, steps := -1.0, -20
	out, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-10", Weight: &weight, Steps: &steps})
	if err != nil {
		t.Fatalf("invalid measurements must not reject the save: %v", err)
	}
	if out.Weight != nil || out.Steps != nil {
		t.Fatalf("invalid measurements should be unset, got %+v", out)
	}
}

func TestLoadDataSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase(t, nil)
	for _, date := range []string{"2026-03-01", "2026-03-10", "2026-03-05"} {
		w := 180.0
		if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: date, Weight: &w}); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}
	target := 170.0
	if _, err := uc.SaveGoals(ctx, dto.GoalsInput{DailySteps: 9000, DailyWater: 7, TargetWeight: &target}); err != nil {
		t.Fatalf("save goals: %v", err)
	}

	data, err := uc.LoadData(ctx)
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	if len(data.Entries) != 3 || data.Entries[0].Date != "2026-03-10" || data.Entries[2].Date != "2026-03-01" {
		t.Fatalf("entries should be newest first: %+v", data.Entries)
	}
	if data.Goals.DailySteps != 9000 || data.Goals.TargetWeight == nil || *data.Goals.TargetWeight != 170 {
		t.Fatalf("unexpected goals %+v", data.Goals)
	}
	if data.Today.Draft || data.Today.Entry.Date != "2026-03-10" {
		t.Fatalf("today should be the stored entry, got %+v", data.Today)
	}

	asc, err := uc.ListEntries(ctx, dto.ListEntriesInput{Ascending: true})
	if err != nil || asc[0].Date != "2026-03-01" {
		t.Fatalf("ascending list wrong: %+v (%v)", asc, err)
	}
}

func TestLoadGoalsDefaultsAndNormalization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase(t, nil)
	goals, err := uc.LoadGoals(ctx)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if goals.DailySteps != 10000 || goals.DailyWater != 8 || goals.TargetWeight != nil {
		t.Fatalf("expected defaults, got %+v", goals)
	}
	zero := 0.0
	saved, err := uc.SaveGoals(ctx, dto.GoalsInput{DailySteps: -5, DailyWater: 12, TargetWeight: &zero})
	if err != nil {
		t.Fatalf("save goals: %v", err)
	}
	if saved.DailySteps != 10000 || saved.DailyWater != 12 || saved.TargetWeight != nil {
		t.Fatalf("unexpected normalized goals %+v", saved)
	}
}

func TestDeleteEntryNotifiesJournalAndIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := &fakeJournal{}
	uc, store := newUsecase(t, journal)
	steps := 10
	saved, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-08", Steps: &steps})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(journal.projected) != 1 {
		t.Fatalf("save should project into the journal")
	}
	for i := 0; i < 2; i++ {
		if err := uc.DeleteEntry(ctx, saved.ID); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	all, _ := store.List(ctx)
	if len(all) != 0 {
		t.Fatalf("entry should be gone, got %+v", all)
	}
	if len(journal.removed) != 1 || journal.removed[0] != "2026-03-08" {
		t.Fatalf("journal removal expected once, got %v", journal.removed)
	}
}

func TestJournalFailureDoesNotFailSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := &fakeJournal{failWith: errors.New("disk full")}
	uc, _ := newUsecase(t, journal)
	water := 2
	if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-08", Water: &water}); err != nil {
		t.Fatalf("journal failure must not fail the save: %v", err)
	}
}

func TestTimelineIncludesEmptyDates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase(t, nil)
	steps := 5000
	if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-08", Steps: &steps}); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := uc.Timeline(ctx, dto.TimelineInput{Period: "7days"})
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(out.Points) != 7 || out.Points[0].Date != "2026-03-04" || out.Points[6].Date != "2026-03-10" {
		t.Fatalf("unexpected 7-day window: %+v", out.Points)
	}
	if out.Points[4].Steps == nil || *out.Points[4].Steps != 5000 || out.Points[5].Steps != nil {
		t.Fatalf("entry should land on its date only: %+v", out.Points)
	}

	w := 190.0
	if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2025-12-31", Weight: &w}); err != nil {
		t.Fatalf("save old entry: %v", err)
	}
	all, err := uc.Timeline(ctx, dto.TimelineInput{Period: "all"})
	if err != nil {
		t.Fatalf("timeline all: %v", err)
	}
	if all.Points[0].Date != "2025-12-31" || all.Points[len(all.Points)-1].Date != "2026-03-10" || len(all.Points) != 70 {
		t.Fatalf("all period should span oldest entry to today, got %d points from %s", len(all.Points), all.Points[0].Date)
	}

	if _, err := uc.Timeline(ctx, dto.TimelineInput{Period: "decade"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown period should be invalid input, got %v", err)
	}
}

func TestRebuildJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase(t, nil)
	if _, err := uc.RebuildJournal(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("rebuild without vault should be invalid input, got %v", err)
	}

	journal := &fakeJournal{}
	withVault, _ := newUsecase(t, journal)
	for _, date := range []string{"2026-03-01", "2026-03-02"} {
		water := 1
		if _, err := withVault.SaveEntry(ctx, dto.SaveEntryInput{Date: date, Water: &water}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	out, err := withVault.RebuildJournal(ctx)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if out.Notes != 2 || journal.resets != 1 || len(journal.projected) != 4 {
		t.Fatalf("unexpected rebuild result %+v resets=%d projected=%v", out, journal.resets, journal.projected)
	}
}

func TestRebuildJournalSkipsNotesThatFail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := &fakeJournal{}
	uc, _ := newUsecase(t, journal)
	water := 3
	if _, err := uc.SaveEntry(ctx, dto.SaveEntryInput{Date: "2026-03-01", Water: &water}); err != nil {
		t.Fatalf("save: %v", err)
	}
	journal.failWith = errors.New("unreadable note")

	out, err := uc.RebuildJournal(ctx)
	if err != nil {
		t.Fatalf("rebuild should not fail on a single note: %v", err)
	}
	if out.Notes != 0 || journal.resets != 1 {
		t.Fatalf("unexpected rebuild result %+v resets=%d", out, journal.resets)
	}
}
