package out

import (
	"context"

	"fittrack/internal/modules/tracker/domain"
)

// EntryRepository stores at most one entry per date.
type EntryRepository interface {
	// Upsert inserts the entry, or replaces the whole stored entry with the same date.
	Upsert(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context) ([]domain.Entry, error)
	FindByDate(ctx context.Context, date string) (domain.Entry, error)
	// DeleteByID is a no-op when no entry has the id.
	DeleteByID(ctx context.Context, id string) error
}

type GoalsRepository interface {
	Save(ctx context.Context, goals domain.Goals) error
	// Load returns the default goals when none were saved.
	Load(ctx context.Context) (domain.Goals, error)
}

// JournalProjector mirrors entries into a secondary, human-readable form.
type JournalProjector interface {
	Project(ctx context.Context, entry domain.Entry) error
	Remove(ctx context.Context, entry domain.Entry) error
	Reset(ctx context.Context) error
}
