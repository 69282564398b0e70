package out

import (
	"context"
	"sync"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
	apperrors "fittrack/internal/platform/errors"
)

// MemoryStore keeps entries and goals in process memory. It serves both repositories.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]domain.Entry
	goals   *domain.Goals
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]domain.Entry{}}
}

var (
	_ trackerout.EntryRepository = (*MemoryStore)(nil)
	_ trackerout.GoalsRepository = (*MemoryStore)(nil)
)

func (s *MemoryStore) Upsert(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Date] = entry
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *MemoryStore) FindByDate(_ context.Context, date string) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[date]
	if !ok {
		return domain.Entry{}, apperrors.ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for date, e := range s.entries {
		if e.ID == id {
			delete(s.entries, date)
		}
	}
	return nil
}

func (s *MemoryStore) Save(_ context.Context, goals domain.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = &goals
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (domain.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goals == nil {
		return domain.DefaultGoals(), nil
	}
	return *s.goals, nil
}
