package out

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
	apperrors "fittrack/internal/platform/errors"
)

// FileEntryStore keeps every entry in one JSON array blob.
type FileEntryStore struct {
	path string
	mu   sync.Mutex
}

func NewFileEntryStore(path string) trackerout.EntryRepository {
	return &FileEntryStore{path: path}
}

func (s *FileEntryStore) Upsert(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	out := make([]domain.Entry, 0, len(entries)+1)
	replaced := false
	for _, e := range entries {
		if e.Date != entry.Date {
			out = append(out, e)
			continue
		}
		if !replaced {
			out = append(out, entry)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, entry)
	}
	return s.store(out)
}

func (s *FileEntryStore) List(_ context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileEntryStore) FindByDate(_ context.Context, date string) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return domain.Entry{}, err
	}
	for _, e := range entries {
		if e.Date == date {
			return e, nil
		}
	}
	return domain.Entry{}, apperrors.ErrNotFound
}

func (s *FileEntryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	if len(out) == len(entries) {
		return nil
	}
	return s.store(out)
}

// load treats a corrupt blob as an empty collection.
func (s *FileEntryStore) load() ([]domain.Entry, error) {
	payload, err := readBlob(s.path)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return []domain.Entry{}, nil
	}
	var entries []domain.Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		slog.Warn("entries blob is malformed, treating as empty", "path", s.path, "error", err)
		return []domain.Entry{}, nil
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

func (s *FileEntryStore) store(entries []domain.Entry) error {
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	return writeBlob(s.path, payload)
}
