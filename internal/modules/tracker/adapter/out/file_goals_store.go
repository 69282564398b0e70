package out

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
)

type FileGoalsStore struct {
	path string
	mu   sync.Mutex
}

func NewFileGoalsStore(path string) trackerout.GoalsRepository {
	return &FileGoalsStore{path: path}
}

func (s *FileGoalsStore) Save(_ context.Context, goals domain.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.MarshalIndent(goals, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	return writeBlob(s.path, payload)
}

func (s *FileGoalsStore) Load(_ context.Context) (domain.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := readBlob(s.path)
	if err != nil {
		return domain.Goals{}, err
	}
	if len(payload) == 0 {
		return domain.DefaultGoals(), nil
	}
	var goals domain.Goals
	if err := json.Unmarshal(payload, &goals); err != nil {
		slog.Warn("goals blob is malformed, using defaults", "path", s.path, "error", err)
		return domain.DefaultGoals(), nil
	}
	return goals.Normalize(), nil
}
