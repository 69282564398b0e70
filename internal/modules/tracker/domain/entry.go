package domain

import (
	"fmt"
	"strings"

	"fittrack/internal/platform/datekey"
)

// Entry holds one calendar day of measurements. Date, not ID, is the identity key.
type Entry struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
	Steps  *int     `json:"steps"`
	Water  *int     `json:"water"`
}

// Empty reports whether no measurement has been recorded.
func (e Entry) Empty() bool {
	return e.Weight == nil && e.Steps == nil && e.Water == nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if !datekey.Valid(e.Date) {
		return fmt.Errorf("date %q is not a YYYY-MM-DD key", e.Date)
	}
	return nil
}

// Normalize drops out-of-range measurements to unset. Invalid input is never rejected.
func (e Entry) Normalize() Entry {
	if e.Weight != nil && !(*e.Weight > 0) {
		e.Weight = nil
	}
	if e.Steps != nil && *e.Steps < 0 {
		e.Steps = nil
	}
	if e.Water != nil && *e.Water < 0 {
		e.Water = nil
	}
	return e
}

// TodayKind tags whether today's entry exists in storage.
type TodayKind int

const (
	Existing TodayKind = iota
	Draft
)

func (k TodayKind) String() string {
	if k == Draft {
		return "draft"
	}
	return "existing"
}

// TodayEntry is today's record or an unsaved draft for it.
type TodayEntry struct {
	Kind  TodayKind
	Entry Entry
}

// Persisted reports whether the entry is durable.
func (t TodayEntry) Persisted() bool {
	return t.Kind == Existing
}

func NewDraft(id, date string) TodayEntry {
	return TodayEntry{Kind: Draft, Entry: Entry{ID: id, Date: date}}
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
