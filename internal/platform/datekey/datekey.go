// Package datekey encodes calendar days as canonical YYYY-MM-DD storage keys.
//
// Keys are computed in the location of the supplied time, so callers that pass
// local wall time get local calendar days. Day arithmetic always goes through
// AddDate so daylight saving transitions never skip or repeat a key.
package datekey

import (
	"fmt"
	"sort"
	"time"

	"fittrack/internal/platform/clock"
	apperrors "fittrack/internal/platform/errors"
)

const (
	Layout      = "2006-01-02"
	longLayout  = "January 2, 2006"
	shortLayout = "Jan 2"
)

// Key returns the canonical key for the calendar day of t.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Parse decodes a canonical key into local midnight of that day.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date key %q", apperrors.ErrInvalidInput, key)
	}
	return t, nil
}

// Valid reports whether key is a canonical date key.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

func Today(clk clock.Clock) string {
	return Key(clk.Now())
}

// Recent returns the n keys ending at and including today, oldest first.
func Recent(clk clock.Clock, n int) []string {
	if n <= 0 {
		return []string{}
	}
	now := clk.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, Key(today.AddDate(0, 0, -i)))
	}
	return keys
}

// Range returns every key from `from` to `to` inclusive. An inverted range is empty.
func Range(from, to string) ([]string, error) {
	start, err := Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := Parse(to)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, Key(d))
	}
	return keys, nil
}

// Long renders a key as "May 18, 2025". Malformed keys are returned unchanged.
func Long(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format(longLayout)
}

// Short renders a key as "May 18". Malformed keys are returned unchanged.
func Short(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format(shortLayout)
}

// Sort returns an ascending copy of keys. Canonical keys sort lexically by date.
func Sort(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}
