package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FITTRACK_DATA_DIR", "FITTRACK_BACKEND", "FITTRACK_VAULT", "FITTRACK_ENV"} {
		t.Setenv(k, "")
	}
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestLogFeedbackAndDeleteRoundTrip(t *testing.T) {
	clearEnv(t)
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			base := []string{"--data-dir", t.TempDir(), "--backend", backend}
			with := func(args ...string) []string { return append(append([]string{}, base...), args...) }

			out := mustRun(t, with("log", "--date", "2026-05-01", "--weight", "160", "--steps", "9000")...)
			if !strings.Contains(out, "2026-05-01\t160.0 lbs\t9,000 steps\t-") {
				t.Fatalf("unexpected log output %q", out)
			}
			mustRun(t, with("log", "--date", "2026-05-02", "--weight", "155")...)
			out = mustRun(t, with("goals", "set", "--weight", "150")...)
			if !strings.Contains(out, "10,000 steps, 8 cups, target weight 150.0 lbs") {
				t.Fatalf("unexpected goals output %q", out)
			}

			out = mustRun(t, with("feedback", "--date", "2026-05-02")...)
			for _, want := range []string{
				"• You're 5.0 lbs away from your target weight!",
				"✓ You're making progress! 5.0 lbs lost since your last entry.",
			} {
				if !strings.Contains(out, want) {
					t.Fatalf("feedback missing %q:\n%s", want, out)
				}
			}

			out = mustRun(t, with("history", "--asc")...)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			if len(lines) != 2 || !strings.HasPrefix(lines[0], "2026-05-01") {
				t.Fatalf("unexpected history %q", out)
			}

			out = mustRun(t, with("delete", "--date", "2026-05-01")...)
			if !strings.HasPrefix(out, "deleted ") {
				t.Fatalf("unexpected delete output %q", out)
			}
			out = mustRun(t, with("show", "--date", "2026-05-01")...)
			if !strings.Contains(out, "not logged") {
				t.Fatalf("expected deleted entry to be gone, got %q", out)
			}
		})
	}
}

func TestLogKeepsUnspecifiedFields(t *testing.T) {
	clearEnv(t)
	base := []string{"--data-dir", t.TempDir()}
	mustRun(t, append(base, "log", "--date", "2026-05-01", "--weight", "160", "--water", "3")...)
	out := mustRun(t, append(base, "log", "--date", "2026-05-01", "--steps", "12,500")...)
	if !strings.Contains(out, "160.0 lbs\t12,500 steps\t3 cups") {
		t.Fatalf("expected merged entry, got %q", out)
	}
}

func TestCommandsRejectMissingInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cases := [][]string{
		{"--data-dir", dir, "log"},
		{"--data-dir", dir, "show"},
		{"--data-dir", dir, "delete"},
		{"--data-dir", dir, "show", "--date", "2026-13-01"},
		{"--data-dir", dir, "journal", "rebuild"},
		{"--data-dir", dir, "--backend", "postgres", "goals", "show"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestJournalRebuildWritesNotes(t *testing.T) {
	clearEnv(t)
	base := []string{"--data-dir", t.TempDir(), "--vault", t.TempDir()}
	mustRun(t, append(base, "log", "--date", "2026-05-01", "--weight", "160")...)
	mustRun(t, append(base, "log", "--date", "2026-05-02", "--steps", "4000")...)
	out := mustRun(t, append(base, "journal", "rebuild")...)
	if strings.TrimSpace(out) != "journal rebuilt: 2 notes" {
		t.Fatalf("unexpected rebuild output %q", out)
	}
}
