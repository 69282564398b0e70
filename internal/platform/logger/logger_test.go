package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fittrack/internal/platform/logger"
)

// Init swaps the slog default, so these tests stay sequential.

func TestInitFansOutToConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "fittrack.log")

	log, closeFn, err := logger.Init(logger.Options{Dev: true, Console: &console, File: path})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Debug("entry saved", "date", "2026-01-02")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(console.String(), "entry saved") {
		t.Fatalf("console missing record: %q", console.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"date":"2026-01-02"`) {
		t.Fatalf("file should hold JSON records, got %q", string(b))
	}
}

func TestInitProductionSkipsDebug(t *testing.T) {
	var console bytes.Buffer
	log, closeFn, err := logger.Init(logger.Options{Console: &console})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = closeFn() }()
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("unexpected output: %q", console.String())
	}
}
