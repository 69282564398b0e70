package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects the log sinks. Console is skipped when nil, which the TUI relies on
// because stderr is hidden behind the alt screen.
type Options struct {
	Dev     bool
	Console io.Writer
	File    string
}

// Init builds the process logger and installs it as the slog default.
// Development logs text at debug level, otherwise JSON at info level.
// The returned closer releases the log file, if any.
func Init(opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Dev {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if opts.Console != nil {
		if opts.Dev {
			handlers = append(handlers, slog.NewTextHandler(opts.Console, handlerOpts))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(opts.Console, handlerOpts))
		}
	}

	closer := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f.Close
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, handlerOpts)
	case 1:
		handler = handlers[0]
	default:
		handler = slogmulti.Fanout(handlers...)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log, closer, nil
}
