package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	feedbackinadapter "fittrack/internal/modules/feedback/adapter/in"
	feedbackusecase "fittrack/internal/modules/feedback/usecase"
	trackerinadapter "fittrack/internal/modules/tracker/adapter/in"
	trackeroutadapter "fittrack/internal/modules/tracker/adapter/out"
	trackerout "fittrack/internal/modules/tracker/port/out"
	trackerservice "fittrack/internal/modules/tracker/service"
	trackerusecase "fittrack/internal/modules/tracker/usecase"
	"fittrack/internal/platform/clock"
	"fittrack/internal/platform/config"
	"fittrack/internal/platform/id"
	uiapp "fittrack/internal/ui/app"
)

type App struct {
	TrackerCLI  trackerinadapter.CLIHandler
	FeedbackCLI feedbackinadapter.CLIHandler

	closers []func() error
}

// Close releases storage handles opened by New.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}

	entries, goals, err := openRepositories(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	var journal trackerout.JournalProjector
	if cfg.VaultPath != "" {
		journal = trackeroutadapter.NewVaultJournal(cfg.VaultPath)
	}

	trackerUC := trackerusecase.NewInteractor(trackerservice.NewTrackerService(
		clock.SystemClock{},
		id.UUID{},
		entries,
		goals,
		journal,
	))
	feedbackUC := feedbackusecase.NewInteractor(trackerUC)

	app.TrackerCLI = trackerinadapter.NewCLIHandler(trackerUC)
	app.FeedbackCLI = feedbackinadapter.NewCLIHandler(feedbackUC)
	slog.Debug("app ready", "backend", cfg.Backend, "data_dir", cfg.DataDir, "journal", cfg.VaultPath != "")
	return app, nil
}

func openRepositories(ctx context.Context, cfg config.Config, app *App) (trackerout.EntryRepository, trackerout.GoalsRepository, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := trackeroutadapter.NewSQLiteStore(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store, store, nil
	case config.BackendMemory:
		store := trackeroutadapter.NewMemoryStore()
		return store, store, nil
	default:
		return trackeroutadapter.NewFileEntryStore(cfg.EntriesPath), trackeroutadapter.NewFileGoalsStore(cfg.GoalsPath), nil
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TrackerCLI, app.FeedbackCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
