package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fittrack/internal/bootstrap"
	trackerinadapter "fittrack/internal/modules/tracker/adapter/in"
	"fittrack/internal/platform/config"
	"fittrack/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir string
	backend string
	vault   string
	dev     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "fittrack",
		Short:         "Track daily weight, steps and water against your goals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: file|sqlite|memory")
	root.PersistentFlags().StringVar(&flags.vault, "vault", "", "markdown vault to mirror entries into (optional)")
	root.PersistentFlags().BoolVar(&flags.dev, "dev", false, "verbose development logging")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newDeleteCmd(flags))
	root.AddCommand(newGoalsCmd(flags))
	root.AddCommand(newFeedbackCmd(flags))
	root.AddCommand(newJournalCmd(flags))
	return root
}

// loadApp resolves configuration, installs the logger and wires the app.
// Console logging goes to console; pass nil to log to the file only.
func loadApp(ctx context.Context, flags *rootFlags, console io.Writer) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(config.Overrides{DataDir: flags.dataDir, Backend: flags.backend, VaultPath: flags.vault})
	if err != nil {
		return nil, nil, err
	}
	logFile := ""
	if cfg.Backend != config.BackendMemory {
		logFile = cfg.LogPath
	}
	_, closeLog, err := logger.Init(logger.Options{
		Dev:     flags.dev || cfg.IsDevelopment(),
		Console: console,
		File:    logFile,
	})
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		_ = app.Close()
		_ = closeLog()
	}
	return app, cleanup, nil
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, nil)
			if err != nil {
				return err
			}
			defer cleanup()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTodayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's entry, goals and feedback",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := app.TrackerCLI.LoadData(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeEntry(out, data.Today.Entry, data.Today.Draft)
			writeGoals(out, data.Goals)
			fb, err := app.FeedbackCLI.Feedback(cmd.Context(), "")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out)
			writeMessages(out, fb.Messages)
			return nil
		},
	}
}

func newLogCmd(flags *rootFlags) *cobra.Command {
	var date, weight, steps, water string
	logCmd := &cobra.Command{
		Use:   "log --weight <lbs> --steps <n> --water <cups>",
		Short: "Record measurements for today or --date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fields trackerinadapter.EntryFields
			if cmd.Flags().Changed("weight") {
				fields.Weight = &weight
			}
			if cmd.Flags().Changed("steps") {
				fields.Steps = &steps
			}
			if cmd.Flags().Changed("water") {
				fields.Water = &water
			}
			if fields == (trackerinadapter.EntryFields{}) {
				return fmt.Errorf("at least one of --weight, --steps or --water is required")
			}
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := app.TrackerCLI.LogEntry(cmd.Context(), date, fields)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", formatEntry(saved))
			return nil
		},
	}
	logCmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	logCmd.Flags().StringVar(&weight, "weight", "", "weight in lbs; empty clears it")
	logCmd.Flags().StringVar(&steps, "steps", "", "step count; empty clears it")
	logCmd.Flags().StringVar(&water, "water", "", "cups of water; empty clears it")
	return logCmd
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var date string
	show := &cobra.Command{
		Use:   "show --date <YYYY-MM-DD>",
		Short: "Show the entry for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(date) == "" {
				return fmt.Errorf("--date is required")
			}
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := app.TrackerCLI.EntryForDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			writeEntry(cmd.OutOrStdout(), out.Entry, out.Draft)
			return nil
		},
	}
	show.Flags().StringVar(&date, "date", "", "entry date")
	return show
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var ascending bool
	var period string
	history := &cobra.Command{
		Use:   "history",
		Short: "List entries, or a day-by-day timeline with --period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()

			if period != "" {
				tl, err := app.TrackerCLI.Timeline(cmd.Context(), period)
				if err != nil {
					return err
				}
				for _, p := range tl.Points {
					_, _ = fmt.Fprintln(out, formatPoint(p))
				}
				return nil
			}

			entries, err := app.TrackerCLI.ListEntries(cmd.Context(), ascending)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, "no entries")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", formatEntry(e), e.ID)
			}
			return nil
		},
	}
	history.Flags().BoolVar(&ascending, "asc", false, "oldest first")
	history.Flags().StringVar(&period, "period", "", "timeline window: 7days|30days|90days|all")
	return history
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	var entryID, date string
	del := &cobra.Command{
		Use:   "delete --id <id> | --date <YYYY-MM-DD>",
		Short: "Delete an entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(entryID) == "" && strings.TrimSpace(date) == "" {
				return fmt.Errorf("--id or --date is required")
			}
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			if entryID == "" {
				current, err := app.TrackerCLI.EntryForDate(cmd.Context(), date)
				if err != nil {
					return err
				}
				if current.Draft {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no entry for %s\n", date)
					return nil
				}
				entryID = current.Entry.ID
			}
			if err := app.TrackerCLI.DeleteEntry(cmd.Context(), entryID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", entryID)
			return nil
		},
	}
	del.Flags().StringVar(&entryID, "id", "", "entry id")
	del.Flags().StringVar(&date, "date", "", "entry date")
	return del
}

func newGoalsCmd(flags *rootFlags) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Show or change daily goals"}

	goals.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := app.TrackerCLI.LoadGoals(cmd.Context())
			if err != nil {
				return err
			}
			writeGoals(cmd.OutOrStdout(), g)
			return nil
		},
	})

	var steps, water, weight string
	set := &cobra.Command{
		Use:   "set --steps <n> --water <cups> --weight <lbs>",
		Short: "Change goals; unspecified goals are kept",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fields trackerinadapter.GoalFields
			if cmd.Flags().Changed("steps") {
				fields.DailySteps = &steps
			}
			if cmd.Flags().Changed("water") {
				fields.DailyWater = &water
			}
			if cmd.Flags().Changed("weight") {
				fields.TargetWeight = &weight
			}
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := app.TrackerCLI.UpdateGoals(cmd.Context(), fields)
			if err != nil {
				return err
			}
			writeGoals(cmd.OutOrStdout(), g)
			return nil
		},
	}
	set.Flags().StringVar(&steps, "steps", "", "daily step goal")
	set.Flags().StringVar(&water, "water", "", "daily water goal in cups")
	set.Flags().StringVar(&weight, "weight", "", "target weight in lbs; empty clears it")
	goals.AddCommand(set)
	return goals
}

func newFeedbackCmd(flags *rootFlags) *cobra.Command {
	var date string
	fb := &cobra.Command{
		Use:   "feedback",
		Short: "Evaluate progress for today or --date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := app.FeedbackCLI.Feedback(cmd.Context(), date)
			if err != nil {
				return err
			}
			writeMessages(cmd.OutOrStdout(), out.Messages)
			return nil
		},
	}
	fb.Flags().StringVar(&date, "date", "", "date to evaluate (default today)")
	return fb
}

func newJournalCmd(flags *rootFlags) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Markdown journal mirror"}
	journal.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Rewrite every journal note from stored entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd.Context(), flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := app.TrackerCLI.RebuildJournal(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "journal rebuilt: %d notes\n", out.Notes)
			return nil
		},
	})
	return journal
}
