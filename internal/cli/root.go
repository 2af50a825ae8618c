package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/spendr/internal/config"
	"github.com/sadopc/spendr/internal/formatter"
	"github.com/sadopc/spendr/internal/logging"
	"github.com/sadopc/spendr/internal/spending"
	"github.com/sadopc/spendr/internal/store"
	"github.com/sadopc/spendr/internal/tui"
	"github.com/spf13/cobra"
)

// App carries the configuration and the resources opened for a command.
type App struct {
	Config *config.Config

	// IsInteractive reports whether the root command may take over the
	// terminal. Nil means never.
	IsInteractive func() bool
	// RunTUI runs the Bubble Tea program. Nil uses the alt-screen program.
	RunTUI func(s *store.Store, prefs config.Preferences, logger *slog.Logger) error

	store    *store.Store
	prefs    config.Preferences
	logger   *slog.Logger
	closeLog func() error
}

// NewRootCmd creates the top-level "spendr" command. Flags write straight
// into app.Config so they override environment values.
func NewRootCmd(app *App) *cobra.Command {
	if app.Config == nil {
		app.Config = &config.Config{LogLevel: "info"}
	}

	root := &cobra.Command{
		Use:           "spendr",
		Short:         "Terminal spending tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				run := app.RunTUI
				if run == nil {
					run = runProgram
				}
				return run(app.store, app.prefs, app.logger)
			}
			series, err := app.series()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(series, spending.Selection{}, app.prefs.Currency))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.Config.DBPath, "db", app.Config.DBPath, "Path to the fixture database")
	flags.StringVar(&app.Config.Currency, "currency", app.Config.Currency, "ISO currency code for amounts")
	flags.StringVar(&app.Config.EmptySelection, "empty-selection", app.Config.EmptySelection, "Transactions shown without a selection: first_month or all_months")
	flags.StringVar(&app.Config.LogLevel, "log-level", app.Config.LogLevel, "Log level: debug, info, warn or error")

	root.AddCommand(
		newSummaryCmd(app),
		newMonthsCmd(app),
		newScreenTimeCmd(app),
		newExportCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// open validates the config, builds the logger and opens the store. The
// TUI logs to SPENDR_LOG_FILE or nowhere; subcommands log to stderr.
func (a *App) open(cmd *cobra.Command) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	opts := logging.Options{Level: a.Config.Level(), File: a.Config.LogFile, Component: cmd.Name()}
	if cmd != cmd.Root() || !a.interactive() {
		opts.Fallback = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	s, err := store.New(a.Config.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = s

	prefs, err := a.Config.Resolve(s)
	if err != nil {
		return fmt.Errorf("resolve preferences: %w", err)
	}
	a.prefs = prefs
	a.logger.Debug("store opened", "path", a.Config.DBPath, "currency", prefs.Currency, "empty_selection", prefs.EmptySelection)
	return nil
}

// Close releases the store and the log file. It is safe to call when
// nothing was opened.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

func (a *App) series() (*spending.TimeSeriesStore, error) {
	series, err := a.store.TimeSeries(spending.WithEmptySelectionPolicy(a.prefs.EmptySelection))
	if err != nil {
		a.logger.Error("load time series", "error", err)
		return nil, err
	}
	return series, nil
}

// selection turns a --month flag into a Selection. Empty means none.
func selection(month string) (spending.Selection, error) {
	if month == "" {
		return spending.Selection{}, nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return spending.Selection{}, fmt.Errorf("invalid month %q: use YYYY-MM", month)
	}
	return spending.NewSelection(t), nil
}

func runProgram(s *store.Store, prefs config.Preferences, logger *slog.Logger) error {
	p := tea.NewProgram(tui.NewApp(s, prefs, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
