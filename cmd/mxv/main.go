// Command mxv shows the records of one table as a row × column matrix.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/config"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/loader"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/store"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/ui"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/updater"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/watcher"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mxv",
	Short: "Matrix viewer for tabular records",
	Long: `mxv groups the records of one table by two category fields and shows
them as a grid: one row per row label, one column per column label, and the
matching records as cards in each cell.

Run without arguments to start the interactive viewer. Field selectors and the
record source are read from the config file (default .mxv/config.yaml).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			logger = zap.NewNop()
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = buildLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("config loaded", zap.String("path", configPath), zap.String("source", cfg.Source.Path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runViewer,
}

var checkUpdates bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mxv version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mxv version %s\n", version)
		if !checkUpdates {
			return nil
		}
		rel, err := updater.New().CheckForUpdates(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if rel == nil {
			fmt.Fprintln(out, "Up to date")
			return nil
		}
		fmt.Fprintf(out, "Update available: %s (%s)\n", rel.TagName, rel.HTMLURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	versionCmd.Flags().BoolVar(&checkUpdates, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd, cellsCmd, exportCmd, importCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// buildLogger writes JSON logs to the configured file, since the TUI owns
// stdout.
func buildLogger(c config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if c.File != "" {
		zc.OutputPaths = []string{c.File}
		zc.ErrorOutputPaths = []string{c.File}
	}
	return zc.Build()
}

// loadTable reads the configured record source
func loadTable(ctx context.Context, c *config.Config) (*model.Table, error) {
	switch c.Source.Kind {
	case config.SourceSQLite:
		db, err := store.OpenDB(c.Source.Path, c.Source.Driver, logger)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadTable(ctx, c.Source.Table)
	default:
		return loader.LoadTableFromFile(c.Source.Path, loader.WithLogger(logger))
	}
}

// checkSource rejects broken source settings. Unset field selectors are not
// an error here; they are reported on the not-configured screen.
func checkSource(c *config.Config) error {
	if err := c.Validate(); err != nil && !errors.Is(err, matrix.ErrNotConfigured) {
		return err
	}
	return nil
}

// watchedFiles is the source file plus, for JSONL, its schema sidecar
func watchedFiles(c *config.Config) []string {
	files := []string{c.Source.Path}
	if c.Source.Kind != config.SourceSQLite {
		files = append(files, loader.SchemaPath(c.Source.Path))
	}
	return files
}

func runViewer(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Info("stdout is not a terminal, printing cells")
		return runCells(cmd, args)
	}
	if err := checkSource(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	table, err := loadTable(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	reload := func() (*model.Table, error) {
		return loadTable(ctx, cfg)
	}
	m := ui.NewModel(table, cfg.Selection(), cfg.Display(), ui.Options{
		Reload:     reload,
		ExportDir:  ".",
		ConfigPath: configPath,
		Logger:     logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.Watch {
		w, err := watcher.New(watchedFiles(cfg), func() {
			t, err := reload()
			p.Send(ui.ReloadMsg{Table: t, Err: err})
		}, watcher.Options{Logger: logger})
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
