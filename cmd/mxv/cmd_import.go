package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/loader"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/store"
)

var (
	importTable  string
	importDriver string
)

var importCmd = &cobra.Command{
	Use:   "import [records.jsonl] [database]",
	Short: "Copy a JSONL export into a sqlite record source",
	Long: `Loads a JSONL export (and its schema sidecar, if any) and stores the
table in a sqlite database. An existing table of the same name is replaced.

Point the config at the database afterwards:
  source:
    kind: sqlite
    path: records.db
    table: records`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importTable, "table", "", "table name in the database (default from config)")
	importCmd.Flags().StringVar(&importDriver, "driver", "", "sqlite driver: sqlite3 (cgo) or sqlite (pure Go)")
}

func runImport(cmd *cobra.Command, args []string) error {
	src, dbPath := args[0], args[1]
	name := importTable
	if name == "" {
		name = cfg.Source.Table
	}
	driver := importDriver
	if driver == "" {
		driver = cfg.Source.Driver
	}

	table, err := loader.LoadTableFromFile(src, loader.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	db, err := store.OpenDB(dbPath, driver, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Import(cmd.Context(), name, table); err != nil {
		return err
	}
	logger.Info("imported table", zap.String("db", dbPath), zap.String("table", name), zap.Int("records", len(table.Records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (table %s)\n", len(table.Records), dbPath, name)
	return nil
}
