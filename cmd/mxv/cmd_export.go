package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/export"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
)

var (
	exportDir     string
	exportFormats []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the matrix to PNG and SVG files",
	Long: `Renders the matrix with the configured cell grid and colors and writes
searchfields-matrix-YYYY-MM-DD.png and .svg (UTC date).

Example:
  mxv export --dir out --format svg`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "output directory")
	exportCmd.Flags().StringSliceVar(&exportFormats, "format", []string{string(export.FormatPNG), string(export.FormatSVG)}, "formats to write (png, svg)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := checkSource(cfg); err != nil {
		return err
	}
	table, err := loadTable(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	m, res, err := matrix.Compute(table, cfg.Selection())
	if err != nil {
		return err
	}

	formats := make([]export.Format, 0, len(exportFormats))
	for _, f := range exportFormats {
		formats = append(formats, export.Format(f))
	}
	sheet := export.NewSheet(table, m, res, cfg.Display())
	paths, err := export.WriteFiles(cmd.Context(), exportDir, sheet, time.Now(), logger, formats...)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
