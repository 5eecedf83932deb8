package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

var (
	cellsRows    int
	cellsCols    int
	cellsNoColor bool
)

var cellsCmd = &cobra.Command{
	Use:   "cells",
	Short: "Print the matrix as plain text",
	Long: `Prints every bucket of the matrix with the cards that fit in a cell,
followed by bucket statistics. Cells holding more records than fit end with a
"+N more" line.

When the field selectors do not resolve, the status of each selector is
printed instead and the command fails.`,
	RunE: runCells,
}

func init() {
	cellsCmd.Flags().IntVar(&cellsRows, "rows", 0, "card rows per cell (1-4, default from config)")
	cellsCmd.Flags().IntVar(&cellsCols, "cols", 0, "card columns per cell (1-4, default from config)")
	cellsCmd.Flags().BoolVar(&cellsNoColor, "no-color", false, "omit card colors")
}

func runCells(cmd *cobra.Command, args []string) error {
	if err := checkSource(cfg); err != nil {
		return err
	}
	table, err := loadTable(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	d := cfg.Display()
	var actions []settings.Action
	if cellsRows > 0 {
		actions = append(actions, settings.Rows(cellsRows))
	}
	if cellsCols > 0 {
		actions = append(actions, settings.Cols(cellsCols))
	}
	if cellsNoColor {
		actions = append(actions, settings.ColorEnabled(false))
	}
	d = d.ApplyAll(actions...)

	logger.Debug("printing cells", zap.Int("records", len(table.Records)), zap.Int("capacity", d.Capacity()))
	return writeCells(cmd.OutOrStdout(), table, cfg.Selection(), d)
}

// writeCells prints the matrix, or the selector statuses when it cannot be
// built.
func writeCells(w io.Writer, table *model.Table, sel matrix.Selection, d settings.Display) error {
	m, res, err := matrix.Compute(table, sel)
	if err != nil {
		var nce *matrix.NotConfiguredError
		if !errors.As(err, &nce) {
			return err
		}
		fmt.Fprintln(w, "Matrix not configured")
		for _, s := range nce.Statuses {
			mark := "·"
			switch {
			case s.OK():
				mark = "✓"
			case s.Required:
				mark = "✗"
			}
			fmt.Fprintf(w, "  %s %s\n", mark, s.String())
		}
		return err
	}

	fmt.Fprintf(w, "%s: rows by %s, columns by %s\n", tableTitle(table), res.Row.Name, res.Column.Name)
	if m.IsEmpty() {
		fmt.Fprintln(w, "\nNo rows or columns to show.")
		return nil
	}

	colors := matrix.ColorSourcesFor(table, d, res.Color)
	for _, row := range m.Rows {
		for _, col := range m.Columns {
			cell := matrix.LayoutFor(m.Bucket(row, col), d)
			fmt.Fprintf(w, "\n%s × %s (%d)\n", row, col, len(cell.All))
			for _, rec := range cell.Visible {
				fmt.Fprintf(w, "  %s\n", cardLine(rec, res, colors))
			}
			if cell.HasOverflow {
				fmt.Fprintf(w, "  +%d more\n", cell.OverflowCount)
			}
		}
	}

	if spec, ok := matrix.Legend(table, d, res.Color); ok {
		parts := make([]string, 0, len(spec.Entries))
		for _, e := range spec.Entries {
			parts = append(parts, fmt.Sprintf("%s %s", e.Name, e.Hex))
		}
		fmt.Fprintf(w, "\nLegend (%s): %s\n", spec.Field.Name, strings.Join(parts, ", "))
	}

	s := matrix.Summarize(m)
	fmt.Fprintf(w, "\n%d rows × %d columns · %d buckets (%d empty) · %d records in %d placements · max %d · mean %.2f · sd %.2f\n",
		s.Rows, s.Columns, s.Buckets, s.Empty, s.Records, s.Placements, s.MaxBucket, s.Mean, s.StdDev)
	return nil
}

func cardLine(rec model.RecordView, res matrix.Resolved, colors matrix.ColorSources) string {
	name := rec.String(res.Primary.ID)
	if name == "" {
		name = "Unnamed record"
	}
	if c, ok := matrix.ResolveAccent(rec, colors); ok {
		return fmt.Sprintf("%s [%s %s]", name, c.Name, c.Hex())
	}
	return name
}

func tableTitle(t *model.Table) string {
	if t.Name == "" {
		return "table"
	}
	return t.Name
}
