// Package export renders the matrix as a static image. A Sheet is the
// renderer-independent snapshot; PNG and SVG backends draw the same Sheet.
package export

import (
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

// Card is one inline record in a cell
type Card struct {
	ID     string
	Title  string
	Accent string // hex, empty for no accent
}

// SheetCell is one laid out bucket
type SheetCell struct {
	Cards    []Card
	Overflow int // 0 when everything fits
	Total    int
}

// Sheet is a snapshot of the matrix as shown, ready to draw
type Sheet struct {
	Title       string
	Rows        []string
	Columns     []string
	Cells       [][]SheetCell // [row][column]
	RowsPerCell int
	ColsPerCell int
	Legend      *matrix.LegendSpec
}

// NewSheet lays out every bucket of m with the display settings.
func NewSheet(table *model.Table, m *matrix.Matrix, res matrix.Resolved, d settings.Display) Sheet {
	d = d.Normalize()
	sheet := Sheet{
		RowsPerCell: d.RowsPerCell,
		ColsPerCell: d.ColsPerCell,
	}
	if table != nil {
		sheet.Title = table.Name
	}
	if m == nil {
		return sheet
	}
	sheet.Rows = m.Rows
	sheet.Columns = m.Columns

	colors := matrix.ColorSourcesFor(table, d, res.Color)
	primary := ""
	if res.Primary != nil {
		primary = res.Primary.ID
	}

	sheet.Cells = make([][]SheetCell, len(m.Rows))
	for i, row := range m.Rows {
		sheet.Cells[i] = make([]SheetCell, len(m.Columns))
		for j, col := range m.Columns {
			cell := matrix.LayoutFor(m.Bucket(row, col), d)
			sc := SheetCell{Overflow: cell.OverflowCount, Total: len(cell.All)}
			for _, rec := range cell.Visible {
				sc.Cards = append(sc.Cards, newCard(rec, primary, colors))
			}
			sheet.Cells[i][j] = sc
		}
	}

	if legend, ok := matrix.Legend(table, d, res.Color); ok {
		sheet.Legend = &legend
	}
	return sheet
}

func newCard(rec model.RecordView, primary string, colors matrix.ColorSources) Card {
	c := Card{ID: rec.ID()}
	if primary != "" {
		c.Title = rec.String(primary)
	}
	if c.Title == "" {
		c.Title = "Unnamed record"
	}
	if accent, ok := matrix.ResolveAccent(rec, colors); ok {
		c.Accent = accent.Hex()
	}
	return c
}

// fit truncates s to the given number of terminal cells
func fit(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	return runewidth.Truncate(s, cells, "…")
}
