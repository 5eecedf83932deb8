package matrix

import (
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

// Cell is the inline layout of one bucket.
//
// When the bucket exceeds capacity, the last grid slot becomes an overflow
// indicator showing OverflowCount, and Visible holds capacity-1 records.
// All is always the complete bucket; the detail view lists All, not just the
// hidden remainder.
type Cell struct {
	Visible       []model.RecordView
	OverflowCount int
	HasOverflow   bool
	All           []model.RecordView
	Rows          int
	Cols          int
}

// Capacity is the number of grid slots in the cell
func (c Cell) Capacity() int {
	return c.Rows * c.Cols
}

// Slots is the number of occupied grid slots, the overflow indicator included
func (c Cell) Slots() int {
	if c.HasOverflow {
		return len(c.Visible) + 1
	}
	return len(c.Visible)
}

// LayoutCell decides which records of a sorted bucket show inline.
// Dimensions outside [settings.MinPerCell, settings.MaxPerCell] are clamped.
func LayoutCell(bucket []model.RecordView, rowsPerCell, colsPerCell int) Cell {
	rows := settings.Clamp(rowsPerCell)
	cols := settings.Clamp(colsPerCell)
	capacity := rows * cols

	cell := Cell{All: bucket, Rows: rows, Cols: cols}
	if len(bucket) <= capacity {
		cell.Visible = bucket
		return cell
	}

	shown := capacity - 1
	cell.Visible = bucket[:shown:shown]
	cell.HasOverflow = true
	cell.OverflowCount = len(bucket) - shown
	return cell
}

// LayoutFor lays out a bucket with the grid from the display settings
func LayoutFor(bucket []model.RecordView, d settings.Display) Cell {
	return LayoutCell(bucket, d.RowsPerCell, d.ColsPerCell)
}

// ColorSources says where card accents come from
type ColorSources struct {
	Enabled  bool
	Override string // field ID chosen in the settings menu
	Default  string // field ID configured by the host
}

// ColorSourcesFor builds ColorSources from settings and the resolved default
// color field. The override is resolved against the table so that names work.
func ColorSourcesFor(table *model.Table, d settings.Display, defaultField *model.Field) ColorSources {
	src := ColorSources{Enabled: d.ColorEnabled}
	if f := table.FieldByIDIfExists(d.ColorSource); f != nil {
		src.Override = f.ID
	}
	if defaultField != nil {
		src.Default = defaultField.ID
	}
	return src
}

// ResolveAccent picks a record's card color: the override field first, then
// the default field. No color from either means no accent.
func ResolveAccent(rec model.RecordView, src ColorSources) (model.Color, bool) {
	if !src.Enabled || rec == nil {
		return model.Color{}, false
	}
	if src.Override != "" {
		if c, ok := rec.Color(src.Override); ok {
			return c, true
		}
	}
	if src.Default != "" && src.Default != src.Override {
		if c, ok := rec.Color(src.Default); ok {
			return c, true
		}
	}
	return model.Color{}, false
}

// LegendEntry is one swatch of the legend
type LegendEntry struct {
	Name string
	Hex  string
}

// LegendSpec is the legend of the active color field
type LegendSpec struct {
	Field   model.Field
	Entries []LegendEntry
}

// legendFallbackHex is used for choices without a known color token
const legendFallbackHex = "#cccccc"

// Legend describes the legend to show, if any. The override color field wins
// over the default one, matching ResolveAccent.
func Legend(table *model.Table, d settings.Display, defaultField *model.Field) (LegendSpec, bool) {
	if !d.ColorEnabled || !d.LegendVisible {
		return LegendSpec{}, false
	}
	field := table.FieldByIDIfExists(d.ColorSource)
	if field == nil {
		field = defaultField
	}
	if field == nil {
		return LegendSpec{}, false
	}
	spec := LegendSpec{Field: *field}
	for _, ch := range field.Choices {
		hex, ok := model.HexForToken(ch.Color)
		if !ok {
			hex = legendFallbackHex
		}
		spec.Entries = append(spec.Entries, LegendEntry{Name: ch.Name, Hex: hex})
	}
	return spec, true
}
