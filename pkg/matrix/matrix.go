// Package matrix groups host records into a row label × column label grid
// and decides how each grid cell is laid out.
//
// Everything here is a pure function of its inputs: the same records, labels
// and selectors always produce the same matrix, so callers recompute in full
// whenever anything upstream changes.
package matrix

import (
	"sort"
	"time"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// LabelMode selects where axis labels come from
type LabelMode string

const (
	// LabelModeDerived computes axis labels from the records' own values
	LabelModeDerived LabelMode = "field"
	// LabelModeStatic uses the configured fixed label lists
	LabelModeStatic LabelMode = "static"
)

// IsStatic reports whether labels come from configuration. Unknown modes
// behave as derived.
func (m LabelMode) IsStatic() bool {
	return m == LabelModeStatic
}

// LabelExtractor maps a record to zero or more category labels on one axis
type LabelExtractor func(model.RecordView) []string

// SortKeyFunc maps a record to its in-bucket sort key. ok=false means the
// record has no key and sorts as the oldest.
type SortKeyFunc func(model.RecordView) (key time.Time, ok bool)

// FieldLabels extracts labels from a category-list field
func FieldLabels(field string) LabelExtractor {
	return func(r model.RecordView) []string {
		return r.LabelList(field)
	}
}

// Input is everything Build needs. RowLabels and ColumnLabels are only used
// in static mode; derived mode recomputes them from Records.
type Input struct {
	Records      []model.RecordView
	RowLabels    []string
	ColumnLabels []string
	Row          LabelExtractor
	Column       LabelExtractor
	Mode         LabelMode
	SortKey      SortKeyFunc
}

// Matrix is the bucketed grid. Cells holds every Rows × Columns pair,
// including empty buckets.
type Matrix struct {
	Rows    []string
	Columns []string
	Cells   map[string]map[string][]model.RecordView
}

// Bucket returns the records for (row, col), or nil if either label is unknown
func (m *Matrix) Bucket(row, col string) []model.RecordView {
	if m == nil {
		return nil
	}
	cols, ok := m.Cells[row]
	if !ok {
		return nil
	}
	return cols[col]
}

// IsEmpty returns true if the matrix has no rows or no columns
func (m *Matrix) IsEmpty() bool {
	return m == nil || len(m.Rows) == 0 || len(m.Columns) == 0
}

// Placements counts bucket entries; a record in several buckets counts once
// per bucket.
func (m *Matrix) Placements() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, cols := range m.Cells {
		for _, bucket := range cols {
			n += len(bucket)
		}
	}
	return n
}

type entry struct {
	rec    model.RecordView
	key    time.Time
	hasKey bool
}

// Build groups records into the row × column buckets.
//
// A record lands in bucket (r, c) for every known row label r and known column
// label c it carries, so a record with two row labels and two column labels can
// appear in four buckets. Each bucket is sorted newest first by SortKey; the
// sort is stable and keyless records sort last.
func Build(in Input) *Matrix {
	var rows, cols []string
	if in.Mode.IsStatic() {
		rows = uniqueLabels(in.RowLabels)
		cols = uniqueLabels(in.ColumnLabels)
	} else {
		rows = DeriveLabels(in.Records, in.Row)
		cols = DeriveLabels(in.Records, in.Column)
	}

	rowIndex := indexLabels(rows)
	colIndex := indexLabels(cols)

	grid := make([][][]entry, len(rows))
	for i := range grid {
		grid[i] = make([][]entry, len(cols))
	}

	if len(rows) > 0 && len(cols) > 0 {
		for _, rec := range in.Records {
			if rec == nil {
				continue
			}
			rowHits := memberships(rec, in.Row, rowIndex)
			if len(rowHits) == 0 {
				continue
			}
			colHits := memberships(rec, in.Column, colIndex)
			if len(colHits) == 0 {
				continue
			}

			e := entry{rec: rec}
			if in.SortKey != nil {
				e.key, e.hasKey = in.SortKey(rec)
			}
			for _, r := range rowHits {
				for _, c := range colHits {
					grid[r][c] = append(grid[r][c], e)
				}
			}
		}
	}

	m := &Matrix{
		Rows:    rows,
		Columns: cols,
		Cells:   make(map[string]map[string][]model.RecordView, len(rows)),
	}
	for r, row := range rows {
		m.Cells[row] = make(map[string][]model.RecordView, len(cols))
		for c, col := range cols {
			bucket := grid[r][c]
			sortNewestFirst(bucket)
			recs := make([]model.RecordView, len(bucket))
			for i, e := range bucket {
				recs[i] = e.rec
			}
			m.Cells[row][col] = recs
		}
	}
	return m
}

// memberships returns the axis positions of the record's labels, each at most
// once, in the order the record lists them.
func memberships(rec model.RecordView, extract LabelExtractor, index map[string]int) []int {
	if extract == nil {
		return nil
	}
	labels := extract(rec)
	if len(labels) == 0 {
		return nil
	}
	hits := make([]int, 0, len(labels))
	seen := make(map[int]bool, len(labels))
	for _, label := range labels {
		pos, ok := index[label]
		if !ok || seen[pos] {
			continue
		}
		seen[pos] = true
		hits = append(hits, pos)
	}
	return hits
}

func indexLabels(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return index
}

func sortNewestFirst(bucket []entry) {
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		if a.hasKey != b.hasKey {
			return a.hasKey
		}
		if !a.hasKey {
			return false
		}
		return a.key.After(b.key)
	})
}
