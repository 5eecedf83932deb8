package ui

// Layout breakpoints for responsive design.
const (
	// BreakpointNarrow is the width below which the record list drops its
	// id/image column.
	BreakpointNarrow = 80

	// BreakpointMedium is the width above which the stats panel sits beside the
	// grid instead of replacing it.
	BreakpointMedium = 120
)

// Grid dimensions (in terminal cells).
const (
	// CardWidth is the width of one inline record card, accent included.
	CardWidth = 18

	// CardGap separates cards within a cell row.
	CardGap = 1

	// RowHeaderWidth is the width of the row label column.
	RowHeaderWidth = 16

	// MinContentHeight is the minimum height for scrollable content areas.
	MinContentHeight = 5

	// StatsPanelWidth is the width of the bucket stats panel.
	StatsPanelWidth = 40

	// chromeHeight is the header, column header and status bar lines around
	// the grid.
	chromeHeight = 4
)

// cellInnerWidth is the width inside a cell's border for cols cards
func cellInnerWidth(cols int) int {
	if cols < 1 {
		cols = 1
	}
	return cols*CardWidth + (cols-1)*CardGap
}

// cellOuterWidth adds the border
func cellOuterWidth(cols int) int {
	return cellInnerWidth(cols) + 2
}

// cellOuterHeight is one line per card row plus the border
func cellOuterHeight(rows int) int {
	if rows < 1 {
		rows = 1
	}
	return rows + 2
}
