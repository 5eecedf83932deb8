package export

// Pixel layout shared by the PNG and SVG backends. Text uses a 7x13 bitmap
// font in PNG and a monospace font of the same advance in SVG.
const (
	margin     = 16
	titleH     = 28
	headerW    = 140
	headerH    = 28
	cardW      = 150
	cardH      = 24
	gap        = 4
	cellPad    = 6
	accentW    = 4
	legendRowH = 18
	swatch     = 12
	charW      = 7
	minWidth   = 320
)

// Colors used by both backends
const (
	colorBackground = "#ffffff"
	colorGrid       = "#d0d0d0"
	colorHeader     = "#f0f0f0"
	colorCard       = "#f7f7f7"
	colorCardBorder = "#dddddd"
	colorText       = "#333333"
	colorMuted      = "#777777"
	colorOverflow   = "#e6e6e6"
)

type geometry struct {
	cellW, cellH  int
	width, height int
	gridTop       int
	legendTop     int
}

func layout(s Sheet) geometry {
	cols, rows := s.ColsPerCell, s.RowsPerCell
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := geometry{
		cellW: 2*cellPad + cols*cardW + (cols-1)*gap,
		cellH: 2*cellPad + rows*cardH + (rows-1)*gap,
	}
	g.gridTop = margin + titleH
	g.width = 2*margin + headerW + len(s.Columns)*g.cellW
	if g.width < minWidth {
		g.width = minWidth
	}
	g.legendTop = g.gridTop + headerH + len(s.Rows)*g.cellH + margin
	g.height = g.legendTop + margin
	if s.Legend != nil {
		g.height += legendRowH * (len(s.Legend.Entries) + 1)
	}
	return g
}

// cellOrigin is the top-left corner of cell (i, j)
func (g geometry) cellOrigin(i, j int) (int, int) {
	return margin + headerW + j*g.cellW, g.gridTop + headerH + i*g.cellH
}

// slot is the top-left corner of the k-th card slot inside a cell, filling
// rows left to right.
func (g geometry) slot(s Sheet, i, j, k int) (int, int) {
	x, y := g.cellOrigin(i, j)
	cols := s.ColsPerCell
	if cols < 1 {
		cols = 1
	}
	r, c := k/cols, k%cols
	return x + cellPad + c*(cardW+gap), y + cellPad + r*(cardH+gap)
}

// textCells is how many font cells fit in a pixel width
func textCells(px int) int {
	return px / charW
}
