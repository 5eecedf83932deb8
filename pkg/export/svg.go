package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	svgFont      = "font-family:monospace;font-size:11px"
	svgTextStyle = svgFont + ";fill:" + colorText
)

// RenderSVG draws the sheet as an SVG document.
func RenderSVG(w io.Writer, s Sheet) error {
	bw := bufio.NewWriter(w)
	g := layout(s)
	canvas := svg.New(bw)
	canvas.Start(g.width, g.height)
	canvas.Rect(0, 0, g.width, g.height, "fill:"+colorBackground)

	title := s.Title
	if title == "" {
		title = "Matrix"
	}
	canvas.Text(margin, margin+titleH/2+4, fit(title, textCells(g.width-2*margin)), svgFont+";font-size:13px;font-weight:bold;fill:"+colorText)

	canvas.Gstyle("stroke:" + colorGrid + ";stroke-width:1")
	for j, col := range s.Columns {
		x, _ := g.cellOrigin(0, j)
		canvas.Rect(x, g.gridTop, g.cellW, headerH, "fill:"+colorHeader)
		canvas.Text(x+cellPad, g.gridTop+headerH/2+4, fit(col, textCells(g.cellW-2*cellPad)), svgTextStyle+";stroke:none")
	}
	for i, row := range s.Rows {
		_, y := g.cellOrigin(i, 0)
		canvas.Rect(margin, y, headerW, g.cellH, "fill:"+colorHeader)
		canvas.Text(margin+cellPad, y+g.cellH/2+4, fit(row, textCells(headerW-2*cellPad)), svgTextStyle+";stroke:none")
		for j := range s.Columns {
			x, y := g.cellOrigin(i, j)
			canvas.Rect(x, y, g.cellW, g.cellH, "fill:"+colorBackground)
		}
	}
	canvas.Gend()

	for i := range s.Rows {
		for j := range s.Columns {
			if i >= len(s.Cells) || j >= len(s.Cells[i]) {
				continue
			}
			cell := s.Cells[i][j]
			for k, card := range cell.Cards {
				cx, cy := g.slot(s, i, j, k)
				canvas.Group(fmt.Sprintf(`data-record="%s"`, html.EscapeString(card.ID)))
				canvas.Rect(cx, cy, cardW, cardH, "fill:"+colorCard+";stroke:"+colorCardBorder)
				if card.Accent != "" {
					canvas.Rect(cx, cy, accentW, cardH, "fill:"+card.Accent)
				}
				canvas.Text(cx+cellPad+accentW, cy+cardH/2+4, fit(card.Title, textCells(cardW-2*cellPad)), svgTextStyle)
				canvas.Gend()
			}
			if cell.Overflow > 0 {
				cx, cy := g.slot(s, i, j, len(cell.Cards))
				canvas.Rect(cx, cy, cardW, cardH, "fill:"+colorOverflow+";stroke:"+colorCardBorder)
				canvas.Text(cx+cardW/2, cy+cardH/2+4, overflowLabel(cell.Overflow), svgFont+";text-anchor:middle;fill:"+colorMuted)
			}
		}
	}

	if s.Legend != nil {
		y := g.legendTop
		canvas.Text(margin, y+legendRowH/2+4, fit(s.Legend.Field.Name, textCells(g.width-2*margin)), svgTextStyle)
		for _, e := range s.Legend.Entries {
			y += legendRowH
			canvas.Rect(margin, y+(legendRowH-swatch)/2, swatch, swatch, "fill:"+e.Hex+";stroke:"+colorCardBorder)
			canvas.Text(margin+swatch+6, y+legendRowH/2+4, fit(e.Name, textCells(g.width-3*margin)), svgTextStyle)
		}
	}

	canvas.End()
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
