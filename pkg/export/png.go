package export

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// RenderPNG draws the sheet as a PNG image.
func RenderPNG(w io.Writer, s Sheet) error {
	g := layout(s)
	dc := gg.NewContext(g.width, g.height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor(colorBackground)
	dc.Clear()

	title := s.Title
	if title == "" {
		title = "Matrix"
	}
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(fit(title, textCells(g.width-2*margin)), margin, margin+titleH/2, 0, 0.5)

	// column headers
	for j, col := range s.Columns {
		x, _ := g.cellOrigin(0, j)
		y := g.gridTop
		box(dc, x, y, g.cellW, headerH, colorHeader, colorGrid)
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(fit(col, textCells(g.cellW-2*cellPad)), float64(x+cellPad), float64(y+headerH/2), 0, 0.5)
	}

	for i, row := range s.Rows {
		_, y := g.cellOrigin(i, 0)
		box(dc, margin, y, headerW, g.cellH, colorHeader, colorGrid)
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(fit(row, textCells(headerW-2*cellPad)), float64(margin+cellPad), float64(y+g.cellH/2), 0, 0.5)

		for j := range s.Columns {
			x, y := g.cellOrigin(i, j)
			box(dc, x, y, g.cellW, g.cellH, colorBackground, colorGrid)
			if i >= len(s.Cells) || j >= len(s.Cells[i]) {
				continue
			}
			cell := s.Cells[i][j]
			for k, card := range cell.Cards {
				cx, cy := g.slot(s, i, j, k)
				box(dc, cx, cy, cardW, cardH, colorCard, colorCardBorder)
				if card.Accent != "" {
					dc.SetHexColor(card.Accent)
					dc.DrawRectangle(float64(cx), float64(cy), accentW, cardH)
					dc.Fill()
				}
				dc.SetHexColor(colorText)
				dc.DrawStringAnchored(fit(card.Title, textCells(cardW-2*cellPad)), float64(cx+cellPad+accentW), float64(cy+cardH/2), 0, 0.5)
			}
			if cell.Overflow > 0 {
				cx, cy := g.slot(s, i, j, len(cell.Cards))
				box(dc, cx, cy, cardW, cardH, colorOverflow, colorCardBorder)
				dc.SetHexColor(colorMuted)
				dc.DrawStringAnchored(overflowLabel(cell.Overflow), float64(cx+cardW/2), float64(cy+cardH/2), 0.5, 0.5)
			}
		}
	}

	if s.Legend != nil {
		y := g.legendTop
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(fit(s.Legend.Field.Name, textCells(g.width-2*margin)), margin, float64(y+legendRowH/2), 0, 0.5)
		for _, e := range s.Legend.Entries {
			y += legendRowH
			box(dc, margin, y+(legendRowH-swatch)/2, swatch, swatch, e.Hex, colorCardBorder)
			dc.SetHexColor(colorText)
			dc.DrawStringAnchored(fit(e.Name, textCells(g.width-3*margin)), float64(margin+swatch+6), float64(y+legendRowH/2), 0, 0.5)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func box(dc *gg.Context, x, y, w, h int, fill, stroke string) {
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(stroke)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func overflowLabel(n int) string {
	return fmt.Sprintf("+%d", n)
}
