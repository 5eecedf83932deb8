package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// visibleGrid is how many rows and columns of cells fit on screen
func (m Model) visibleGrid() (rows, cols int) {
	gridWidth := m.width
	if m.showStats && m.width >= BreakpointMedium {
		gridWidth -= StatsPanelWidth
	}
	cols = (gridWidth - RowHeaderWidth) / cellOuterWidth(m.display.ColsPerCell)
	rows = (m.height - chromeHeight - m.legendHeight()) / cellOuterHeight(m.display.RowsPerCell)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return rows, cols
}

// scrollToCursor moves the viewport offsets so the cursor cell is on screen
func (m *Model) scrollToCursor() {
	rows, cols := m.visibleGrid()
	m.rowOffset = scrollOffset(m.rowOffset, m.cursorRow, rows)
	m.colOffset = scrollOffset(m.colOffset, m.cursorCol, cols)
}

func scrollOffset(offset, cursor, visible int) int {
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m Model) baseView() string {
	t := m.theme
	var sections []string
	sections = append(sections, m.renderHeader())

	var body string
	switch {
	case m.err != nil && len(m.statuses) > 0:
		body = RenderNotConfigured(m.statuses, m.opts.ConfigPath, t)
	case m.err != nil:
		body = t.Renderer.NewStyle().Foreground(t.Danger).Render("Error: " + m.err.Error())
	case m.matrix.IsEmpty():
		body = t.Renderer.NewStyle().Foreground(t.Muted).Italic(true).
			Render("No rows or columns to show. Check the grouping fields or static labels.")
	default:
		body = m.renderGrid()
		if legend := m.renderLegend(); legend != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, legend)
		}
	}

	if m.showStats && m.matrix != nil {
		panel := RenderStatsPanel(m.tableName(), m.matrix, StatsPanelWidth, t)
		if m.width >= BreakpointMedium {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panel)
		} else {
			body = panel
		}
	}
	sections = append(sections, body, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) tableName() string {
	if m.table == nil || m.table.Name == "" {
		return "table"
	}
	return m.table.Name
}

func (m Model) renderHeader() string {
	t := m.theme
	title := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render("mxv · " + m.tableName())
	var axes string
	if m.resolved.Row != nil && m.resolved.Column != nil {
		mode := "field labels"
		if m.sel.LabelSource.IsStatic() {
			mode = "static labels"
		}
		axes = t.Renderer.NewStyle().Foreground(t.Muted).Render(
			fmt.Sprintf("  rows: %s · columns: %s · %s", m.resolved.Row.Name, m.resolved.Column.Name, mode))
	}
	return title + axes
}

func (m Model) renderGrid() string {
	t := m.theme
	visRows, visCols := m.visibleGrid()
	rowEnd := min(m.rowOffset+visRows, len(m.matrix.Rows))
	colEnd := min(m.colOffset+visCols, len(m.matrix.Columns))
	outerW := cellOuterWidth(m.display.ColsPerCell)
	outerH := cellOuterHeight(m.display.RowsPerCell)
	colors := matrix.ColorSourcesFor(m.table, m.display, m.resolved.Color)

	headerStyle := t.Renderer.NewStyle().Bold(true).Foreground(t.Secondary)
	activeHeader := headerStyle.Foreground(t.Primary)

	colHeaders := []string{strings.Repeat(" ", RowHeaderWidth)}
	for j := m.colOffset; j < colEnd; j++ {
		style := headerStyle
		if j == m.cursorCol {
			style = activeHeader
		}
		colHeaders = append(colHeaders, style.Render(pad(" "+m.matrix.Columns[j], outerW)))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, colHeaders...)}

	for i := m.rowOffset; i < rowEnd; i++ {
		row := m.matrix.Rows[i]
		style := headerStyle
		if i == m.cursorRow {
			style = activeHeader
		}
		header := style.Width(RowHeaderWidth).Height(outerH).PaddingTop(1).
			Render(truncate(row, RowHeaderWidth-1))

		cells := []string{header}
		for j := m.colOffset; j < colEnd; j++ {
			col := m.matrix.Columns[j]
			cells = append(cells, m.renderCell(row, col, i == m.cursorRow && j == m.cursorCol, colors))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if hidden := m.hiddenSummary(rowEnd, colEnd); hidden != "" {
		lines = append(lines, t.Renderer.NewStyle().Foreground(t.Muted).Render(hidden))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) hiddenSummary(rowEnd, colEnd int) string {
	var parts []string
	if m.rowOffset > 0 || rowEnd < len(m.matrix.Rows) {
		parts = append(parts, fmt.Sprintf("rows %d-%d of %d", m.rowOffset+1, rowEnd, len(m.matrix.Rows)))
	}
	if m.colOffset > 0 || colEnd < len(m.matrix.Columns) {
		parts = append(parts, fmt.Sprintf("columns %d-%d of %d", m.colOffset+1, colEnd, len(m.matrix.Columns)))
	}
	return strings.Join(parts, " · ")
}

// renderCell lays the bucket out in the settings grid: cards fill rows left
// to right, and a full cell gives its last slot to the overflow badge.
func (m Model) renderCell(row, col string, focused bool, colors matrix.ColorSources) string {
	cell := matrix.LayoutFor(m.matrix.Bucket(row, col), m.display)

	lines := make([]string, cell.Rows)
	for r := 0; r < cell.Rows; r++ {
		slots := make([]string, cell.Cols)
		for c := 0; c < cell.Cols; c++ {
			k := r*cell.Cols + c
			switch {
			case k < len(cell.Visible):
				slots[c] = m.renderCard(cell.Visible[k], colors)
			case k == len(cell.Visible) && cell.HasOverflow:
				slots[c] = RenderOverflowBadge(cell.OverflowCount, CardWidth, m.theme)
			default:
				slots[c] = strings.Repeat(" ", CardWidth)
			}
		}
		lines[r] = strings.Join(slots, strings.Repeat(" ", CardGap))
	}

	style := m.theme.PanelStyle()
	if focused {
		style = m.theme.FocusedPanelStyle()
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(rec model.RecordView, colors matrix.ColorSources) string {
	hex := ""
	if c, ok := matrix.ResolveAccent(rec, colors); ok {
		hex = c.Hex()
	}
	name := ""
	if m.resolved.Primary != nil {
		name = rec.String(m.resolved.Primary.ID)
	}
	if name == "" {
		name = "Unnamed record"
	}
	title := m.theme.Renderer.NewStyle().Foreground(m.theme.Text).Render(pad(name, CardWidth-1))
	return RenderSwatch(hex, m.theme) + title
}

func (m Model) legendSpec() (matrix.LegendSpec, bool) {
	if m.matrix == nil {
		return matrix.LegendSpec{}, false
	}
	return matrix.Legend(m.table, m.display, m.resolved.Color)
}

func (m Model) legendHeight() int {
	if _, ok := m.legendSpec(); ok {
		return 1
	}
	return 0
}

func (m Model) renderLegend() string {
	spec, ok := m.legendSpec()
	if !ok {
		return ""
	}
	t := m.theme
	parts := []string{t.Renderer.NewStyle().Bold(true).Foreground(t.Subtext).Render(spec.Field.Name + ":")}
	for _, e := range spec.Entries {
		parts = append(parts, RenderSwatch(e.Hex, t)+e.Name)
	}
	return t.Renderer.NewStyle().Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderStatusBar() string {
	t := m.theme
	var info string
	if m.matrix != nil {
		s := m.stats
		info = fmt.Sprintf("%d records · %d buckets (%d empty) · max %d", s.Records, s.Buckets, s.Empty, s.MaxBucket)
	}
	if m.status != "" {
		if info != "" {
			info += " · "
		}
		info += m.status
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	left := t.Renderer.NewStyle().Foreground(t.Subtext).Render(info)
	right := t.Renderer.NewStyle().Foreground(t.Muted).Render(strings.Join(hints, " • "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
