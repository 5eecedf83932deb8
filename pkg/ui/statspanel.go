package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
)

// RenderStatsHeaderBox renders the double-lined header of the stats panel.
func RenderStatsHeaderBox(title, typeLabel string, width int, theme Theme, color lipgloss.TerminalColor) []string {
	headerStyle := theme.Renderer.NewStyle().Bold(true).Foreground(color)

	boxWidth := width - SpaceLG
	if boxWidth < 20 {
		boxWidth = 20
	}

	topBorder := "╔" + strings.Repeat("═", boxWidth-2) + "╗"
	bottomBorder := "╚" + strings.Repeat("═", boxWidth-2) + "╝"

	// "║ " + content + " ║"
	contentWidth := boxWidth - 4
	titleContent := pad(fmt.Sprintf("%s %s", typeLabel, title), contentWidth)
	titleLine := "║ " + titleContent + " ║"

	return []string{
		headerStyle.Render(topBorder),
		headerStyle.Render(titleLine),
		headerStyle.Render(bottomBorder),
	}
}

// RenderStatsLines lists the bucket statistics of a matrix
func RenderStatsLines(s matrix.Stats, theme Theme) []string {
	label := theme.Renderer.NewStyle().Foreground(theme.Subtext)
	value := theme.Renderer.NewStyle().Foreground(theme.Text).Bold(true)
	line := func(name string, v string) string {
		return "   " + label.Render(fmt.Sprintf("%-12s", name)) + value.Render(v)
	}
	return []string{
		line("Records:", fmt.Sprintf("%d", s.Records)),
		line("Placements:", fmt.Sprintf("%d", s.Placements)),
		line("Buckets:", fmt.Sprintf("%d (%d×%d)", s.Buckets, s.Rows, s.Columns)),
		line("Empty:", fmt.Sprintf("%d", s.Empty)),
		line("Largest:", fmt.Sprintf("%d", s.MaxBucket)),
		line("Mean:", fmt.Sprintf("%.1f ± %.1f", s.Mean, s.StdDev)),
	}
}

// RenderRowBars renders one mini bar per row: how many placements the row
// holds relative to the fullest row.
func RenderRowBars(m *matrix.Matrix, width int, theme Theme) []string {
	if m == nil || len(m.Rows) == 0 {
		return nil
	}
	counts := make([]int, len(m.Rows))
	most := 0
	for i, row := range m.Rows {
		for _, col := range m.Columns {
			counts[i] += len(m.Bucket(row, col))
		}
		if counts[i] > most {
			most = counts[i]
		}
	}
	if most == 0 {
		most = 1
	}

	labelWidth := 14
	barWidth := width - labelWidth - 10
	if barWidth < 5 {
		barWidth = 5
	}
	lines := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		bar := RenderMiniBar(float64(counts[i])/float64(most), barWidth, theme)
		lines[i] = fmt.Sprintf("   %s %s %3d", pad(row, labelWidth), bar, counts[i])
	}
	return lines
}

// RenderStatsPanel renders the full stats panel
func RenderStatsPanel(title string, m *matrix.Matrix, width int, theme Theme) string {
	lines := RenderStatsHeaderBox(title, "MATRIX:", width, theme, theme.Primary)
	lines = append(lines, "")
	lines = append(lines, RenderStatsLines(matrix.Summarize(m), theme)...)
	if bars := RenderRowBars(m, width, theme); len(bars) > 0 {
		lines = append(lines, "", theme.Renderer.NewStyle().Bold(true).Foreground(theme.Secondary).Render("   ROWS"))
		lines = append(lines, bars...)
	}
	return strings.Join(lines, "\n")
}
