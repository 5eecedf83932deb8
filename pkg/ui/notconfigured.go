package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
)

// RenderNotConfigured explains which selectors block the matrix. It replaces
// the grid whenever Compute reports matrix.ErrNotConfigured.
func RenderNotConfigured(statuses []matrix.FieldStatus, configPath string, theme Theme) string {
	var b strings.Builder

	titleStyle := theme.Renderer.NewStyle().Bold(true).Foreground(theme.Warning)
	b.WriteString(titleStyle.Render("Matrix not configured"))
	b.WriteString("\n\n")

	okStyle := theme.Renderer.NewStyle().Foreground(theme.Success)
	badStyle := theme.Renderer.NewStyle().Foreground(theme.Danger)
	optStyle := theme.Renderer.NewStyle().Foreground(theme.Muted)
	for _, s := range statuses {
		var mark string
		switch {
		case s.OK():
			mark = okStyle.Render("✓")
		case s.Required:
			mark = badStyle.Render("✗")
		default:
			mark = optStyle.Render("·")
		}
		b.WriteString("  " + mark + " " + s.String() + "\n")
	}

	b.WriteString("\n")
	hint := "Set the missing fields in " + configPath + " (by field id or name)."
	if configPath == "" {
		hint = "Set the missing fields in the configuration (by field id or name)."
	}
	b.WriteString(theme.Renderer.NewStyle().Faint(true).Italic(true).Render(hint))

	return theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Warning).
		Padding(1, 2).
		Render(b.String())
}
