package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// THEME - Dracula-inspired, adaptive to light terminals
// ══════════════════════════════════════════════════════════════════════════════

// Theme carries the renderer and the semantic colors of the UI
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Overflow  lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard theme bound to a renderer
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Text:      lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#444444", Dark: "#BFBFBF"},
		Muted:     lipgloss.AdaptiveColor{Light: "#888888", Dark: "#6272A4"},
		Border:    lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#363949"},
		Success:   lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#50FA7B"},
		Warning:   lipgloss.AdaptiveColor{Light: "#C77700", Dark: "#FFB86C"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Overflow:  lipgloss.AdaptiveColor{Light: "#AA5500", Dark: "#F1FA8C"},
	}
}

// PanelStyle is the border of an unfocused cell or panel
func (t Theme) PanelStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
}

// FocusedPanelStyle is the border of the cell under the cursor
func (t Theme) FocusedPanelStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary)
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGES AND SWATCHES
// ══════════════════════════════════════════════════════════════════════════════

// RenderOverflowBadge renders the "+N" indicator that stands in the last slot
// of a full cell
func RenderOverflowBadge(n, width int, t Theme) string {
	label := fmt.Sprintf("+%d more", n)
	if runewidth.StringWidth(label) > width {
		label = fmt.Sprintf("+%d", n)
	}
	return t.Renderer.NewStyle().
		Foreground(t.Overflow).
		Bold(true).
		Render(runewidth.FillRight(runewidth.Truncate(label, width, ""), width))
}

// RenderSwatch renders a colored block for a hex color; empty hex renders a
// blank of the same width
func RenderSwatch(hex string, t Theme) string {
	if hex == "" {
		return " "
	}
	return t.Renderer.NewStyle().Foreground(lipgloss.Color(hex)).Render("▌")
}

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Choose color based on value
	var barColor lipgloss.AdaptiveColor
	switch {
	case value >= 0.75:
		barColor = t.Danger
	case value >= 0.5:
		barColor = t.Warning
	case value >= 0.25:
		barColor = t.Primary
	default:
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND TEXT
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}

// truncate fits s into width terminal cells, marking cuts with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// pad truncates or right-pads s to exactly width cells
func pad(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}
