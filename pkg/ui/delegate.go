package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecordDelegate renders one record per line: accent, name, id and image
type RecordDelegate struct {
	Theme       Theme
	ShowDetails bool // show the id/image column if true
}

func (d RecordDelegate) Height() int {
	return 1
}

func (d RecordDelegate) Spacing() int {
	return 0
}

func (d RecordDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d RecordDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(RecordItem)
	if !ok {
		return
	}
	t := d.Theme
	selected := index == m.Index()

	cursor := "  "
	if selected {
		cursor = t.Renderer.NewStyle().Foreground(t.Primary).Render("▸ ")
	}
	accent := RenderSwatch(i.Accent, t)

	detailWidth := 0
	detail := ""
	if d.ShowDetails {
		detailWidth = 24
		detail = t.Renderer.NewStyle().Foreground(t.Muted).Render(pad(i.Description(), detailWidth))
	}

	// cursor(2) + accent(1) + gap(1) + detail + gap
	titleWidth := m.Width() - 4 - detailWidth - 1
	if titleWidth < 10 {
		titleWidth = 10
	}
	titleStyle := t.Renderer.NewStyle().Foreground(t.Text)
	if selected {
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	}
	title := titleStyle.Render(pad(i.Title(), titleWidth))

	row := lipgloss.JoinHorizontal(lipgloss.Left, cursor, accent, " ", title)
	if d.ShowDetails {
		row = lipgloss.JoinHorizontal(lipgloss.Left, row, " ", detail)
	}
	fmt.Fprint(w, row)
}
