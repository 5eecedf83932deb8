package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// DetailModel is the modal listing every record of one bucket. It opens from
// a cell and always shows the whole bucket, not only the records hidden
// behind the overflow indicator.
type DetailModel struct {
	title   string
	table   *model.Table
	primary string

	all        []RecordItem
	list       list.Model
	filter     textinput.Model
	filtering  bool
	sortByName bool

	expanded bool
	viewport viewport.Model

	width  int
	height int
	theme  Theme
	keys   KeyMap

	closed bool
	status string
	copyFn func(string) error
}

// NewDetailModel builds the modal for bucket (row, col)
func NewDetailModel(row, col string, records []model.RecordView, table *model.Table, res matrix.Resolved, colors matrix.ColorSources, theme Theme, keys KeyMap) DetailModel {
	primary := ""
	if res.Primary != nil {
		primary = res.Primary.ID
	}

	items := make([]RecordItem, 0, len(records))
	for _, rec := range records {
		item := RecordItem{Record: rec}
		if primary != "" {
			item.Name = rec.String(primary)
		}
		if res.Image != nil {
			if files := rec.Attachments(res.Image.ID); len(files) > 0 {
				item.Image = files[0].Filename
				if item.Image == "" {
					item.Image = files[0].URL
				}
			}
		}
		if c, ok := matrix.ResolveAccent(rec, colors); ok {
			item.Accent = c.Hex()
		}
		items = append(items, item)
	}

	ti := textinput.New()
	ti.Placeholder = "Filter records..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "/ "

	l := list.New(toListItems(items), RecordDelegate{Theme: theme, ShowDetails: true}, 60, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return DetailModel{
		title:    fmt.Sprintf("Records for %s × %s", row, col),
		table:    table,
		primary:  primary,
		all:      items,
		list:     l,
		filter:   ti,
		viewport: viewport.New(60, 20),
		theme:    theme,
		keys:     keys,
		copyFn:   clipboard.WriteAll,
	}
}

func toListItems(items []RecordItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Title returns the modal title
func (m DetailModel) Title() string {
	return m.title
}

// Closed reports whether the user dismissed the modal
func (m DetailModel) Closed() bool {
	return m.closed
}

// Expanded reports whether a single record is being shown
func (m DetailModel) Expanded() bool {
	return m.expanded
}

// Items returns the records currently listed, filter applied
func (m DetailModel) Items() []RecordItem {
	listed := m.list.Items()
	out := make([]RecordItem, 0, len(listed))
	for _, it := range listed {
		if ri, ok := it.(RecordItem); ok {
			out = append(out, ri)
		}
	}
	return out
}

// Selected returns the record under the cursor
func (m DetailModel) Selected() (RecordItem, bool) {
	it, ok := m.list.SelectedItem().(RecordItem)
	return it, ok
}

// SetSize sets the space available to the modal
func (m *DetailModel) SetSize(width, height int) {
	m.width, m.height = width, height
	innerW := width - 8
	if innerW > 100 {
		innerW = 100
	}
	if innerW < 20 {
		innerW = 20
	}
	innerH := height - 10
	if innerH < MinContentHeight {
		innerH = MinContentHeight
	}
	m.list.SetDelegate(RecordDelegate{Theme: m.theme, ShowDetails: width >= BreakpointNarrow})
	m.list.SetSize(innerW, innerH)
	m.viewport.Width = innerW
	m.viewport.Height = innerH
	m.filter.Width = innerW - 4
}

// Update handles input
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.expanded {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.filtering {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			cmd := m.applyFilter()
			return m, cmd
		case tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(keyMsg)
		cmd = tea.Batch(cmd, m.applyFilter())
		return m, cmd
	}

	if m.expanded {
		switch {
		case key.Matches(keyMsg, m.keys.Back), key.Matches(keyMsg, m.keys.Open):
			m.expanded = false
			return m, nil
		case key.Matches(keyMsg, m.keys.Copy):
			m.copySelected()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			cmd := m.applyFilter()
			return m, cmd
		}
		m.closed = true
		return m, nil
	case key.Matches(keyMsg, m.keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Open):
		m.expand()
		return m, nil
	case key.Matches(keyMsg, m.keys.Copy):
		m.copySelected()
		return m, nil
	case key.Matches(keyMsg, m.keys.Sort):
		m.sortByName = !m.sortByName
		cmd := m.applyFilter()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(keyMsg)
	return m, cmd
}

// applyFilter rebuilds the listed records from the filter text and sort order
func (m *DetailModel) applyFilter() tea.Cmd {
	base := make([]RecordItem, len(m.all))
	copy(base, m.all)
	if m.sortByName {
		SortRecordItemsByTitle(base)
	}

	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		return m.list.SetItems(toListItems(base))
	}

	searchStrings := make([]string, len(base))
	for i, it := range base {
		searchStrings[i] = it.FilterValue()
	}
	matches := fuzzy.Find(query, searchStrings)

	filtered := make([]RecordItem, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, base[match.Index])
	}
	cmd := m.list.SetItems(toListItems(filtered))
	m.list.Select(0)
	return cmd
}

func (m *DetailModel) expand() {
	item, ok := m.Selected()
	if !ok {
		return
	}
	md := RecordMarkdown(m.table, item.Record, m.primary)
	m.viewport.SetContent(renderMarkdown(md, m.viewport.Width, m.theme.Renderer.HasDarkBackground()))
	m.viewport.GotoTop()
	m.expanded = true
}

func (m *DetailModel) copySelected() {
	item, ok := m.Selected()
	if !ok {
		return
	}
	if err := m.copyFn(item.Record.ID()); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + item.Record.ID()
}

// View renders the modal
func (m DetailModel) View() string {
	t := m.theme
	var b strings.Builder

	titleStyle := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary)
	countStyle := t.Renderer.NewStyle().Foreground(t.Muted)
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d of %d", len(m.list.Items()), len(m.all))))
	if m.sortByName {
		b.WriteString(countStyle.Render(" · by name"))
	}
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.expanded:
		b.WriteString(m.viewport.View())
	case len(m.list.Items()) == 0:
		b.WriteString(countStyle.Render("No matching records"))
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")

	hintStyle := t.Renderer.NewStyle().Faint(true).Italic(true)
	hint := "enter: expand • /: filter • o: sort • y: copy id • esc: close"
	if m.expanded {
		hint = "↑/↓: scroll • y: copy id • esc: back to list"
	}
	if m.status != "" {
		hint = m.status
	}
	b.WriteString(hintStyle.Render(hint))

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(b.String())
}
