// Package ui is the bubbletea front end: the matrix grid, the bucket detail
// modal, the settings form and the overlays around them.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/export"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

// ReloadMsg carries a freshly loaded table, e.g. from the file watcher
type ReloadMsg struct {
	Table *model.Table
	Err   error
}

type exportDoneMsg struct {
	paths []string
	err   error
}

// Options configures the model
type Options struct {
	Theme      *Theme
	Keys       *KeyMap
	Reload     func() (*model.Table, error)
	ExportDir  string
	ConfigPath string
	Logger     *zap.Logger
	Now        func() time.Time
}

// Model is the top-level bubbletea model
type Model struct {
	table    *model.Table
	sel      matrix.Selection
	display  settings.Display
	matrix   *matrix.Matrix
	resolved matrix.Resolved
	err      error
	statuses []matrix.FieldStatus
	stats    matrix.Stats

	cursorRow int
	cursorCol int
	rowOffset int
	colOffset int

	width  int
	height int
	theme  Theme
	keys   KeyMap

	help      HelpOverlayModel
	detail    *DetailModel
	form      *SettingsForm
	showStats bool
	status    string

	opts   Options
	logger *zap.Logger
}

// NewModel builds the model and computes the initial matrix
func NewModel(table *model.Table, sel matrix.Selection, display settings.Display, opts Options) Model {
	theme := DefaultTheme(nil)
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		table:   table,
		sel:     sel,
		display: display.Normalize(),
		width:   120,
		height:  40,
		theme:   theme,
		keys:    keys,
		help:    NewHelpOverlayModel(theme, keys),
		opts:    opts,
		logger:  logger,
	}
	m.recompute()
	return m
}

// recompute rebuilds the buckets. Only records and selectors feed the
// grouping; display settings are applied per render.
func (m *Model) recompute() {
	mx, res, err := matrix.Compute(m.table, m.sel)
	m.matrix, m.resolved, m.err = mx, res, err
	m.statuses = nil
	if err != nil {
		var nce *matrix.NotConfiguredError
		if errors.As(err, &nce) {
			m.statuses = nce.Statuses
		}
		m.stats = matrix.Stats{}
		m.logger.Warn("matrix not built", zap.Error(err))
	} else {
		m.stats = matrix.Summarize(mx)
		m.logger.Debug("matrix built",
			zap.Int("rows", m.stats.Rows),
			zap.Int("columns", m.stats.Columns),
			zap.Int("placements", m.stats.Placements))
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	rows, cols := 0, 0
	if m.matrix != nil {
		rows, cols = len(m.matrix.Rows), len(m.matrix.Columns)
	}
	m.cursorRow = clampIndex(m.cursorRow, rows)
	m.cursorCol = clampIndex(m.cursorCol, cols)
	m.scrollToCursor()
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Matrix returns the current buckets, nil when not configured
func (m Model) Matrix() *matrix.Matrix {
	return m.matrix
}

// Err returns the configuration error, if any
func (m Model) Err() error {
	return m.err
}

// Display returns the current display settings
func (m Model) Display() settings.Display {
	return m.display
}

// Cursor returns the selected (row, column) indexes
func (m Model) Cursor() (int, int) {
	return m.cursorRow, m.cursorCol
}

// Detail returns the open bucket modal, if any
func (m Model) Detail() (DetailModel, bool) {
	if m.detail == nil {
		return DetailModel{}, false
	}
	return *m.detail, true
}

// Status returns the last status message
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		if m.detail != nil {
			m.detail.SetSize(msg.Width, msg.Height)
		}
		m.scrollToCursor()
		return m, nil

	case ReloadMsg:
		if msg.Err == nil && msg.Table == nil {
			msg.Err = errors.New("no table")
		}
		if msg.Err != nil {
			m.status = "Reload failed: " + msg.Err.Error()
			m.logger.Error("reload failed", zap.Error(msg.Err))
			return m, nil
		}
		m.table = msg.Table
		m.recompute()
		// the open bucket may no longer exist
		m.detail = nil
		m.status = fmt.Sprintf("Reloaded %d records", len(m.table.Records))
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
			m.logger.Error("export failed", zap.Error(msg.err))
		} else {
			m.status = "Exported " + strings.Join(msg.paths, ", ")
		}
		return m, nil
	}

	if m.form != nil {
		f, cmd := m.form.Update(msg)
		switch {
		case f.Done():
			m.display = m.display.ApplyAll(f.Actions()...)
			m.form = nil
			m.status = "Settings updated"
			m.scrollToCursor()
			return m, nil
		case f.Aborted():
			m.form = nil
			return m, nil
		}
		m.form = &f
		return m, cmd
	}

	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.detail != nil {
		d, cmd := m.detail.Update(msg)
		if d.Closed() {
			m.detail = nil
			return m, nil
		}
		m.detail = &d
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleKey(keyMsg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Open):
		m.openDetail()
	case key.Matches(msg, m.keys.Settings):
		f := NewSettingsForm(m.display, m.table)
		m.form = &f
		return m, f.Init()
	case key.Matches(msg, m.keys.Color):
		m.display = m.display.Apply(settings.ColorEnabled(!m.display.ColorEnabled))
	case key.Matches(msg, m.keys.Legend):
		if !m.display.ColorEnabled {
			m.status = "Legend needs card colors (press c)"
			break
		}
		m.display = m.display.Apply(settings.LegendVisible(!m.display.LegendVisible))
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	case key.Matches(msg, m.keys.Reload):
		return m.startReload()
	}
	return m, nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	if m.matrix == nil {
		return
	}
	m.cursorRow = clampIndex(m.cursorRow+dRow, len(m.matrix.Rows))
	m.cursorCol = clampIndex(m.cursorCol+dCol, len(m.matrix.Columns))
	m.scrollToCursor()
}

// openDetail opens the modal on the bucket under the cursor. The modal lists
// the full bucket whether or not the cell overflows.
func (m *Model) openDetail() {
	if m.matrix.IsEmpty() {
		return
	}
	row := m.matrix.Rows[m.cursorRow]
	col := m.matrix.Columns[m.cursorCol]
	cell := matrix.LayoutFor(m.matrix.Bucket(row, col), m.display)
	if len(cell.All) == 0 {
		m.status = "No records in " + row + " × " + col
		return
	}
	colors := matrix.ColorSourcesFor(m.table, m.display, m.resolved.Color)
	d := NewDetailModel(row, col, cell.All, m.table, m.resolved, colors, m.theme, m.keys)
	d.SetSize(m.width, m.height)
	m.detail = &d
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.matrix == nil {
		m.status = "Nothing to export"
		return m, nil
	}
	sheet := export.NewSheet(m.table, m.matrix, m.resolved, m.display)
	dir, now, logger := m.opts.ExportDir, m.opts.Now(), m.logger
	m.status = "Exporting..."
	return m, func() tea.Msg {
		paths, err := export.WriteFiles(context.Background(), dir, sheet, now, logger)
		return exportDoneMsg{paths: paths, err: err}
	}
}

func (m Model) startReload() (tea.Model, tea.Cmd) {
	reload := m.opts.Reload
	if reload == nil {
		m.status = "No reload source"
		return m, nil
	}
	m.status = "Reloading..."
	return m, func() tea.Msg {
		t, err := reload()
		return ReloadMsg{Table: t, Err: err}
	}
}

// View implements tea.Model
func (m Model) View() string {
	base := m.baseView()

	var overlay string
	switch {
	case m.form != nil:
		overlay = m.theme.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.theme.Primary).
			Padding(1, 2).
			Render(m.form.View())
	case m.help.IsVisible():
		overlay = m.help.View()
	case m.detail != nil:
		overlay = m.detail.View()
	}
	if overlay == "" {
		return base
	}
	return m.theme.Renderer.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}
