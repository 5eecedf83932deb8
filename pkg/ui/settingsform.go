package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

// settingsValues is bound to the form fields. It lives behind a pointer so
// the form keeps writing to the same values while the model is copied.
type settingsValues struct {
	Rows          int
	Cols          int
	ColorEnabled  bool
	ColorSource   string
	LegendVisible bool
}

// SettingsForm edits the display settings of the running session
type SettingsForm struct {
	form   *huh.Form
	values *settingsValues
}

// defaultColorOption stands for "use the configured card color field"
const defaultColorOption = ""

// NewSettingsForm builds a form seeded from the current settings. Color
// source choices are the table's single select fields.
func NewSettingsForm(d settings.Display, table *model.Table) SettingsForm {
	v := &settingsValues{
		Rows:          d.RowsPerCell,
		Cols:          d.ColsPerCell,
		ColorEnabled:  d.ColorEnabled,
		ColorSource:   d.ColorSource,
		LegendVisible: d.LegendVisible,
	}
	// options are keyed by field ID; the setting may hold a name
	if f := table.FieldByIDIfExists(d.ColorSource); f != nil {
		v.ColorSource = f.ID
	}

	colorOptions := []huh.Option[string]{huh.NewOption("Configured default", defaultColorOption)}
	if table != nil {
		for _, f := range table.FieldsOfType(model.FieldType.IsColorSource) {
			colorOptions = append(colorOptions, huh.NewOption(f.Name, f.ID))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Card rows per cell").
				Options(gridOptions()...).
				Value(&v.Rows),
			huh.NewSelect[int]().
				Title("Card columns per cell").
				Options(gridOptions()...).
				Value(&v.Cols),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Color cards").
				Affirmative("On").
				Negative("Off").
				Value(&v.ColorEnabled),
			huh.NewSelect[string]().
				Title("Color by").
				Options(colorOptions...).
				Value(&v.ColorSource),
			huh.NewConfirm().
				Title("Show legend").
				Description("Hidden whenever color is off").
				Affirmative("Show").
				Negative("Hide").
				Value(&v.LegendVisible),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)

	return SettingsForm{form: form, values: v}
}

func gridOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, settings.MaxPerCell-settings.MinPerCell+1)
	for n := settings.MinPerCell; n <= settings.MaxPerCell; n++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(n), n))
	}
	return opts
}

// Init starts the form
func (f SettingsForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards input to the form
func (f SettingsForm) Update(msg tea.Msg) (SettingsForm, tea.Cmd) {
	next, cmd := f.form.Update(msg)
	if form, ok := next.(*huh.Form); ok {
		f.form = form
	}
	return f, cmd
}

// Done reports whether the user submitted the form
func (f SettingsForm) Done() bool {
	return f.form.State == huh.StateCompleted
}

// Aborted reports whether the user cancelled the form
func (f SettingsForm) Aborted() bool {
	return f.form.State == huh.StateAborted
}

// Actions turns the submitted values into reducer actions
func (f SettingsForm) Actions() []settings.Action {
	return formActions(*f.values)
}

// formActions orders color before legend so that switching color off in the
// same submission still forces the legend off.
func formActions(v settingsValues) []settings.Action {
	return []settings.Action{
		settings.Rows(v.Rows),
		settings.Cols(v.Cols),
		settings.ColorSource(v.ColorSource),
		settings.ColorEnabled(v.ColorEnabled),
		settings.LegendVisible(v.LegendVisible),
	}
}

// View renders the form
func (f SettingsForm) View() string {
	return f.form.View()
}
