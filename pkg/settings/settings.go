// Package settings holds the session-scoped display settings of the matrix
// and the pure reducer that updates them.
package settings

// Grid dimension bounds for cards per cell.
const (
	MinPerCell = 1
	MaxPerCell = 4

	DefaultRowsPerCell = 2
	DefaultColsPerCell = 3
)

// Display is an immutable settings value. Update it with Apply, never by
// assigning fields on a shared value.
type Display struct {
	RowsPerCell   int
	ColsPerCell   int
	ColorEnabled  bool
	ColorSource   string // field ID/name overriding the configured card color field
	LegendVisible bool
}

// Default returns the startup settings. colorSource is the configured card
// color field, which may be empty.
func Default(colorSource string) Display {
	return Display{
		RowsPerCell:   DefaultRowsPerCell,
		ColsPerCell:   DefaultColsPerCell,
		ColorEnabled:  true,
		ColorSource:   colorSource,
		LegendVisible: true,
	}
}

// Capacity is the number of grid slots per cell
func (d Display) Capacity() int {
	return d.RowsPerCell * d.ColsPerCell
}

// Normalize clamps dimensions and enforces the legend/color coupling.
func (d Display) Normalize() Display {
	d.RowsPerCell = Clamp(d.RowsPerCell)
	d.ColsPerCell = Clamp(d.ColsPerCell)
	if !d.ColorEnabled {
		d.LegendVisible = false
	}
	return d
}

// Clamp bounds a per-cell dimension to [MinPerCell, MaxPerCell]
func Clamp(n int) int {
	if n < MinPerCell {
		return MinPerCell
	}
	if n > MaxPerCell {
		return MaxPerCell
	}
	return n
}

// ActionKind names a settings update
type ActionKind int

const (
	SetRows ActionKind = iota
	SetCols
	SetColorEnabled
	SetColorSource
	SetLegendVisible
	ResetColorSource
)

// Action is one settings update. Int carries dimensions, Bool toggles and
// Field the color source.
type Action struct {
	Kind  ActionKind
	Int   int
	Bool  bool
	Field string
}

// Rows returns an action setting rows per cell
func Rows(n int) Action { return Action{Kind: SetRows, Int: n} }

// Cols returns an action setting columns per cell
func Cols(n int) Action { return Action{Kind: SetCols, Int: n} }

// ColorEnabled returns an action toggling card colors
func ColorEnabled(on bool) Action { return Action{Kind: SetColorEnabled, Bool: on} }

// ColorSource returns an action selecting the override color field
func ColorSource(field string) Action { return Action{Kind: SetColorSource, Field: field} }

// LegendVisible returns an action toggling the legend
func LegendVisible(on bool) Action { return Action{Kind: SetLegendVisible, Bool: on} }

// Apply returns the settings after the action. The receiver is not modified.
func (d Display) Apply(a Action) Display {
	switch a.Kind {
	case SetRows:
		d.RowsPerCell = a.Int
	case SetCols:
		d.ColsPerCell = a.Int
	case SetColorEnabled:
		d.ColorEnabled = a.Bool
	case SetColorSource:
		d.ColorSource = a.Field
	case SetLegendVisible:
		d.LegendVisible = a.Bool
	case ResetColorSource:
		// only fills an unset source, so a user choice survives config reloads
		if d.ColorSource == "" {
			d.ColorSource = a.Field
		}
	}
	return d.Normalize()
}

// ApplyAll folds a sequence of actions
func (d Display) ApplyAll(actions ...Action) Display {
	for _, a := range actions {
		d = d.Apply(a)
	}
	return d
}
