package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// ErrNotConfigured is matched (via errors.Is) by every NotConfiguredError
var ErrNotConfigured = errors.New("matrix not configured")

// Selector keys, as shown to the user on the configuration screen
const (
	KeyPrimaryField     = "primaryField"
	KeyRowGroupField    = "rowGroupField"
	KeyColumnGroupField = "columnGroupField"
	KeyImageField       = "imageField"
)

// Selection is the host-supplied configuration of one matrix
type Selection struct {
	PrimaryField     string
	RowGroupField    string
	ColumnGroupField string
	ImageField       string
	CardColorField   string
	SortField        string // defaults to PrimaryField

	LabelSource     LabelMode
	StaticRowLabels string
	StaticColLabels string
}

// Resolved holds the selection's fields looked up in the table schema.
// Optional fields are nil when unset or missing.
type Resolved struct {
	Primary *model.Field
	Row     *model.Field
	Column  *model.Field
	Image   *model.Field
	Color   *model.Field
	Sort    *model.Field
}

// FieldStatus reports how one selector resolved
type FieldStatus struct {
	Key      string
	Ref      string
	Field    *model.Field
	Required bool
}

// OK returns true if the selector is usable
func (s FieldStatus) OK() bool {
	return s.Field != nil
}

func (s FieldStatus) String() string {
	switch {
	case s.Ref == "":
		return fmt.Sprintf("%s: not set", s.Key)
	case s.Field == nil:
		return fmt.Sprintf("%s: %s (NOT FOUND)", s.Key, s.Ref)
	default:
		return fmt.Sprintf("%s: %s (found: %s, type: %s)", s.Key, s.Ref, s.Field.Name, s.Field.Type)
	}
}

// NotConfiguredError means a required selector is unset or names a field the
// table does not have. It is distinct from an empty but valid matrix.
type NotConfiguredError struct {
	Statuses []FieldStatus
}

func (e *NotConfiguredError) Error() string {
	var missing []string
	for _, s := range e.Statuses {
		if s.Required && !s.OK() {
			missing = append(missing, s.String())
		}
	}
	return fmt.Sprintf("%s: %s", ErrNotConfigured, strings.Join(missing, "; "))
}

// Is makes errors.Is(err, ErrNotConfigured) work
func (e *NotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured
}

// Missing returns the keys of required selectors that did not resolve
func (e *NotConfiguredError) Missing() []string {
	var keys []string
	for _, s := range e.Statuses {
		if s.Required && !s.OK() {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Statuses resolves the user-facing selectors against the table
func Statuses(table *model.Table, sel Selection) []FieldStatus {
	return []FieldStatus{
		{Key: KeyPrimaryField, Ref: sel.PrimaryField, Field: table.FieldByIDIfExists(sel.PrimaryField), Required: true},
		{Key: KeyRowGroupField, Ref: sel.RowGroupField, Field: table.FieldByIDIfExists(sel.RowGroupField), Required: true},
		{Key: KeyColumnGroupField, Ref: sel.ColumnGroupField, Field: table.FieldByIDIfExists(sel.ColumnGroupField), Required: true},
		{Key: KeyImageField, Ref: sel.ImageField, Field: table.FieldByIDIfExists(sel.ImageField)},
	}
}

// Resolve looks up every selector. A missing required field yields a
// *NotConfiguredError.
func Resolve(table *model.Table, sel Selection) (Resolved, error) {
	statuses := Statuses(table, sel)
	for _, s := range statuses {
		if s.Required && !s.OK() {
			return Resolved{}, &NotConfiguredError{Statuses: statuses}
		}
	}

	res := Resolved{
		Primary: statuses[0].Field,
		Row:     statuses[1].Field,
		Column:  statuses[2].Field,
		Image:   statuses[3].Field,
		Color:   table.FieldByIDIfExists(sel.CardColorField),
		Sort:    table.FieldByIDIfExists(sel.SortField),
	}
	if res.Sort == nil {
		res.Sort = res.Primary
	}
	return res, nil
}

// Compute resolves the selection against the table and builds the matrix.
// Configuration problems halt before any grouping happens.
func Compute(table *model.Table, sel Selection) (*Matrix, Resolved, error) {
	res, err := Resolve(table, sel)
	if err != nil {
		return nil, Resolved{}, err
	}

	in := Input{
		Records: table.Views(),
		Row:     FieldLabels(res.Row.ID),
		Column:  FieldLabels(res.Column.ID),
		Mode:    sel.LabelSource,
		SortKey: TimeKey(res.Sort.ID),
	}
	if in.Mode.IsStatic() {
		in.RowLabels = ParseStaticLabels(sel.StaticRowLabels)
		in.ColumnLabels = ParseStaticLabels(sel.StaticColLabels)
	}
	return Build(in), res, nil
}
