package model

import (
	"fmt"
	"time"
)

// Table is the single host table the matrix is drawn from
type Table struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Fields  []Field  `json:"fields"`
	Records []Record `json:"-"`
}

// FieldByIDIfExists resolves a field reference by ID first, then by exact name.
// Returns nil when ref is empty or nothing matches.
func (t *Table) FieldByIDIfExists(ref string) *Field {
	if t == nil || ref == "" {
		return nil
	}
	for i := range t.Fields {
		if t.Fields[i].ID == ref {
			return &t.Fields[i]
		}
	}
	for i := range t.Fields {
		if t.Fields[i].Name == ref {
			return &t.Fields[i]
		}
	}
	return nil
}

// FieldsOfType returns the fields matching the predicate, in schema order.
func (t *Table) FieldsOfType(pred func(FieldType) bool) []Field {
	if t == nil {
		return nil
	}
	var out []Field
	for _, f := range t.Fields {
		if pred(f.Type) {
			out = append(out, f)
		}
	}
	return out
}

// Views returns the table records as RecordViews, preserving order.
func (t *Table) Views() []RecordView {
	if t == nil {
		return nil
	}
	views := make([]RecordView, len(t.Records))
	for i := range t.Records {
		views[i] = View(&t.Records[i])
	}
	return views
}

// Field describes one column of the host table
type Field struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Choices []Choice  `json:"choices,omitempty"`
}

// Choice is one option of a select field
type Choice struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Record is a host record: an id plus a bag of cell values keyed by field ID
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// Clone creates a deep copy of the record
func (r Record) Clone() Record {
	clone := r
	if r.Fields != nil {
		clone.Fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			clone.Fields[k] = cloneValue(v)
		}
	}
	return clone
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Validate checks if the record data is logically valid
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}
	return nil
}

// FieldType is the host's cell type for a field
type FieldType string

const (
	FieldSingleLineText       FieldType = "singleLineText"
	FieldMultilineText        FieldType = "multilineText"
	FieldFormula              FieldType = "formula"
	FieldDate                 FieldType = "date"
	FieldDateTime             FieldType = "dateTime"
	FieldSingleSelect         FieldType = "singleSelect"
	FieldMultipleSelects      FieldType = "multipleSelects"
	FieldMultipleRecordLinks  FieldType = "multipleRecordLinks"
	FieldMultipleLookupValues FieldType = "multipleLookupValues"
	FieldMultipleAttachments  FieldType = "multipleAttachments"
	FieldNumber               FieldType = "number"
	FieldCheckbox             FieldType = "checkbox"
)

// IsValid returns true if the field type is a recognized value
func (t FieldType) IsValid() bool {
	switch t {
	case FieldSingleLineText, FieldMultilineText, FieldFormula, FieldDate, FieldDateTime,
		FieldSingleSelect, FieldMultipleSelects, FieldMultipleRecordLinks,
		FieldMultipleLookupValues, FieldMultipleAttachments, FieldNumber, FieldCheckbox:
		return true
	}
	return false
}

// IsColorSource returns true if cells of this type carry a choice color
func (t FieldType) IsColorSource() bool {
	return t == FieldSingleSelect
}

// IsPrimaryCandidate returns true if the field can act as a card title
func (t FieldType) IsPrimaryCandidate() bool {
	return t == FieldSingleLineText || t == FieldFormula
}

// IsAttachment returns true for attachment list fields
func (t FieldType) IsAttachment() bool {
	return t == FieldMultipleAttachments
}

// Attachment is one entry of an attachment cell
type Attachment struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
}
