package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLabelList_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{
			name:     "bare string",
			value:    "Alpha",
			expected: []string{"Alpha"},
		},
		{
			name:     "string list",
			value:    []string{"Alpha", "", "Beta"},
			expected: []string{"Alpha", "Beta"},
		},
		{
			name:     "select objects",
			value:    []any{map[string]any{"id": "sel1", "name": "Alpha", "color": "blueLight2"}},
			expected: []string{"Alpha"},
		},
		{
			name: "lookup objects",
			value: []any{
				map[string]any{"value": map[string]any{"name": "Alpha"}},
				map[string]any{"value": map[string]any{"id": "x"}},
				map[string]any{"value": map[string]any{"name": "Beta"}},
			},
			expected: []string{"Alpha", "Beta"},
		},
		{
			name:     "single object",
			value:    map[string]any{"name": "Gamma"},
			expected: []string{"Gamma"},
		},
		{
			name:     "number is no label",
			value:    42.0,
			expected: nil,
		},
		{
			name:     "list of junk",
			value:    []any{nil, 3.0, true, []any{"nested"}},
			expected: nil,
		},
		{
			name:     "null",
			value:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{ID: "rec1", Fields: map[string]any{"Topic": tt.value}}
			got := View(rec).LabelList("Topic")
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("LabelList(%v) = %#v, want %#v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLabelList_MissingField(t *testing.T) {
	v := View(&Record{ID: "rec1"})
	if got := v.LabelList("Topic"); got != nil {
		t.Errorf("expected no labels for missing field, got %v", got)
	}
	if got := v.LabelList(""); got != nil {
		t.Errorf("expected no labels for empty field ref, got %v", got)
	}
	if got := View(nil).LabelList("Topic"); got != nil {
		t.Errorf("expected no labels for nil record, got %v", got)
	}
}

func TestLabelList_DecodedJSON(t *testing.T) {
	raw := `{"id":"rec9","fields":{"Domain":[{"id":"sel","name":"Racing","color":"redBright"},{"name":"Air"}]}}`
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := View(&rec).LabelList("Domain")
	want := []string{"Racing", "Air"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColor(t *testing.T) {
	rec := &Record{ID: "rec1", Fields: map[string]any{
		"Status": map[string]any{"name": "Done", "color": "greenBright"},
		"Plain":  "Done",
		"NoTok":  map[string]any{"name": "Todo"},
	}}
	v := View(rec)

	c, ok := v.Color("Status")
	if !ok {
		t.Fatal("expected color for select cell")
	}
	if c.Name != "Done" || c.Token != "greenBright" {
		t.Errorf("unexpected color %+v", c)
	}
	if c.Hex() != "#20c933" {
		t.Errorf("Hex() = %q, want #20c933", c.Hex())
	}

	if _, ok := v.Color("Plain"); ok {
		t.Error("string cell should not yield a color")
	}
	if _, ok := v.Color("NoTok"); ok {
		t.Error("select without color token should not yield a color")
	}
	if _, ok := v.Color("Missing"); ok {
		t.Error("missing cell should not yield a color")
	}
}

func TestHexForToken(t *testing.T) {
	tests := []struct {
		token string
		hex   string
		ok    bool
	}{
		{"blueLight2", "#cfdfff", true},
		{"blue", "#cfdfff", true},
		{"#123456", "#123456", true},
		{"mauve", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		hex, ok := HexForToken(tt.token)
		if hex != tt.hex || ok != tt.ok {
			t.Errorf("HexForToken(%q) = (%q, %v), want (%q, %v)", tt.token, hex, ok, tt.hex, tt.ok)
		}
	}
}

func TestString(t *testing.T) {
	rec := &Record{ID: "rec1", Fields: map[string]any{
		"Name":    "Launch",
		"Count":   3.0,
		"Tags":    []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}},
		"Files":   []any{map[string]any{"url": "https://x/y.png", "filename": "y.png"}},
		"Checked": true,
	}}
	v := View(rec)
	tests := map[string]string{
		"Name":    "Launch",
		"Count":   "3",
		"Tags":    "a, b",
		"Files":   "y.png",
		"Checked": "checked",
		"Missing": "",
	}
	for field, want := range tests {
		if got := v.String(field); got != want {
			t.Errorf("String(%q) = %q, want %q", field, got, want)
		}
	}
}

func TestAttachments(t *testing.T) {
	rec := &Record{ID: "rec1", Fields: map[string]any{
		"Image": []any{
			map[string]any{"id": "att1", "url": "https://cdn/a.png", "filename": "a.png"},
			map[string]any{"filename": "no-url.png"},
			"garbage",
		},
	}}
	got := View(rec).Attachments("Image")
	if len(got) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(got))
	}
	if got[0].URL != "https://cdn/a.png" || got[0].Filename != "a.png" {
		t.Errorf("unexpected attachment %+v", got[0])
	}
}

func TestFieldByIDIfExists(t *testing.T) {
	table := &Table{Fields: []Field{
		{ID: "fld1", Name: "Topic", Type: FieldMultipleSelects},
		{ID: "Topic", Name: "Shadow", Type: FieldSingleLineText},
	}}

	if f := table.FieldByIDIfExists("fld1"); f == nil || f.Name != "Topic" {
		t.Errorf("lookup by ID failed: %+v", f)
	}
	// IDs win over names
	if f := table.FieldByIDIfExists("Topic"); f == nil || f.Name != "Shadow" {
		t.Errorf("expected ID match to win, got %+v", f)
	}
	if f := table.FieldByIDIfExists("Shadow"); f == nil || f.ID != "Topic" {
		t.Errorf("lookup by name failed: %+v", f)
	}
	if f := table.FieldByIDIfExists("nope"); f != nil {
		t.Errorf("expected nil, got %+v", f)
	}
	if f := table.FieldByIDIfExists(""); f != nil {
		t.Errorf("expected nil for empty ref, got %+v", f)
	}
}

func TestRecordClone(t *testing.T) {
	orig := Record{ID: "rec1", Fields: map[string]any{
		"Tags": []any{"a", "b"},
	}}
	clone := orig.Clone()
	clone.Fields["Tags"].([]any)[0] = "changed"
	if orig.Fields["Tags"].([]any)[0] != "a" {
		t.Error("clone shares list storage with original")
	}
}
