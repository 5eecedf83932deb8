package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordView is the narrow read-only capability the matrix needs from a host
// record. Accessors never fail: absent or oddly shaped cell values read as
// "nothing" (zero labels, no scalar, no color).
type RecordView interface {
	ID() string
	LabelList(field string) []string
	Scalar(field string) (any, bool)
	String(field string) string
	Color(field string) (Color, bool)
	Attachments(field string) []Attachment
}

// View adapts a host record to RecordView
func View(r *Record) RecordView {
	return recordView{r: r}
}

type recordView struct {
	r *Record
}

func (v recordView) ID() string {
	if v.r == nil {
		return ""
	}
	return v.r.ID
}

func (v recordView) cell(field string) (any, bool) {
	if v.r == nil || field == "" || v.r.Fields == nil {
		return nil, false
	}
	val, ok := v.r.Fields[field]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// LabelList reads a category-list cell. Accepted shapes: a bare string, a list
// of strings, a list of {name} objects (selects, linked records), a list of
// lookup objects {value: {name}}, or a single {name} object.
func (v recordView) LabelList(field string) []string {
	val, ok := v.cell(field)
	if !ok {
		return nil
	}
	var out []string
	add := func(s string) {
		if s != "" {
			out = append(out, s)
		}
	}
	switch val := val.(type) {
	case string:
		add(val)
	case []string:
		for _, s := range val {
			add(s)
		}
	case []any:
		for _, item := range val {
			add(labelOf(item))
		}
	case map[string]any:
		add(labelOf(val))
	}
	return out
}

// labelOf extracts the category name of one list entry
func labelOf(item any) string {
	switch it := item.(type) {
	case string:
		return it
	case map[string]any:
		if inner, ok := it["value"].(map[string]any); ok {
			if name, ok := inner["name"].(string); ok {
				return name
			}
			return ""
		}
		if s, ok := it["value"].(string); ok {
			return s
		}
		if name, ok := it["name"].(string); ok {
			return name
		}
	}
	return ""
}

func (v recordView) Scalar(field string) (any, bool) {
	return v.cell(field)
}

// String renders a cell the way the host shows it in a text context
func (v recordView) String(field string) string {
	val, ok := v.cell(field)
	if !ok {
		return ""
	}
	return stringOf(val)
}

func stringOf(val any) string {
	switch val := val.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "checked"
		}
		return ""
	case time.Time:
		return val.Format(time.RFC3339)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := labelOf(item); s != "" {
				parts = append(parts, s)
				continue
			}
			if m, ok := item.(map[string]any); ok {
				if name, ok := m["filename"].(string); ok {
					parts = append(parts, name)
				}
				continue
			}
			if s := stringOf(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if s := labelOf(val); s != "" {
			return s
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// Color reads a single-select cell of shape {name, color}
func (v recordView) Color(field string) (Color, bool) {
	val, ok := v.cell(field)
	if !ok {
		return Color{}, false
	}
	m, ok := val.(map[string]any)
	if !ok {
		return Color{}, false
	}
	token, _ := m["color"].(string)
	if token == "" {
		return Color{}, false
	}
	name, _ := m["name"].(string)
	return Color{Name: name, Token: token}, true
}

func (v recordView) Attachments(field string) []Attachment {
	val, ok := v.cell(field)
	if !ok {
		return nil
	}
	list, ok := val.([]any)
	if !ok {
		return nil
	}
	var out []Attachment
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		url, _ := m["url"].(string)
		if url == "" {
			continue
		}
		a := Attachment{URL: url}
		a.ID, _ = m["id"].(string)
		a.Filename, _ = m["filename"].(string)
		a.Type, _ = m["type"].(string)
		out = append(out, a)
	}
	return out
}
