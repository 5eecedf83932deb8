package loader

import (
	"sort"
	"time"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// InferFields guesses a schema from cell values when no sidecar exists.
// Field IDs equal field names. Fields are returned sorted by name; select
// choices keep the order they first appear in the records.
func InferFields(records []model.Record) []model.Field {
	types := make(map[string]model.FieldType)
	choices := make(map[string][]model.Choice)
	seenChoice := make(map[string]map[string]bool)

	for _, rec := range records {
		for name, val := range rec.Fields {
			if _, known := types[name]; !known {
				if t, ok := inferType(val); ok {
					types[name] = t
				}
			}
			for _, ch := range choicesOf(val) {
				if seenChoice[name] == nil {
					seenChoice[name] = make(map[string]bool)
				}
				if seenChoice[name][ch.Name] {
					continue
				}
				seenChoice[name][ch.Name] = true
				choices[name] = append(choices[name], ch)
			}
		}
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		f := model.Field{ID: name, Name: name, Type: types[name]}
		if f.Type == model.FieldSingleSelect || f.Type == model.FieldMultipleSelects {
			f.Choices = choices[name]
		}
		fields = append(fields, f)
	}
	return fields
}

func inferType(val any) (model.FieldType, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		if _, err := time.Parse("2006-01-02", v); err == nil {
			return model.FieldDate, true
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return model.FieldDateTime, true
		}
		return model.FieldSingleLineText, true
	case float64:
		return model.FieldNumber, true
	case bool:
		return model.FieldCheckbox, true
	case map[string]any:
		if _, ok := v["name"].(string); ok {
			return model.FieldSingleSelect, true
		}
		return "", false
	case []any:
		for _, item := range v {
			switch it := item.(type) {
			case string:
				return model.FieldMultipleSelects, true
			case map[string]any:
				if _, ok := it["url"]; ok {
					return model.FieldMultipleAttachments, true
				}
				if _, ok := it["value"]; ok {
					return model.FieldMultipleLookupValues, true
				}
				if _, ok := it["name"]; ok {
					return model.FieldMultipleSelects, true
				}
			}
		}
		return "", false
	}
	return "", false
}

func choicesOf(val any) []model.Choice {
	switch v := val.(type) {
	case map[string]any:
		if ch, ok := choiceOf(v); ok {
			return []model.Choice{ch}
		}
	case []any:
		var out []model.Choice
		for _, item := range v {
			switch it := item.(type) {
			case map[string]any:
				if _, isFile := it["url"]; isFile {
					continue
				}
				if ch, ok := choiceOf(it); ok {
					out = append(out, ch)
				}
			case string:
				if it != "" {
					out = append(out, model.Choice{Name: it})
				}
			}
		}
		return out
	}
	return nil
}

func choiceOf(m map[string]any) (model.Choice, bool) {
	name, _ := m["name"].(string)
	if name == "" {
		return model.Choice{}, false
	}
	ch := model.Choice{Name: name}
	ch.ID, _ = m["id"].(string)
	ch.Color, _ = m["color"].(string)
	return ch, true
}
