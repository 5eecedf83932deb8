package matrix

import (
	"sort"
	"strings"
	"time"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// StaticLabelSeparator splits configured static label lists
const StaticLabelSeparator = ";"

// DeriveLabels returns the sorted distinct non-empty labels the extractor
// yields across all records. Labels are compared exactly; "alpha" and "Alpha"
// are different labels.
func DeriveLabels(records []model.RecordView, extract LabelExtractor) []string {
	if extract == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for _, label := range extract(rec) {
			if label == "" {
				continue
			}
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ParseStaticLabels splits a "A; B; C" list, trimming whitespace and dropping
// blanks and repeats. Matching against records stays exact and case-sensitive.
func ParseStaticLabels(raw string) []string {
	return uniqueLabels(strings.Split(raw, StaticLabelSeparator))
}

func uniqueLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Date layouts accepted by TimeKey, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeKey sorts by a field read as a date. Values that don't parse as a date
// count as missing.
func TimeKey(field string) SortKeyFunc {
	return func(r model.RecordView) (time.Time, bool) {
		val, ok := r.Scalar(field)
		if !ok {
			return time.Time{}, false
		}
		return parseTime(val)
	}
}

func parseTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
