package ui

import (
	"sort"
	"strings"
)

// SortRecordItemsByTitle sorts records by their primary value, ignoring case.
// Equal titles keep their bucket order (newest first).
func SortRecordItemsByTitle(items []RecordItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title()) < strings.ToLower(items[j].Title())
	})
}
