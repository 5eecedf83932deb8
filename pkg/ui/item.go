package ui

import (
	"strings"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// RecordItem wraps a record of a bucket to implement list.Item
type RecordItem struct {
	Record  model.RecordView
	Name    string // primary field value
	Image   string // first attachment filename, if any
	Accent  string // hex, empty for no accent
	Subline string // row × column memberships shown under the name
}

func (i RecordItem) Title() string {
	if i.Name == "" {
		return "Unnamed record"
	}
	return i.Name
}

func (i RecordItem) Description() string {
	parts := []string{i.Record.ID()}
	if i.Image != "" {
		parts = append(parts, "🖼 "+i.Image)
	}
	if i.Subline != "" {
		parts = append(parts, i.Subline)
	}
	return strings.Join(parts, " • ")
}

func (i RecordItem) FilterValue() string {
	return i.Name + " " + i.Record.ID() + " " + i.Image
}
