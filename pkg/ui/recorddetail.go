package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// RecordMarkdown renders every non-empty field of a record as markdown, in
// schema order. The primary value becomes the heading.
func RecordMarkdown(table *model.Table, rec model.RecordView, primary string) string {
	var b strings.Builder

	title := ""
	if primary != "" {
		title = rec.String(primary)
	}
	if title == "" {
		title = "Unnamed record"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_Record `%s`_\n\n", rec.ID())

	if table == nil || len(table.Fields) == 0 {
		return b.String()
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, f := range table.Fields {
		if f.ID == primary {
			continue
		}
		var val string
		if f.Type.IsAttachment() {
			var links []string
			for _, a := range rec.Attachments(f.ID) {
				name := a.Filename
				if name == "" {
					name = a.URL
				}
				links = append(links, fmt.Sprintf("[%s](%s)", escapeCell(name), a.URL))
			}
			val = strings.Join(links, ", ")
		} else {
			val = escapeCell(rec.String(f.ID))
		}
		if val == "" {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(f.Name), val)
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// if glamour fails.
func renderMarkdown(md string, width int, dark bool) string {
	if width < 20 {
		width = 20
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
