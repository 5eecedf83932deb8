package matrix

import (
	"fmt"
	"testing"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

func bucketOf(n int) []model.RecordView {
	out := make([]model.RecordView, n)
	for i := range out {
		out[i] = model.View(&model.Record{ID: fmt.Sprintf("r%d", i)})
	}
	return out
}

func TestLayoutCell(t *testing.T) {
	tests := []struct {
		name         string
		records      int
		rows, cols   int
		wantVisible  int
		wantOverflow int
		wantHas      bool
	}{
		{name: "exactly full", records: 6, rows: 2, cols: 3, wantVisible: 6},
		{name: "one over", records: 7, rows: 2, cols: 3, wantVisible: 5, wantOverflow: 2, wantHas: true},
		{name: "well over", records: 20, rows: 2, cols: 3, wantVisible: 5, wantOverflow: 15, wantHas: true},
		{name: "under", records: 2, rows: 2, cols: 3, wantVisible: 2},
		{name: "empty", records: 0, rows: 2, cols: 3, wantVisible: 0},
		{name: "capacity one, single record", records: 1, rows: 1, cols: 1, wantVisible: 1},
		{name: "capacity one, overflow only", records: 3, rows: 1, cols: 1, wantVisible: 0, wantOverflow: 3, wantHas: true},
		{name: "zero dims clamp to one", records: 3, rows: 0, cols: 0, wantVisible: 0, wantOverflow: 3, wantHas: true},
		{name: "huge dims clamp to four", records: 17, rows: 10, cols: 10, wantVisible: 15, wantOverflow: 2, wantHas: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := bucketOf(tt.records)
			cell := LayoutCell(bucket, tt.rows, tt.cols)

			if len(cell.Visible) != tt.wantVisible {
				t.Errorf("visible = %d, want %d", len(cell.Visible), tt.wantVisible)
			}
			if cell.OverflowCount != tt.wantOverflow {
				t.Errorf("overflowCount = %d, want %d", cell.OverflowCount, tt.wantOverflow)
			}
			if cell.HasOverflow != tt.wantHas {
				t.Errorf("hasOverflow = %v, want %v", cell.HasOverflow, tt.wantHas)
			}
			if len(cell.All) != tt.records {
				t.Errorf("All has %d records, want the full bucket of %d", len(cell.All), tt.records)
			}
			if cell.Slots() > cell.Capacity() {
				t.Errorf("slots %d exceed capacity %d", cell.Slots(), cell.Capacity())
			}
			if len(cell.Visible)+cell.OverflowCount != tt.records {
				t.Errorf("visible + overflow = %d, want %d", len(cell.Visible)+cell.OverflowCount, tt.records)
			}
		})
	}
}

func TestLayoutCell_VisibleIsPrefix(t *testing.T) {
	bucket := bucketOf(9)
	cell := LayoutCell(bucket, 2, 2)
	for i, r := range cell.Visible {
		if r.ID() != bucket[i].ID() {
			t.Errorf("visible[%d] = %s, want %s", i, r.ID(), bucket[i].ID())
		}
	}
	// appending to Visible must not clobber the full bucket
	_ = append(cell.Visible, model.View(&model.Record{ID: "intruder"}))
	if cell.All[3].ID() != "r3" {
		t.Errorf("All was modified through Visible: %s", cell.All[3].ID())
	}
}

func TestLayoutFor(t *testing.T) {
	d := settings.Default("").Apply(settings.Rows(1)).Apply(settings.Cols(2))
	cell := LayoutFor(bucketOf(3), d)
	if len(cell.Visible) != 1 || cell.OverflowCount != 2 {
		t.Errorf("unexpected layout %d visible, %d overflow", len(cell.Visible), cell.OverflowCount)
	}
}

func colorRec(fields map[string]any) model.RecordView {
	return model.View(&model.Record{ID: "r", Fields: fields})
}

func TestResolveAccent(t *testing.T) {
	stage := map[string]any{"name": "Draft", "color": "yellowLight2"}
	team := map[string]any{"name": "Core", "color": "blueBright"}

	tests := []struct {
		name   string
		fields map[string]any
		src    ColorSources
		want   string
		ok     bool
	}{
		{
			name:   "override wins",
			fields: map[string]any{"Stage": stage, "Team": team},
			src:    ColorSources{Enabled: true, Override: "Stage", Default: "Team"},
			want:   "yellowLight2", ok: true,
		},
		{
			name:   "falls back to default when override empty",
			fields: map[string]any{"Team": team},
			src:    ColorSources{Enabled: true, Override: "Stage", Default: "Team"},
			want:   "blueBright", ok: true,
		},
		{
			name:   "default only",
			fields: map[string]any{"Team": team},
			src:    ColorSources{Enabled: true, Default: "Team"},
			want:   "blueBright", ok: true,
		},
		{
			name:   "neither field colored",
			fields: map[string]any{"Stage": "Draft"},
			src:    ColorSources{Enabled: true, Override: "Stage", Default: "Team"},
		},
		{
			name:   "disabled",
			fields: map[string]any{"Stage": stage},
			src:    ColorSources{Enabled: false, Override: "Stage"},
		},
		{
			name:   "no sources",
			fields: map[string]any{"Stage": stage},
			src:    ColorSources{Enabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ResolveAccent(colorRec(tt.fields), tt.src)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if c.Token != tt.want {
				t.Errorf("token = %q, want %q", c.Token, tt.want)
			}
		})
	}
}

func colorTable() *model.Table {
	return &model.Table{Fields: []model.Field{
		{ID: "fldTeam", Name: "Team", Type: model.FieldSingleSelect, Choices: []model.Choice{
			{Name: "Core", Color: "blueBright"},
			{Name: "Ops", Color: "mystery"},
		}},
		{ID: "fldStage", Name: "Stage", Type: model.FieldSingleSelect, Choices: []model.Choice{
			{Name: "Draft", Color: "yellowLight2"},
		}},
	}}
}

func TestColorSourcesFor(t *testing.T) {
	table := colorTable()
	team := table.FieldByIDIfExists("fldTeam")

	src := ColorSourcesFor(table, settings.Default("Stage"), team)
	if src.Override != "fldStage" || src.Default != "fldTeam" || !src.Enabled {
		t.Errorf("unexpected sources %+v", src)
	}

	src = ColorSourcesFor(table, settings.Default("Gone"), nil)
	if src.Override != "" || src.Default != "" {
		t.Errorf("unresolvable fields should be dropped, got %+v", src)
	}
}

func TestLegend(t *testing.T) {
	table := colorTable()
	team := table.FieldByIDIfExists("fldTeam")

	spec, ok := Legend(table, settings.Default(""), team)
	if !ok {
		t.Fatal("expected legend for default field")
	}
	if spec.Field.Name != "Team" || len(spec.Entries) != 2 {
		t.Fatalf("unexpected legend %+v", spec)
	}
	if spec.Entries[0].Hex != "#2d7ff9" || spec.Entries[1].Hex != "#cccccc" {
		t.Errorf("unexpected swatches %+v", spec.Entries)
	}

	spec, ok = Legend(table, settings.Default("fldStage"), team)
	if !ok || spec.Field.Name != "Stage" {
		t.Errorf("override field should drive legend, got %+v", spec)
	}

	if _, ok := Legend(table, settings.Default("").Apply(settings.LegendVisible(false)), team); ok {
		t.Error("hidden legend should not render")
	}
	if _, ok := Legend(table, settings.Default("").Apply(settings.ColorEnabled(false)), team); ok {
		t.Error("legend should not render with colors off")
	}
	if _, ok := Legend(table, settings.Default(""), nil); ok {
		t.Error("legend needs a color field")
	}
}
