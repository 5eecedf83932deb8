package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

func sampleTable() *model.Table {
	return &model.Table{
		ID:   "tblIdeas",
		Name: "Ideas",
		Fields: []model.Field{
			{ID: "fldName", Name: "Name", Type: model.FieldSingleLineText},
			{ID: "fldStage", Name: "Stage", Type: model.FieldSingleSelect, Choices: []model.Choice{
				{ID: "selA", Name: "Idea", Color: "blueLight2"},
				{ID: "selB", Name: "Live", Color: "greenBright"},
			}},
			{ID: "fldTopic", Name: "Topic", Type: model.FieldMultipleSelects},
		},
		Records: []model.Record{
			{
				ID:          "rec2",
				CreatedTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				Fields: map[string]any{
					"fldName":  "Second",
					"fldTopic": []any{"Energy", "Water"},
					"fldStage": map[string]any{"name": "Live", "color": "greenBright"},
				},
			},
			{
				ID:     "rec1",
				Fields: map[string]any{"fldName": "First"},
			},
		},
	}
}

func openTest(t *testing.T, driver string) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "sub", "records.db"), driver, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTest(t, DriverPure)

	require.NoError(t, db.Import(ctx, "ideas", sampleTable()))

	got, err := db.LoadTable(ctx, "ideas")
	require.NoError(t, err)

	assert.Equal(t, "tblIdeas", got.ID)
	assert.Equal(t, "ideas", got.Name)
	require.Len(t, got.Fields, 3)
	assert.Equal(t, "fldStage", got.Fields[1].ID)
	assert.Equal(t, model.FieldSingleSelect, got.Fields[1].Type)
	assert.Len(t, got.Fields[1].Choices, 2)

	require.Len(t, got.Records, 2)
	// insertion order survives, not id order
	assert.Equal(t, "rec2", got.Records[0].ID)
	assert.True(t, got.Records[0].CreatedTime.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, got.Records[1].CreatedTime.IsZero())

	labels := model.View(&got.Records[0]).LabelList("fldTopic")
	assert.Equal(t, []string{"Energy", "Water"}, labels)
	c, ok := model.View(&got.Records[0]).Color("fldStage")
	require.True(t, ok)
	assert.Equal(t, "greenBright", c.Token)
}

func TestImportReplaces(t *testing.T) {
	ctx := context.Background()
	db := openTest(t, DriverPure)

	require.NoError(t, db.Import(ctx, "ideas", sampleTable()))

	smaller := sampleTable()
	smaller.Records = smaller.Records[:1]
	require.NoError(t, db.Import(ctx, "ideas", smaller))

	got, err := db.LoadTable(ctx, "ideas")
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)

	names, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ideas"}, names)
}

func TestLoadTable_Missing(t *testing.T) {
	db := openTest(t, "")
	_, err := db.LoadTable(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestImport_Nil(t *testing.T) {
	db := openTest(t, DriverPure)
	require.Error(t, db.Import(context.Background(), "x", nil))
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB(filepath.Join(t.TempDir(), "x.db"), "postgres", nil)
	require.Error(t, err)
}
