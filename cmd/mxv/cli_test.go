package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/config"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/loader"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

const fixture = "../../tests/testdata/searchfields.jsonl"

func fixtureSelection() matrix.Selection {
	return matrix.Selection{
		PrimaryField:     "Name",
		RowGroupField:    "Topic",
		ColumnGroupField: "Domain",
		CardColorField:   "Stage",
		SortField:        "Updated",
	}
}

func testCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	return cmd
}

func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prevCfg, prevLogger := cfg, logger
	cfg, logger = c, zap.NewNop()
	t.Cleanup(func() { cfg, logger = prevCfg, prevLogger })
}

func TestWriteCells(t *testing.T) {
	table, err := loader.LoadTableFromFile(fixture)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCells(&buf, table, fixtureSelection(), settings.Default("Stage")))
	out := buf.String()

	for _, want := range []string{
		"Searchfields: rows by Topic, columns by Domain",
		"Energy × Land (7)\n  Heat pumps [Live #20c933]\n  Battery swapping [Live #20c933]\n  Hydrogen refuelling [Pilot #ff6f2c]\n  Grid balancing\n  Microgrids\n  +2 more\n",
		"Energy × Air (0)\n",
		"Mobility × Sea (1)\n  Autonomous ferries [Pilot #ff6f2c]\n",
		"Legend (Stage): Idea #ffeab6, Pilot #ff6f2c, Live #20c933",
		"2 rows × 3 columns · 6 buckets (1 empty) · 12 records in 14 placements · max 7",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Untagged idea", "records without a row label are not placed")
	assert.NotContains(t, out, "Solar roads", "hidden behind the overflow line")
}

func TestWriteCells_NoColor(t *testing.T) {
	table, err := loader.LoadTableFromFile(fixture)
	require.NoError(t, err)

	d := settings.Default("Stage").ApplyAll(settings.ColorEnabled(false), settings.Rows(4), settings.Cols(2))
	var buf bytes.Buffer
	require.NoError(t, writeCells(&buf, table, fixtureSelection(), d))
	out := buf.String()

	assert.Contains(t, out, "  Heat pumps\n")
	assert.Contains(t, out, "  Geothermal wells\n")
	assert.NotContains(t, out, "+")
	assert.NotContains(t, out, "Legend")
}

func TestWriteCells_NotConfigured(t *testing.T) {
	table, err := loader.LoadTableFromFile(fixture)
	require.NoError(t, err)

	sel := fixtureSelection()
	sel.RowGroupField = ""
	sel.ColumnGroupField = "Region"
	sel.ImageField = "Image"

	var buf bytes.Buffer
	err = writeCells(&buf, table, sel, settings.Default(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, matrix.ErrNotConfigured))

	out := buf.String()
	assert.Contains(t, out, "Matrix not configured")
	assert.Contains(t, out, "✓ primaryField: Name (found: Name, type: singleLineText)")
	assert.Contains(t, out, "✗ rowGroupField: not set")
	assert.Contains(t, out, "✗ columnGroupField: Region (NOT FOUND)")
	assert.Contains(t, out, "✓ imageField: Image")
}

func TestImportThenLoadFromSQLite(t *testing.T) {
	c := config.DefaultConfig()
	c.Source.Driver = "sqlite"
	useConfig(t, c)

	dbPath := filepath.Join(t.TempDir(), "records.db")
	var out bytes.Buffer
	require.NoError(t, runImport(testCommand(&out), []string{fixture, dbPath}))
	assert.Equal(t, "Imported 13 records into "+dbPath+" (table records)\n", out.String())

	c.Source.Kind = config.SourceSQLite
	c.Source.Path = dbPath
	table, err := loadTable(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, table.Records, 13)

	var buf bytes.Buffer
	require.NoError(t, writeCells(&buf, table, fixtureSelection(), settings.Default("Stage")))
	assert.Contains(t, buf.String(), "Energy × Land (7)")
}

func TestRunExport(t *testing.T) {
	c := config.DefaultConfig()
	c.Source.Path = fixture
	c.PrimaryField, c.RowGroupField, c.ColumnGroupField = "Name", "Topic", "Domain"
	useConfig(t, c)

	dir := t.TempDir()
	prevDir, prevFormats := exportDir, exportFormats
	exportDir, exportFormats = dir, []string{"svg"}
	t.Cleanup(func() { exportDir, exportFormats = prevDir, prevFormats })

	var out bytes.Buffer
	require.NoError(t, runExport(testCommand(&out), nil))

	path := strings.TrimSpace(out.String())
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".svg"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Heat pumps")
}

func TestCheckSource(t *testing.T) {
	c := config.DefaultConfig()
	assert.NoError(t, checkSource(c), "unset selectors are shown, not rejected")

	c.Source.Kind = "csv"
	assert.Error(t, checkSource(c))
}

func TestWatchedFiles(t *testing.T) {
	c := config.DefaultConfig()
	c.Source.Path = "data/records.jsonl"
	assert.Equal(t, []string{"data/records.jsonl", "data/records.schema.json"}, watchedFiles(c))

	c.Source.Kind = config.SourceSQLite
	c.Source.Path = "records.db"
	assert.Equal(t, []string{"records.db"}, watchedFiles(c))
}

func TestBuildLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mxv.log")
	l, err := buildLogger(config.LoggingConfig{Level: "warn", File: path}, false)
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kept")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")

	l, err = buildLogger(config.LoggingConfig{Level: "bogus", File: path}, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "mxv version "+version+"\n", out.String())
}
