// Package config loads the matrix configuration: which fields group the rows
// and columns, where labels come from, the default cell grid, and the record
// source to read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/matrix"
	"github.com/Dicklesworthstone/matrix_viewer/pkg/settings"
)

// DefaultPath is where mxv looks for its configuration
const DefaultPath = ".mxv/config.yaml"

// Source kinds
const (
	SourceJSONL  = "jsonl"
	SourceSQLite = "sqlite"
)

// Config holds all matrix configuration.
type Config struct {
	// Label source: "field" (from record values) or "static"
	LabelSource     string `yaml:"label_source"`
	StaticRowLabels string `yaml:"static_row_labels"` // ';' separated
	StaticColLabels string `yaml:"static_col_labels"` // ';' separated

	// Cards per cell
	CellRows int `yaml:"cell_rows"`
	CellCols int `yaml:"cell_cols"`

	// Field selectors (field ID or name)
	PrimaryField     string `yaml:"primary_field"`
	RowGroupField    string `yaml:"row_group_field"`
	ColumnGroupField string `yaml:"column_group_field"`
	ImageField       string `yaml:"image_field"`
	CardColorField   string `yaml:"card_color_field"`
	SortField        string `yaml:"sort_field"`

	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`

	// Reload the matrix when the source file changes
	Watch bool `yaml:"watch"`
}

// SourceConfig configures the record source.
type SourceConfig struct {
	Kind   string `yaml:"kind"`   // jsonl, sqlite
	Path   string `yaml:"path"`   // JSONL file or sqlite database
	Driver string `yaml:"driver"` // sqlite only: sqlite3 (cgo) or sqlite (pure Go)
	Table  string `yaml:"table"`  // sqlite only: table name
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LabelSource: string(matrix.LabelModeDerived),
		CellRows:    settings.DefaultRowsPerCell,
		CellCols:    settings.DefaultColsPerCell,
		Source: SourceConfig{
			Kind:   SourceJSONL,
			Path:   "records.jsonl",
			Driver: "sqlite",
			Table:  "records",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "mxv.log",
		},
		Watch: true,
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MXV_SOURCE"); v != "" {
		c.Source.Path = v
		if ext := strings.ToLower(filepath.Ext(v)); ext == ".db" || ext == ".sqlite" || ext == ".sqlite3" {
			c.Source.Kind = SourceSQLite
		}
	}
	if v := os.Getenv("MXV_PRIMARY_FIELD"); v != "" {
		c.PrimaryField = v
	}
	if v := os.Getenv("MXV_ROW_FIELD"); v != "" {
		c.RowGroupField = v
	}
	if v := os.Getenv("MXV_COLUMN_FIELD"); v != "" {
		c.ColumnGroupField = v
	}
	if v := os.Getenv("MXV_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MXV_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = b
		}
	}
}

// Validate checks the parts of the config that do not need the table schema.
// Unset selectors come back as *matrix.NotConfiguredError; whether set
// selectors name real fields is checked later by matrix.Resolve.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceJSONL, SourceSQLite:
	default:
		return fmt.Errorf("invalid source kind %q (want %s or %s)", c.Source.Kind, SourceJSONL, SourceSQLite)
	}
	if c.Source.Path == "" {
		return fmt.Errorf("source path cannot be empty")
	}

	switch matrix.LabelMode(c.LabelSource) {
	case matrix.LabelModeDerived, matrix.LabelModeStatic, "":
	default:
		return fmt.Errorf("invalid label_source %q (want field or static)", c.LabelSource)
	}

	// Without a table only unset selectors are known to be missing.
	var unset []matrix.FieldStatus
	for _, s := range []matrix.FieldStatus{
		{Key: matrix.KeyPrimaryField, Ref: c.PrimaryField, Required: true},
		{Key: matrix.KeyRowGroupField, Ref: c.RowGroupField, Required: true},
		{Key: matrix.KeyColumnGroupField, Ref: c.ColumnGroupField, Required: true},
	} {
		if s.Ref == "" {
			unset = append(unset, s)
		}
	}
	if len(unset) > 0 {
		return &matrix.NotConfiguredError{Statuses: unset}
	}
	return nil
}

// Selection converts the config into the matrix selection
func (c *Config) Selection() matrix.Selection {
	return matrix.Selection{
		PrimaryField:     c.PrimaryField,
		RowGroupField:    c.RowGroupField,
		ColumnGroupField: c.ColumnGroupField,
		ImageField:       c.ImageField,
		CardColorField:   c.CardColorField,
		SortField:        c.SortField,
		LabelSource:      matrix.LabelMode(c.LabelSource),
		StaticRowLabels:  c.StaticRowLabels,
		StaticColLabels:  c.StaticColLabels,
	}
}

// Display returns the startup display settings. Out-of-range grid sizes are
// clamped, not rejected.
func (c *Config) Display() settings.Display {
	d := settings.Default(c.CardColorField)
	d.RowsPerCell = c.CellRows
	d.ColsPerCell = c.CellCols
	return d.Normalize()
}
