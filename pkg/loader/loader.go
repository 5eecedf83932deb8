package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// DefaultFile is the records file looked up when only a directory is given
const DefaultFile = "records.jsonl"

// SchemaSuffix names the optional schema sidecar: records.jsonl -> records.schema.json
const SchemaSuffix = ".schema.json"

// Option configures a load
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger logs skipped lines and schema decisions
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// LoadTable reads the table from records.jsonl in the given directory.
func LoadTable(dir string, opts ...Option) (*model.Table, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	return LoadTableFromFile(filepath.Join(dir, DefaultFile), opts...)
}

// LoadTableFromFile reads records from a JSONL export, one
// {"id", "createdTime", "fields"} object per line. The field schema comes
// from the sidecar file if present, otherwise it is inferred from the values.
func LoadTableFromFile(path string, opts ...Option) (*model.Table, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no records found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer file.Close()

	var records []model.Record
	scanner := bufio.NewScanner(file)
	// Records with long text or many attachments can exceed the default token size
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	skipped := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip malformed lines but continue loading the rest
			skipped++
			o.logger.Debug("skipping malformed record line", zap.Int("line", lineNum), zap.Error(err))
			continue
		}
		if rec.ID == "" {
			rec.ID = "rec" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading records file: %w", err)
	}
	if skipped > 0 {
		o.logger.Warn("skipped malformed record lines", zap.String("path", path), zap.Int("skipped", skipped))
	}

	table, err := loadSchema(SchemaPath(path))
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = &model.Table{Fields: InferFields(records)}
		o.logger.Debug("inferred schema", zap.Int("fields", len(table.Fields)))
	}
	if table.Name == "" {
		table.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	NormalizeKeys(table.Fields, records)
	table.Records = records
	return table, nil
}

// SchemaPath returns the sidecar schema path for a records file
func SchemaPath(recordsPath string) string {
	return strings.TrimSuffix(recordsPath, filepath.Ext(recordsPath)) + SchemaSuffix
}

func loadSchema(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	for i := range table.Fields {
		if table.Fields[i].ID == "" {
			table.Fields[i].ID = table.Fields[i].Name
		}
	}
	return &table, nil
}

// NormalizeKeys re-keys cell values stored under a field name to the field ID,
// so records exported "by name" work with an ID-based schema.
func NormalizeKeys(fields []model.Field, records []model.Record) {
	byName := make(map[string]string, len(fields))
	ids := make(map[string]bool, len(fields))
	for _, f := range fields {
		ids[f.ID] = true
		if f.Name != "" && f.Name != f.ID {
			byName[f.Name] = f.ID
		}
	}
	for i := range records {
		for key, val := range records[i].Fields {
			if ids[key] {
				continue
			}
			id, ok := byName[key]
			if !ok {
				continue
			}
			if _, taken := records[i].Fields[id]; !taken {
				records[i].Fields[id] = val
			}
			delete(records[i].Fields, key)
		}
	}
}
