// Package store keeps a table's schema and records in a sqlite database so a
// base exported once can be reopened without re-reading JSONL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Dicklesworthstone/matrix_viewer/pkg/model"
)

// Driver names registered by the two sqlite implementations
const (
	DriverCGO  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// DB handles table persistence
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenDB opens or creates the database at the given path. An empty driver
// selects the pure Go implementation.
func OpenDB(dbPath, driver string, logger *zap.Logger) (*DB, error) {
	if driver == "" {
		driver = DriverPure
	}
	if driver != DriverPure && driver != DriverCGO {
		return nil, fmt.Errorf("unknown sqlite driver %q", driver)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sdb := &DB{db: db, logger: logger}
	if err := sdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Debug("opened record store", zap.String("path", dbPath), zap.String("driver", driver))
	return sdb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tables (
		name TEXT PRIMARY KEY,
		table_id TEXT DEFAULT '',
		imported_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fields (
		table_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		choices TEXT DEFAULT '[]',
		PRIMARY KEY (table_name, id)
	);

	CREATE TABLE IF NOT EXISTS records (
		table_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		created_time DATETIME,
		fields TEXT NOT NULL,
		PRIMARY KEY (table_name, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_table ON records(table_name, position);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Import replaces everything stored under name with the given table.
func (d *DB) Import(ctx context.Context, name string, t *model.Table) error {
	if t == nil {
		return fmt.Errorf("import %s: nil table", name)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM tables WHERE name = ?`,
		`DELETE FROM fields WHERE table_name = ?`,
		`DELETE FROM records WHERE table_name = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, name); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tables (name, table_id, imported_at) VALUES (?, ?, ?)
	`, name, t.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert table: %w", err)
	}

	for i, f := range t.Fields {
		choices, err := json.Marshal(f.Choices)
		if err != nil {
			return fmt.Errorf("encode choices for %s: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fields (table_name, position, id, name, type, choices)
			VALUES (?, ?, ?, ?, ?, ?)
		`, name, i, f.ID, f.Name, string(f.Type), string(choices)); err != nil {
			return fmt.Errorf("insert field %s: %w", f.ID, err)
		}
	}

	for i, r := range t.Records {
		values, err := json.Marshal(r.Fields)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", r.ID, err)
		}
		var created sql.NullTime
		if !r.CreatedTime.IsZero() {
			created = sql.NullTime{Time: r.CreatedTime.UTC(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (table_name, position, id, created_time, fields)
			VALUES (?, ?, ?, ?, ?)
		`, name, i, r.ID, created, string(values)); err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	d.logger.Info("imported table",
		zap.String("table", name),
		zap.Int("fields", len(t.Fields)),
		zap.Int("records", len(t.Records)))
	return nil
}

// LoadTable reads a previously imported table, keeping field and record order.
func (d *DB) LoadTable(ctx context.Context, name string) (*model.Table, error) {
	t := &model.Table{Name: name}
	err := d.db.QueryRowContext(ctx, `SELECT table_id FROM tables WHERE name = ?`, name).Scan(&t.ID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("table %q not found in store", name)
	}
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}

	fields, err := d.loadFields(ctx, name)
	if err != nil {
		return nil, err
	}
	t.Fields = fields

	records, err := d.loadRecords(ctx, name)
	if err != nil {
		return nil, err
	}
	t.Records = records
	return t, nil
}

func (d *DB) loadFields(ctx context.Context, name string) ([]model.Field, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, type, choices
		FROM fields
		WHERE table_name = ?
		ORDER BY position
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	var fields []model.Field
	for rows.Next() {
		var f model.Field
		var typ, choices string
		if err := rows.Scan(&f.ID, &f.Name, &typ, &choices); err != nil {
			return nil, err
		}
		f.Type = model.FieldType(typ)
		if err := json.Unmarshal([]byte(choices), &f.Choices); err != nil {
			return nil, fmt.Errorf("decode choices for %s: %w", f.ID, err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (d *DB) loadRecords(ctx context.Context, name string) ([]model.Record, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, created_time, fields
		FROM records
		WHERE table_name = ?
		ORDER BY position
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var created sql.NullTime
		var values string
		if err := rows.Scan(&r.ID, &created, &values); err != nil {
			return nil, err
		}
		if created.Valid {
			r.CreatedTime = created.Time
		}
		if err := json.Unmarshal([]byte(values), &r.Fields); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Tables lists imported table names.
func (d *DB) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT name FROM tables ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
