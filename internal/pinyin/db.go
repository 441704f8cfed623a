package pinyin

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go driver

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// Chart columns feeding the pinyin table.
const (
	ColumnGroup     = "memory_palace_groups"
	ColumnVowelRoot = "∅"
	ColumnInitial   = "b"
	ColumnFinal     = "p"
	ColumnActor     = "AEOIU"
)

const schema = `
CREATE TABLE IF NOT EXISTS pinyin (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	group_key TEXT,
	vowel_root TEXT,
	initial TEXT,
	final TEXT,
	actor TEXT
);`

// DB is a SQLite sink for chart rows.
type DB struct {
	db   *sql.DB
	path string
}

// OpenDB opens or creates the database at path and ensures the pinyin table.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, herrors.IOError("create database directory", err).WithDetail("path", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, herrors.IOError("open pinyin database", err).WithDetail("path", path)
	}

	// Single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, herrors.IOError("set pragma", err).WithDetail("pragma", pragma)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, herrors.IOError("initialize pinyin schema", err).WithDetail("path", path)
	}

	return &DB{db: db, path: path}, nil
}

// InsertRows appends one pinyin row per chart row in a single transaction.
// Missing or blank columns are stored as NULL.
func (d *DB) InsertRows(ctx context.Context, rows []Row) (n int, err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, herrors.IOError("begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pinyin (group_key, vowel_root, initial, final, actor) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, herrors.IOError("prepare insert", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			nullable(row, ColumnGroup),
			nullable(row, ColumnVowelRoot),
			nullable(row, ColumnInitial),
			nullable(row, ColumnFinal),
			nullable(row, ColumnActor),
		); err != nil {
			return n, herrors.IOError("insert pinyin row", err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, herrors.IOError("commit pinyin rows", err)
	}

	slog.Info("pinyin_rows_inserted",
		slog.String("path", d.path),
		slog.Int("rows", n))
	return n, nil
}

// Count returns the number of stored rows.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pinyin`).Scan(&n); err != nil {
		return 0, herrors.IOError("count pinyin rows", err)
	}
	return n, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func nullable(row Row, column string) sql.NullString {
	v, ok := row.Get(column)
	return sql.NullString{String: v, Valid: ok}
}
