package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// SQLiteStore implements Store using a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath. It auto-creates the
// parent directory and runs schema migrations.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for WAL mode simplicity.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate runs schema migrations up to the current version.
func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create version table: %w", err)
	}

	var ver int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		ver = 0
	} else if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	if ver < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if ver == 0 {
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("write version: %w", err)
		}
	} else if ver != schemaVersion {
		if _, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) migrateV1() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS closed_windows (
		id        TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		record    TEXT NOT NULL,
		closed_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_closed_windows_closed_at ON closed_windows(closed_at)`)
	if err != nil {
		return fmt.Errorf("create closed_windows table: %w", err)
	}
	return nil
}

// RecordClosed persists one closed window.
func (s *SQLiteStore) RecordClosed(ctx context.Context, w ClosedWindow) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.ClosedAt.IsZero() {
		w.ClosedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO closed_windows (id, title, record, closed_at) VALUES (?, ?, ?, ?)`,
		w.ID, w.Title, string(w.Record), w.ClosedAt)
	if err != nil {
		return fmt.Errorf("insert closed window: %w", err)
	}
	return nil
}

// ListClosed returns history entries, newest first.
func (s *SQLiteStore) ListClosed(ctx context.Context, opts ListOpts) ([]ClosedWindow, error) {
	query := `SELECT id, title, record, closed_at FROM closed_windows`
	var args []any
	if !opts.Since.IsZero() {
		query += ` WHERE closed_at >= ?`
		args = append(args, opts.Since)
	}
	query += ` ORDER BY closed_at DESC, id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query closed windows: %w", err)
	}
	defer rows.Close()

	var out []ClosedWindow
	for rows.Next() {
		w, err := scanClosedWindow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// TakeLatest removes and returns the most recently closed window.
func (s *SQLiteStore) TakeLatest(ctx context.Context) (*ClosedWindow, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, title, record, closed_at FROM closed_windows
		 ORDER BY closed_at DESC, id DESC LIMIT 1`)
	w, err := scanClosedWindow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM closed_windows WHERE id = ?`, w.ID); err != nil {
		return nil, fmt.Errorf("delete closed window: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &w, nil
}

// Clear removes all history entries.
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM closed_windows`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClosedWindow(row rowScanner) (ClosedWindow, error) {
	var w ClosedWindow
	var rec string
	if err := row.Scan(&w.ID, &w.Title, &rec, &w.ClosedAt); err != nil {
		if err == sql.ErrNoRows {
			return w, err
		}
		return w, fmt.Errorf("scan closed window: %w", err)
	}
	w.Record = []byte(rec)
	return w, nil
}
