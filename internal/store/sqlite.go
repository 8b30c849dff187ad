package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/lexiroute/internal/model"
)

// SQLiteStore keeps dispatch metadata in a SQLite database. It implements
// model.DispatchLog.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// dispatches table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS dispatches (
		id          TEXT PRIMARY KEY,
		provider    TEXT NOT NULL,
		model       TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		message     TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL,
		created_at  INTEGER NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating dispatches table: %w", err)
	}

	createIndex := `CREATE INDEX IF NOT EXISTS dispatches_created_at ON dispatches (created_at)`
	if _, err := db.Exec(createIndex); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating dispatches index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record inserts one dispatch entry. A zero CreatedAt is stamped with the
// current time.
func (s *SQLiteStore) Record(ctx context.Context, rec model.DispatchRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatches (id, provider, model, outcome, message, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Provider, rec.Model, rec.Outcome, rec.Message,
		rec.Duration.Milliseconds(), rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("recording dispatch %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.DispatchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provider, model, outcome, message, duration_ms, created_at
		 FROM dispatches ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing dispatches: %w", err)
	}
	defer rows.Close()

	var out []model.DispatchRecord
	for rows.Next() {
		var (
			rec        model.DispatchRecord
			durationMS int64
			createdMS  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.Model, &rec.Outcome, &rec.Message, &durationMS, &createdMS); err != nil {
			return nil, fmt.Errorf("scanning dispatch row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = time.UnixMilli(createdMS)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing dispatches: %w", err)
	}
	return out, nil
}

// Cleanup deletes entries older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UnixMilli()
	_, err := s.db.Exec("DELETE FROM dispatches WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up dispatches older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
