package record

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	tick      INTEGER NOT NULL,
	taken_at  INTEGER NOT NULL,
	state     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_tick ON snapshots(tick);
`

// SQLiteRecorder stores one full snapshot per tick in a SQLite database,
// so recorded runs can be queried or replayed after the fact.
type SQLiteRecorder struct {
	db   *sql.DB
	tick int64
}

// NewSQLiteRecorder opens (or creates) the database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	// Resume tick numbering when appending to an existing database.
	var next int64
	if err := db.QueryRow("SELECT COALESCE(MAX(tick)+1, 0) FROM snapshots").Scan(&next); err != nil {
		db.Close()
		return nil, fmt.Errorf("read last tick: %w", err)
	}

	return &SQLiteRecorder{db: db, tick: next}, nil
}

// Append inserts v as the next tick's snapshot row.
func (r *SQLiteRecorder) Append(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.Exec(
		"INSERT INTO snapshots (tick, taken_at, state) VALUES (?, ?, ?)",
		r.tick, time.Now().UnixMilli(), string(data),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	r.tick++
	return nil
}

// Ticks returns the number of recorded snapshots.
func (r *SQLiteRecorder) Ticks() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// Snapshot returns the raw JSON state recorded at the given tick.
func (r *SQLiteRecorder) Snapshot(tick int64) ([]byte, error) {
	var state string
	err := r.db.QueryRow("SELECT state FROM snapshots WHERE tick = ?", tick).Scan(&state)
	if err != nil {
		return nil, fmt.Errorf("query snapshot %d: %w", tick, err)
	}
	return []byte(state), nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
