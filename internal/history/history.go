// Package history persists build results in a local SQLite database so past
// builds can be inspected from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit bounds Recent queries when the caller passes no limit.
const DefaultLimit = 20

// Entry is one recorded build.
type Entry struct {
	ID         string
	Started    time.Time
	Finished   time.Time
	Outcome    string
	Pages      int
	Assets     int
	DurationMS int64
	Commit     string
	Error      string
}

// Store records and lists build history entries.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens the history database at dbPath, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each sqlite connection gets its own in-memory database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		commit_hash TEXT,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one build entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, started, finished, outcome, pages, assets, duration_ms, commit_hash, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Started.UnixMilli(), e.Finished.UnixMilli(), e.Outcome,
		e.Pages, e.Assets, e.DurationMS, e.Commit, e.Error,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// falls back to DefaultLimit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started, finished, outcome, pages, assets, duration_ms, commit_hash, error
		 FROM builds ORDER BY started DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.ID, &started, &finished, &e.Outcome, &e.Pages, &e.Assets, &e.DurationMS, &e.Commit, &e.Error); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		e.Started = time.UnixMilli(started)
		e.Finished = time.UnixMilli(finished)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
