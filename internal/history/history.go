// Package history keeps a small record of processed documents so operators
// can see what ran and where the output landed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one processed document.
type Run struct {
	ID        int64
	Filename  string
	Scenes    int
	Pages     int
	Elapsed   time.Duration
	Output    string
	CreatedAt time.Time
}

// Store persists runs in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	filename   TEXT NOT NULL,
	scenes     INTEGER NOT NULL,
	pages      INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	output     TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run.
func (s *Store) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (filename, scenes, pages, elapsed_ms, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Filename, r.Scenes, r.Pages, r.Elapsed.Milliseconds(), r.Output,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, scenes, pages, elapsed_ms, output, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var elapsedMs int64
		var created string
		if err := rows.Scan(&r.ID, &r.Filename, &r.Scenes, &r.Pages, &elapsedMs, &r.Output, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
