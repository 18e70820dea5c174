// Package store provides SQLite persistence for tagged analysis runs.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mea-core/conduct"
	"mea-core/spike"
)

// Store handles SQLite persistence. Concrete type, not an interface.
// All methods are safe for concurrent use via the internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Run is one persisted tagging run.
type Run struct {
	ID        string
	Source    string
	MinSep    float64
	MinEvents int
	MaxJitter float64
	Spikes    int
	Flagged   int
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	min_sep REAL NOT NULL,
	min_events INTEGER NOT NULL,
	max_jitter REAL NOT NULL,
	spikes INTEGER NOT NULL,
	flagged INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS run_spikes (
	run_id TEXT NOT NULL REFERENCES runs(id),
	idx INTEGER NOT NULL,
	electrode TEXT NOT NULL,
	time REAL NOT NULL,
	amplitude REAL NOT NULL,
	threshold REAL NOT NULL,
	conductance INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// Open creates a Store at the given database path, creating tables as
// needed. File-based databases run in WAL mode; ":memory:" is supported
// for tests via a single shared-cache connection.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun persists a tagged table with its parameters and returns the new
// run ID. The run row and its spikes commit atomically.
func (s *Store) SaveRun(source string, p conduct.Params, t *spike.Table, flagged int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, source, min_sep, min_events, max_jitter, spikes, flagged, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, source, p.MinSep, p.MinEvents, p.MaxJitter, t.Len(), flagged, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_spikes (run_id, idx, electrode, time, amplitude, threshold, conductance)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, sp := range t.Rows() {
		if _, err := stmt.Exec(id, i, sp.Electrode, sp.Time, sp.Amplitude, sp.Threshold, boolToInt(sp.Conductance)); err != nil {
			return "", fmt.Errorf("insert spike %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, source, min_sep, min_events, max_jitter, spikes, flagged, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.MinSep, &r.MinEvents, &r.MaxJitter, &r.Spikes, &r.Flagged, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSpikes returns the stored spikes of a run in their original row order.
func (s *Store) RunSpikes(id string) ([]spike.Spike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT electrode, time, amplitude, threshold, conductance
		FROM run_spikes
		WHERE run_id = ?
		ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spikes []spike.Spike
	for rows.Next() {
		var sp spike.Spike
		var cond int
		if err := rows.Scan(&sp.Electrode, &sp.Time, &sp.Amplitude, &sp.Threshold, &cond); err != nil {
			return nil, err
		}
		sp.Conductance = cond != 0
		spikes = append(spikes, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if spikes == nil {
		return nil, fmt.Errorf("run %q not found", id)
	}
	return spikes, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
