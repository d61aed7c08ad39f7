// Package storage keeps the results of finished climbs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only run summaries are stored; a run in progress is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skyclimb/internal/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished climb.
type Run struct {
	ID        int64
	Mode      string
	Seed      int64
	Height    int // Tiles
	Platforms int
	Rescues   int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunFromSummary converts a game summary into a storable run.
func RunFromSummary(s core.RunSummary) Run {
	return Run{
		Mode:      s.Mode,
		Seed:      s.Seed,
		Height:    s.Height,
		Platforms: s.Platforms,
		Rescues:   s.Rescues,
		Duration:  time.Duration(s.Duration * float64(time.Second)),
	}
}

// RunStats aggregates the runs of one mode.
type RunStats struct {
	Mode          string
	Runs          int
	BestHeight    int
	AvgHeight     float64
	TotalDuration time.Duration
	Rescues       int
	LastPlayed    time.Time
}

// DefaultPath returns ~/.skyclimb/runs.db.
func DefaultPath() string {
	return filepath.Join("~", ".skyclimb", "runs.db")
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			height INTEGER NOT NULL,
			platforms INTEGER NOT NULL DEFAULT 0,
			rescues INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, height DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(mode, seed, height DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its id. A zero CreatedAt is
// stamped with the current time.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Mode == "" {
		return 0, errors.New("storage: run has no mode")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (mode, seed, height, platforms, rescues, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Seed, r.Height, r.Platforms, r.Rescues, r.Duration.Milliseconds(),
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, mode, seed, height, platforms, rescues, duration_ms, created_at`

// TopRuns returns the highest runs of a mode, best first. Ties go to the
// earlier run.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE mode = ?
		 ORDER BY height DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// TopRunsForSeed ranks the runs of one tower, e.g. today's daily climb.
func (s *Store) TopRunsForSeed(mode string, seed int64, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE mode = ? AND seed = ?
		 ORDER BY height DESC, id ASC
		 LIMIT ?`,
		mode, seed, limit,
	)
}

// RecentRuns returns the latest runs across all modes.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			durMs     int64
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Mode, &r.Seed, &r.Height, &r.Platforms, &r.Rescues, &durMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestHeight returns the best height of a mode, or 0 with no runs.
func (s *Store) BestHeight(mode string) (int, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(height), 0) FROM runs WHERE mode = ?",
		mode,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get best height: %w", err)
	}
	return best, nil
}

// ClearRuns deletes every run of a mode.
func (s *Store) ClearRuns(mode string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the runs of a mode. A mode without runs yields zero stats.
func (s *Store) Stats(mode string) (*RunStats, error) {
	stats := &RunStats{Mode: mode}

	var (
		totalMs    int64
		lastPlayed sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(height), 0), COALESCE(AVG(height), 0),
		        COALESCE(SUM(duration_ms), 0), COALESCE(SUM(rescues), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.BestHeight, &stats.AvgHeight, &totalMs, &stats.Rescues, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	stats.TotalDuration = time.Duration(totalMs) * time.Millisecond
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

// AllStats aggregates every mode that has runs.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(height), AVG(height), SUM(duration_ms), SUM(rescues), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var (
			st         RunStats
			totalMs    int64
			lastPlayed string
		)
		if err := rows.Scan(&st.Mode, &st.Runs, &st.BestHeight, &st.AvgHeight, &totalMs, &st.Rescues, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalDuration = time.Duration(totalMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
