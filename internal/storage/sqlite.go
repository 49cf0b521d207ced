// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/danmaku/internal/sim"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID         int64
	Pattern    string
	Seed       int64
	Ticks      int
	Spawned    int
	Peak       int
	PlayerHits int
	Damage     float64
	Absorbed   int
	WallHits   int
	Errors     int
	CreatedAt  time.Time
}

// RunFromStats converts the totals of a finished simulation.
func RunFromStats(st sim.Stats) Run {
	return Run{
		Pattern:    st.Scenario,
		Seed:       st.Seed,
		Ticks:      st.Ticks,
		Spawned:    st.Spawned,
		Peak:       st.Peak,
		PlayerHits: st.PlayerHits,
		Damage:     st.Damage,
		Absorbed:   st.Absorbed,
		WallHits:   st.WallHits,
		Errors:     st.Errors,
	}
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
			pattern TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			peak INTEGER NOT NULL DEFAULT 0,
			player_hits INTEGER NOT NULL DEFAULT 0,
			damage REAL NOT NULL DEFAULT 0,
			absorbed INTEGER NOT NULL DEFAULT 0,
			wall_hits INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_pattern ON runs(pattern);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(pattern, player_hits ASC, ticks DESC);
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

// SaveRun records a run and returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (pattern, seed, ticks, spawned, peak, player_hits, damage, absorbed, wall_hits, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Pattern, r.Seed, r.Ticks, r.Spawned, r.Peak,
		r.PlayerHits, r.Damage, r.Absorbed, r.WallHits, r.Errors,
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

// SaveStats records the totals of a finished simulation.
func (s *Store) SaveStats(st sim.Stats) (int64, error) {
	return s.SaveRun(RunFromStats(st))
}

const runColumns = `id, pattern, seed, ticks, spawned, peak, player_hits, damage, absorbed, wall_hits, errors, created_at`

// BestRuns retrieves the best N runs for the given pattern: fewest hits
// first, then longest.
func (s *Store) BestRuns(pattern string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE pattern = ?
		 ORDER BY player_hits ASC, ticks DESC, id ASC
		 LIMIT ?`,
		pattern, limit,
	)
}

// RecentRuns retrieves the most recent runs across all patterns.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// AllRuns retrieves every run of the given pattern (no limit).
func (s *Store) AllRuns(pattern string) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE pattern = ?
		 ORDER BY id ASC`,
		pattern,
	)
}

// RunByID retrieves one run. It returns nil if no such run exists.
func (s *Store) RunByID(id int64) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Pattern, &r.Seed, &r.Ticks, &r.Spawned, &r.Peak,
			&r.PlayerHits, &r.Damage, &r.Absorbed, &r.WallHits, &r.Errors,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs of the given pattern.
func (s *Store) ClearRuns(pattern string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE pattern = ?", pattern)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PatternStats contains aggregated statistics for a pattern.
type PatternStats struct {
	Pattern   string
	Runs      int
	FewestHit int
	AvgHits   float64
	MaxPeak   int
	TotalTick int64
	LastRun   time.Time
}

// GetPatternStats retrieves aggregated statistics for a specific pattern.
func (s *Store) GetPatternStats(pattern string) (*PatternStats, error) {
	stats := &PatternStats{Pattern: pattern}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(player_hits), 0), COALESCE(AVG(player_hits), 0),
		        COALESCE(MAX(peak), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs WHERE pattern = ?`,
		pattern,
	).Scan(&stats.Runs, &stats.FewestHit, &stats.AvgHits, &stats.MaxPeak, &stats.TotalTick, &lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get pattern stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// GetAllPatternStats retrieves statistics for every pattern that has runs.
func (s *Store) GetAllPatternStats() (map[string]*PatternStats, error) {
	rows, err := s.db.Query(
		`SELECT pattern, COUNT(*), MIN(player_hits), AVG(player_hits), MAX(peak), SUM(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY pattern`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pattern stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PatternStats)
	for rows.Next() {
		var ps PatternStats
		var lastRun any
		if err := rows.Scan(&ps.Pattern, &ps.Runs, &ps.FewestHit, &ps.AvgHits, &ps.MaxPeak, &ps.TotalTick, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRun = parseTime(lastRun)
		stats[ps.Pattern] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
