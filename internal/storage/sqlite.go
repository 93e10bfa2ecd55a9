// Package storage provides SQLite-based persistence for progression and run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/paper-runner/internal/progression"
)

// Progression keys, one row each per profile.
const (
	KeyHealth     = "health"
	KeySpeed      = "speed"
	KeyTotalCoins = "totalCoins"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        int64
	RunID     string
	Profile   string
	Score     int
	Coins     int
	Frames    int
	CreatedAt time.Time
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
// Progression values are TEXT so a hand-edited or corrupt value loads as a
// default instead of failing the whole profile.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progression (
			profile TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, key)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			profile TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(profile, score DESC);
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

// ProfilePort persists one profile's progression. It implements progression.Port.
type ProfilePort struct {
	store   *Store
	profile string
}

var _ progression.Port = (*ProfilePort)(nil)

// Profile returns the progression port for the named profile.
func (s *Store) Profile(profile string) *ProfilePort {
	return &ProfilePort{store: s, profile: profile}
}

// Load reads the profile's stats. Missing or unparsable keys keep their
// default value; only database failures are returned as errors.
func (p *ProfilePort) Load() (progression.Stats, error) {
	stats := progression.DefaultStats()

	rows, err := p.store.db.Query(
		"SELECT key, value FROM progression WHERE profile = ?",
		p.profile,
	)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query progression: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return stats, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case KeyHealth:
			stats.Health = n
		case KeySpeed:
			stats.Speed = n
		case KeyTotalCoins:
			stats.Currency = n
		}
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Save writes all three progression values in one transaction.
func (p *ProfilePort) Save(stats progression.Stats) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	values := map[string]int{
		KeyHealth:     stats.Health,
		KeySpeed:      stats.Speed,
		KeyTotalCoins: stats.Currency,
	}
	for key, v := range values {
		_, err := tx.Exec(
			`INSERT INTO progression (profile, key, value, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			p.profile, key, strconv.Itoa(v),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progression: %w", err)
	}
	return nil
}

// Profiles lists every profile with saved progression.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT profile FROM progression ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// SaveRun records a finished run. An empty RunID gets a fresh UUID.
// Returns the stored record's run ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (run_id, profile, score, coins, frames) VALUES (?, ?, ?, ?, ?)",
		r.RunID, r.Profile, r.Score, r.Coins, r.Frames,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.RunID, nil
}

// RecentRuns retrieves the profile's latest runs, newest first.
func (s *Store) RecentRuns(profile string, limit int) ([]RunRecord, error) {
	return s.queryRuns(
		`SELECT id, run_id, profile, score, coins, frames, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		profile, limit,
	)
}

// TopRuns retrieves the profile's best runs by score.
func (s *Store) TopRuns(profile string, limit int) ([]RunRecord, error) {
	return s.queryRuns(
		`SELECT id, run_id, profile, score, coins, frames, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		profile, limit,
	)
}

func (s *Store) queryRuns(query, profile string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(query, profile, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Profile, &r.Score, &r.Coins, &r.Frames, &createdAt); err != nil {
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

// BestScore returns the profile's highest score, or 0 with no runs.
func (s *Store) BestScore(profile string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE profile = ?",
		profile,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// RunSummary contains aggregated statistics for a profile's runs.
type RunSummary struct {
	Profile     string
	RunsCount   int
	BestScore   int
	AvgScore    float64
	CoinsEarned int64
	LastPlayed  time.Time
}

// Summary aggregates the profile's run history.
func (s *Store) Summary(profile string) (*RunSummary, error) {
	sum := &RunSummary{Profile: profile}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(coins), 0), MAX(created_at)
		 FROM runs WHERE profile = ?`,
		profile,
	).Scan(&sum.RunsCount, &sum.BestScore, &sum.AvgScore, &sum.CoinsEarned, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run summary: %w", err)
	}
	sum.LastPlayed = parseTime(lastPlayed)

	return sum, nil
}

// ClearRuns deletes the profile's run history. Progression is untouched.
func (s *Store) ClearRuns(profile string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
