// Package storage provides SQLite-based persistence for finished runs.
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
)

// DefaultPath is where the CLI keeps run history.
const DefaultPath = "~/.scorch/runs.db"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID           int64
	Player       string // "local" or the SSH user
	Character    string
	Score        int
	WrongAnswers int
	EndReason    string // "obstacle", "quiz", "health"; "" if the player left mid-run
	Duration     int    // running seconds
	CreatedAt    time.Time
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

	// Create parent directories
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
			player TEXT NOT NULL DEFAULT 'local',
			character_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			wrong_answers INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_character ON runs(character_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_character_top ON runs(character_id, score DESC);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Player == "" {
		r.Player = "local"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (player, character_id, score, wrong_answers, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Player, r.Character, r.Score, r.WrongAnswers, r.EndReason, r.Duration,
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

const runColumns = `id, player, character_id, score, wrong_answers, end_reason, duration_secs, created_at`

// TopRuns retrieves the best runs, ordered by score descending.
// An empty character returns runs of every character.
func (s *Store) TopRuns(character string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if character == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 WHERE character_id = ?
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			character, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return collectRuns(rows)
}

// RunByID retrieves a single run. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	if err := sc.Scan(&r.ID, &r.Player, &r.Character, &r.Score, &r.WrongAnswers, &r.EndReason, &r.Duration, &createdAt); err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
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

// HighScore returns the highest score, optionally for one character.
// Returns 0 if no runs exist.
func (s *Store) HighScore(character string) (int, error) {
	var score sql.NullInt64
	var err error
	if character == "" {
		err = s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	} else {
		err = s.db.QueryRow("SELECT MAX(score) FROM runs WHERE character_id = ?", character).Scan(&score)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes runs, optionally only those of one character.
func (s *Store) ClearRuns(character string) error {
	var err error
	if character == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE character_id = ?", character)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for a character.
type RunStats struct {
	Character  string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LongestRun int
	LastPlayed time.Time
	EndReasons map[string]int
}

// CharacterStats retrieves aggregated statistics for one character.
func (s *Store) CharacterStats(character string) (*RunStats, error) {
	stats := &RunStats{Character: character, EndReasons: make(map[string]int)}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(duration_secs), 0), MAX(created_at)
		 FROM runs WHERE character_id = ?`,
		character,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.LongestRun, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get character stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	rows, err := s.db.Query(
		`SELECT end_reason, COUNT(*) FROM runs WHERE character_id = ? GROUP BY end_reason`,
		character,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get end reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan end reason: %w", err)
		}
		stats.EndReasons[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// AllCharacterStats retrieves statistics for every character that has runs.
func (s *Store) AllCharacterStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT character_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list characters: %w", err)
	}

	var characters []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan character: %w", err)
		}
		characters = append(characters, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	all := make(map[string]*RunStats, len(characters))
	for _, c := range characters {
		st, err := s.CharacterStats(c)
		if err != nil {
			return nil, err
		}
		all[c] = st
	}
	return all, nil
}
