// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// NoWinner is stored when a match ended without a winner.
const NoWinner = -1

// End reasons recorded with a match.
const (
	EndVictory = "victory"
	EndQuit    = "quit"
	EndScript  = "script"
)

// ErrNotFound is returned when a match id is not in the store.
var ErrNotFound = errors.New("storage: match not found")

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is the summary of one finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Scenario  string
	Seed      int64
	Winner    int // Player id, or NoWinner
	Turns     int
	Events    int
	EndReason string
	CreatedAt time.Time
}

// ScenarioStats contains aggregated results for one scenario.
type ScenarioStats struct {
	Scenario   string
	Matches    int
	Wins       map[int]int // Player id -> victories
	NoWinner   int
	AvgTurns   float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT -1,
			turns INTEGER NOT NULL DEFAULT 0,
			events INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_scenario ON matches(scenario);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// NewMatchID returns a random 8 character match id.
func NewMatchID() string {
	b := make([]byte, 5) // 40 bits encode to exactly 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return strings.ToUpper(base32.StdEncoding.EncodeToString(b))
}

// SaveMatch records a finished match. An empty MatchID is filled in.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	if m.MatchID == "" {
		m.MatchID = NewMatchID()
	}
	if m.Scenario == "" {
		return 0, fmt.Errorf("storage: match %s has no scenario", m.MatchID)
	}
	res, err := s.db.Exec(
		`INSERT INTO matches (match_id, scenario, seed, winner, turns, events, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Scenario, m.Seed, m.Winner, m.Turns, m.Events, m.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, scenario, seed, winner, turns, events, end_reason, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var m MatchRecord
	var createdAt any
	if err := row.Scan(&m.ID, &m.MatchID, &m.Scenario, &m.Seed, &m.Winner,
		&m.Turns, &m.Events, &m.EndReason, &createdAt); err != nil {
		return m, err
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID.
func (s *Store) MatchByID(matchID string) (MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		strings.ToUpper(matchID),
	)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return MatchRecord{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// MatchesByScenario retrieves the most recent matches of one scenario.
func (s *Store) MatchesByScenario(scenario string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE scenario = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenario matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// ScenarioStats retrieves aggregated results for a scenario.
// A scenario that was never played yields zero counts.
func (s *Store) ScenarioStats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario, Wins: make(map[int]int)}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(turns), 0) FROM matches WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Matches, &stats.AvgTurns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	if stats.Matches == 0 {
		return stats, nil
	}

	rows, err := s.db.Query(
		`SELECT winner, COUNT(*) FROM matches WHERE scenario = ? GROUP BY winner`,
		scenario,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario winners: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var winner, count int
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if winner == NoWinner {
			stats.NoWinner = count
		} else {
			stats.Wins[winner] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE scenario = ? ORDER BY created_at DESC LIMIT 1`,
		scenario,
	).Scan(&lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
