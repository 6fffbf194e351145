// Package storage provides SQLite-based persistence for level progress and
// attempt history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-memory/internal/games/memory"
)

// DefaultPlayer names the local player in the attempt history.
const DefaultPlayer = "local"

// remotePrefix keeps remote player names apart from DefaultPlayer.
const remotePrefix = "ssh:"

// RemotePlayer returns the player name for an SSH user. Any user name,
// including "local", maps to its own progress and history.
func RemotePlayer(user string) string {
	return remotePrefix + user
}

// ProgressKey returns the progress key for player. Local play uses the bare
// "current_level" key; remote players get their own.
func ProgressKey(player string) string {
	if player == "" || player == DefaultPlayer {
		return "current_level"
	}
	return "current_level:" + player
}

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// AttemptEntry is one recorded level attempt.
type AttemptEntry struct {
	ID           int64
	AttemptID    string
	Player       string
	Level        int
	Outcome      memory.Outcome
	SecondsLeft  int
	MatchedPairs int
	TotalPairs   int
	CreatedAt    time.Time
}

// PlayerStats contains aggregated attempt statistics for a player.
type PlayerStats struct {
	Player     string
	Attempts   int
	Cleared    int
	TimedOut   int
	Restarted  int
	BestLevel  int // Highest level cleared, 0 if none
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
		CREATE TABLE IF NOT EXISTS progress (
			progress_key TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			seconds_left INTEGER NOT NULL DEFAULT 0,
			matched_pairs INTEGER NOT NULL DEFAULT 0,
			total_pairs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_player ON attempts(player);
		CREATE INDEX IF NOT EXISTS idx_attempts_level ON attempts(player, level DESC);
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

// LoadLevel returns the level saved under key and whether one exists.
func (s *Store) LoadLevel(key string) (int, bool, error) {
	var level int
	err := s.db.QueryRow("SELECT level FROM progress WHERE progress_key = ?", key).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return level, true, nil
}

// SaveLevel stores level under key.
func (s *Store) SaveLevel(key string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (progress_key, level, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(progress_key) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		key, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress puts player back on level 1.
func (s *Store) ResetProgress(player string) error {
	if err := s.SaveLevel(ProgressKey(player), 1); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// SaveAttempt records a finished attempt and returns its generated id.
func (s *Store) SaveAttempt(player string, a memory.Attempt) (string, error) {
	attemptID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO attempts
		 (attempt_id, player, level, outcome, seconds_left, matched_pairs, total_pairs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attemptID, player, a.Level, string(a.Outcome), a.SecondsLeft, a.MatchedPairs, a.TotalPairs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save attempt: %w", err)
	}
	return attemptID, nil
}

// RecentAttempts retrieves player's most recent attempts, newest first.
func (s *Store) RecentAttempts(player string, limit int) ([]AttemptEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, attempt_id, player, level, outcome, seconds_left, matched_pairs, total_pairs, created_at
		 FROM attempts
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var entries []AttemptEntry
	for rows.Next() {
		var e AttemptEntry
		var outcome string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.AttemptID, &e.Player, &e.Level, &outcome,
			&e.SecondsLeft, &e.MatchedPairs, &e.TotalPairs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Outcome = memory.Outcome(outcome)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestLevel returns the highest level player has cleared, 0 if none.
func (s *Store) BestLevel(player string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM attempts WHERE player = ? AND outcome = ?",
		player, string(memory.OutcomeCleared),
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// PlayerStats retrieves aggregated statistics for player.
func (s *Store) PlayerStats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN level END), 0),
		        MAX(created_at)
		 FROM attempts WHERE player = ?`,
		string(memory.OutcomeCleared),
		string(memory.OutcomeTimedOut),
		string(memory.OutcomeRestarted),
		string(memory.OutcomeCleared),
		player,
	).Scan(&stats.Attempts, &stats.Cleared, &stats.TimedOut, &stats.Restarted, &stats.BestLevel, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearAttempts deletes player's attempt history.
func (s *Store) ClearAttempts(player string) error {
	if _, err := s.db.Exec("DELETE FROM attempts WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	return nil
}

// Progress returns a memory.ProgressBackend bound to player.
func (s *Store) Progress(player string) memory.ProgressBackend {
	return playerProgress{store: s, player: player}
}

// Recorder returns a memory.AttemptRecorder bound to player.
func (s *Store) Recorder(player string) memory.AttemptRecorder {
	return playerRecorder{store: s, player: player}
}

type playerProgress struct {
	store  *Store
	player string
}

func (p playerProgress) LoadLevel() (int, bool, error) {
	return p.store.LoadLevel(ProgressKey(p.player))
}

func (p playerProgress) SaveLevel(level int) error {
	return p.store.SaveLevel(ProgressKey(p.player), level)
}

type playerRecorder struct {
	store  *Store
	player string
}

func (r playerRecorder) RecordAttempt(a memory.Attempt) error {
	_, err := r.store.SaveAttempt(r.player, a)
	return err
}

// parseTime handles both time.Time and string datetime columns.
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
