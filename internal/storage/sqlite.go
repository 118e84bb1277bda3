// Package storage provides the SQLite journal of finished snake sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is write-only from the game's point of view: sessions are never
// restored from it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

// Store manages the SQLite database connection for the sessions journal.
type Store struct {
	db *sql.DB
}

// SessionEntry is one journaled session.
type SessionEntry struct {
	ID         int64
	SessionID  string
	Width      int
	Height     int
	Ticks      int64
	Length     int
	FruitEaten int
	EndReason  string
	Detail     string
	StartedAt  time.Time
	EndedAt    time.Time
	CreatedAt  time.Time
}

// Duration returns how long the session ran.
func (e SessionEntry) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
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

	// The driver goroutine and history readers share one file
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL DEFAULT 0,
			fruit_eaten INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			detail TEXT,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_length ON sessions(length DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at DESC);
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

// SaveSession records a finished session and returns the row ID.
func (s *Store) SaveSession(data multiplayer.SessionResultData) (int64, error) {
	if data.SessionID == "" {
		return 0, errors.New("storage: cannot save session: empty session id")
	}

	var detail sql.NullString
	if data.Detail != "" {
		detail = sql.NullString{String: data.Detail, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, width, height, ticks, length, fruit_eaten, end_reason, detail, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(data.SessionID),
		data.Width,
		data.Height,
		int64(data.Ticks),
		data.Length,
		data.FruitEaten,
		data.EndReason.String(),
		detail,
		data.StartedAt.UnixMilli(),
		data.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveSessionResult implements multiplayer.SessionResultSaver.
func (s *Store) SaveSessionResult(data multiplayer.SessionResultData) error {
	_, err := s.SaveSession(data)
	return err
}

var _ multiplayer.SessionResultSaver = (*Store)(nil)

const sessionColumns = `id, session_id, width, height, ticks, length, fruit_eaten,
	end_reason, detail, started_at, ended_at, created_at`

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY ended_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// LongestSessions returns the sessions with the greatest final length.
func (s *Store) LongestSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY length DESC, ticks DESC, id ASC LIMIT ?`,
		limit,
	)
}

// AllSessions returns every session in insertion order.
func (s *Store) AllSessions() ([]SessionEntry, error) {
	return s.querySessions(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY id ASC`)
}

// SessionByID retrieves a session by its session ID. Returns nil if absent.
func (s *Store) SessionByID(sessionID string) (*SessionEntry, error) {
	entries, err := s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) querySessions(query string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var (
			e                  SessionEntry
			detail             sql.NullString
			startedAt, endedAt int64
			createdAt          any
		)
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.Width,
			&e.Height,
			&e.Ticks,
			&e.Length,
			&e.FruitEaten,
			&e.EndReason,
			&detail,
			&startedAt,
			&endedAt,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		e.Detail = detail.String
		e.StartedAt = time.UnixMilli(startedAt)
		e.EndedAt = time.UnixMilli(endedAt)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestLength returns the greatest final length recorded, or 0.
func (s *Store) BestLength() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(length) FROM sessions").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best length: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats contains aggregated statistics over all sessions.
type Stats struct {
	Sessions    int
	BestLength  int
	AvgLength   float64
	TotalTicks  int64
	TotalFruit  int64
	LastEndedAt time.Time
}

// GetStats aggregates the whole journal.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastEnded sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(length), 0), COALESCE(AVG(length), 0),
		        COALESCE(SUM(ticks), 0), COALESCE(SUM(fruit_eaten), 0), MAX(ended_at)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.BestLength, &stats.AvgLength, &stats.TotalTicks, &stats.TotalFruit, &lastEnded)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if lastEnded.Valid {
		stats.LastEndedAt = time.UnixMilli(lastEnded.Int64)
	}
	return stats, nil
}

// ClearSessions deletes the whole journal.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
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
