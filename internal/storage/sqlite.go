// Package storage provides SQLite-based persistence for session replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only input journals are stored: a replay is a seed, a configuration and
// the input events of a session. Simulation state is never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing view of a stored replay, without its events.
type ReplayEntry struct {
	ID         int64
	GameID     string
	Session    string // "local" or the SSH user
	Seed       int64
	ConfigName string
	Frames     uint64
	Events     int
	StartedAt  time.Time
}

// ReplayStats contains aggregated statistics over stored replays.
type ReplayStats struct {
	GameID      string
	Count       int
	TotalFrames uint64
	LastPlayed  time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config_name TEXT NOT NULL DEFAULT '',
			config_yaml TEXT NOT NULL DEFAULT '',
			width REAL NOT NULL,
			height REAL NOT NULL,
			frames INTEGER NOT NULL,
			started_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id, started_at DESC);

		CREATE TABLE IF NOT EXISTS replay_events (
			replay_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			action INTEGER NOT NULL,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, seq)
		);
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

// SaveReplay records a finished session. Returns the ID of the new replay.
func (s *Store) SaveReplay(d replay.Data, session string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.Exec(
		`INSERT INTO replays (game_id, session, version, seed, config_name, config_yaml, width, height, frames, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.GameID, session, d.Version, d.Seed, d.ConfigName, d.ConfigYAML,
		d.Width, d.Height, int64(d.Frames), d.StartTime.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO replay_events (replay_id, seq, tick, action, x, y) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range d.Events {
		if _, err := stmt.Exec(id, i, int64(ev.Tick), int(ev.Action), ev.X, ev.Y); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// ListReplays retrieves the most recent replays for the given game.
// An empty gameID lists every game.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.session, r.seed, r.config_name, r.frames, r.started_at,
		        (SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)
		 FROM replays r
		 WHERE ? = '' OR r.game_id = ?
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var frames, startedAt int64
		if err := rows.Scan(&e.ID, &e.GameID, &e.Session, &e.Seed, &e.ConfigName, &frames, &startedAt, &e.Events); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Frames = uint64(frames)
		e.StartedAt = time.UnixMilli(startedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadReplay retrieves a replay with all of its events.
// Returns ErrNotFound if the ID does not exist.
func (s *Store) LoadReplay(id int64) (*replay.Data, error) {
	d := &replay.Data{ID: id}
	var frames, startedAt int64
	err := s.db.QueryRow(
		`SELECT game_id, version, seed, config_name, config_yaml, width, height, frames, started_at
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&d.GameID, &d.Version, &d.Seed, &d.ConfigName, &d.ConfigYAML, &d.Width, &d.Height, &frames, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load replay %d: %w", id, err)
	}
	d.Frames = uint64(frames)
	d.StartTime = time.UnixMilli(startedAt)

	rows, err := s.db.Query(
		"SELECT tick, action, x, y FROM replay_events WHERE replay_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay events: %w", err)
	}
	defer rows.Close()

	d.Events = make([]replay.Event, 0)
	for rows.Next() {
		var ev replay.Event
		var tick int64
		var action int
		if err := rows.Scan(&tick, &action, &ev.X, &ev.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		ev.Tick = uint64(tick)
		ev.Action = core.Action(action)
		d.Events = append(d.Events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return d, nil
}

// DeleteReplay removes a replay and its events.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// GetReplayStats retrieves aggregated statistics for a specific game.
func (s *Store) GetReplayStats(gameID string) (*ReplayStats, error) {
	stats := &ReplayStats{GameID: gameID}

	var frames, lastPlayed int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(MAX(started_at), 0)
		 FROM replays WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Count, &frames, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}

	stats.TotalFrames = uint64(frames)
	if lastPlayed > 0 {
		stats.LastPlayed = time.UnixMilli(lastPlayed)
	}
	return stats, nil
}
