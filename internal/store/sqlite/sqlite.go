// Package sqlite implements the persistence interfaces on an embedded
// SQLite database. It is the default store for single-node deployments
// and for tests; the schema mirrors the historical service tables.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"zena/internal/shared/logging"
)

// Store is a SQLite-backed implementation of store.Store.
type Store struct {
	conn   *sql.DB
	logger logging.Logger
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string, logger logging.Logger) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one
	// so concurrent reads see the same data.
	if strings.Contains(path, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logging.OrNop(logger)}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS checkins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			mood INTEGER,
			energy INTEGER,
			workload INTEGER,
			strain INTEGER,
			climate INTEGER,
			disconnect INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_checkins_user_ts ON checkins(user_id, ts DESC);

		CREATE TABLE IF NOT EXISTS who5 (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			w1 INTEGER, w2 INTEGER, w3 INTEGER, w4 INTEGER, w5 INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_who5_user_ts ON who5(user_id, ts DESC);

		CREATE TABLE IF NOT EXISTS karasek_short (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			demand INTEGER, control INTEGER, support INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_karasek_user_ts ON karasek_short(user_id, ts DESC);

		CREATE TABLE IF NOT EXISTS eri_short (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			effort INTEGER, reward INTEGER, overcommit INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_eri_user_ts ON eri_short(user_id, ts DESC);

		CREATE TABLE IF NOT EXISTS uwes9 (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			vigor INTEGER, dedication INTEGER, absorption INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_uwes_user_ts ON uwes9(user_id, ts DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			time_window TEXT NOT NULL,
			score INTEGER NOT NULL,
			trend INTEGER,
			explanation TEXT NOT NULL,
			computed_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_user_window ON scores(user_id, time_window, computed_at DESC);

		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			status TEXT NOT NULL,
			target_role TEXT NOT NULL,
			user_consent INTEGER NOT NULL,
			anonymized_message INTEGER NOT NULL,
			primary_axis TEXT NOT NULL,
			notes TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS recommendations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recommendations_user ON recommendations(user_id, created_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// sqliteTime is the canonical timestamp format for range comparisons
// against datetime('now', ...).
const sqliteTime = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func (s *Store) execContext(ctx context.Context, query string, args ...any) error {
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}
