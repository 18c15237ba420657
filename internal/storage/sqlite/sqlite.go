// Package sqlite implements the storage contract on SQLite through the pure
// Go modernc driver. It backs tests and local development, where running
// against the hosted Postgres database is impractical.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"tripdesk-backend/internal/storage"
)

// Ensure Store implements the full contract
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite
type Store struct {
	db *sql.DB
}

// New opens the database file, creating parent directories and the schema
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id            TEXT PRIMARY KEY,
		title         TEXT,
		start_date    TEXT,
		end_date      TEXT,
		description   TEXT NOT NULL DEFAULT '',
		owner_id      TEXT NOT NULL,
		currency_code TEXT NOT NULL DEFAULT 'JPY',
		created_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trip_days (
		id      TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		date    TEXT NOT NULL,
		UNIQUE (trip_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_id     TEXT REFERENCES trip_days(id) ON DELETE SET NULL,
		title      TEXT NOT NULL,
		start_time TEXT,
		end_time   TEXT,
		location   TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL DEFAULT '',
		order_no   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id           TEXT PRIMARY KEY,
		trip_id      TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		date         TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL,
		category     TEXT NOT NULL,
		amount       REAL NOT NULL,
		paid_by      TEXT,
		paid_by_name TEXT,
		split_with   TEXT NOT NULL DEFAULT '[]',
		created_at   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		trip_id  TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		amount   REAL NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'JPY'
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		kind       TEXT NOT NULL,
		done       INTEGER NOT NULL DEFAULT 0,
		sort_order INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS trip_members (
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		role    TEXT NOT NULL,
		PRIMARY KEY (trip_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS share_links (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		is_enabled INTEGER NOT NULL DEFAULT 1,
		expires_at INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT ''
	)`,
}
