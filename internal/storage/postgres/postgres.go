// Package postgres implements the storage contract on a hosted Postgres
// database through pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tripdesk-backend/internal/storage"
)

// Ensure Store implements the full contract
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using a pgx connection pool
type Store struct {
	db *pgxpool.Pool
}

// New connects to the database and prepares the schema
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Calendar dates and times-of-day are stored as ISO text so that lexical
// ordering matches chronological ordering across both backends.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id            TEXT PRIMARY KEY,
		title         TEXT,
		start_date    TEXT,
		end_date      TEXT,
		description   TEXT NOT NULL DEFAULT '',
		owner_id      TEXT NOT NULL,
		currency_code TEXT NOT NULL DEFAULT 'JPY',
		created_at    BIGINT NOT NULL
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
		amount       DOUBLE PRECISION NOT NULL,
		paid_by      TEXT,
		paid_by_name TEXT,
		split_with   TEXT NOT NULL DEFAULT '[]',
		created_at   BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		trip_id  TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		amount   DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'JPY'
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		kind       TEXT NOT NULL,
		done       BOOLEAN NOT NULL DEFAULT FALSE,
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
		is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at BIGINT NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT ''
	)`,
}
