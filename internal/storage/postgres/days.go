package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// EnsureDay returns the day row for (tripID, date), creating it if absent.
// The unique index on (trip_id, date) makes the insert race-safe: a losing
// writer's insert matches the conflict target and the follow-up read returns
// the surviving row.
func (s *Store) EnsureDay(ctx context.Context, tripID, date string) (*models.TripDay, error) {
	insert := `
		INSERT INTO trip_days (id, trip_id, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, date) DO NOTHING
	`
	if _, err := s.db.Exec(ctx, insert, uuid.New().String(), tripID, date); err != nil {
		return nil, fmt.Errorf("failed to ensure trip day: %w", err)
	}

	var day models.TripDay
	err := s.db.QueryRow(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = $1 AND date = $2`,
		tripID, date,
	).Scan(&day.ID, &day.TripID, &day.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read trip day: %w", err)
	}
	return &day, nil
}

// GetDay retrieves a day scoped by trip
func (s *Store) GetDay(ctx context.Context, tripID, id string) (*models.TripDay, error) {
	var day models.TripDay
	err := s.db.QueryRow(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = $1 AND id = $2`,
		tripID, id,
	).Scan(&day.ID, &day.TripID, &day.Date)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip day: %w", err)
	}
	return &day, nil
}

// ListDays retrieves a trip's days in date order
func (s *Store) ListDays(ctx context.Context, tripID string) ([]*models.TripDay, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = $1 ORDER BY date`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip days: %w", err)
	}
	defer rows.Close()

	var days []*models.TripDay
	for rows.Next() {
		var day models.TripDay
		if err := rows.Scan(&day.ID, &day.TripID, &day.Date); err != nil {
			return nil, fmt.Errorf("failed to scan trip day: %w", err)
		}
		days = append(days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip days: %w", err)
	}
	return days, nil
}
