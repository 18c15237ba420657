package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// EnsureDay returns the day row for (tripID, date), creating it if absent.
// The unique index on (trip_id, date) absorbs the insert race; the follow-up
// read returns whichever row survived.
func (s *Store) EnsureDay(ctx context.Context, tripID, date string) (*models.TripDay, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trip_days (id, trip_id, date) VALUES (?, ?, ?)
		 ON CONFLICT (trip_id, date) DO NOTHING`,
		uuid.New().String(), tripID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure trip day: %w", err)
	}

	var day models.TripDay
	err = s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = ? AND date = ?`,
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
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = ? AND id = ?`,
		tripID, id,
	).Scan(&day.ID, &day.TripID, &day.Date)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip day: %w", err)
	}
	return &day, nil
}

// ListDays retrieves a trip's days in date order
func (s *Store) ListDays(ctx context.Context, tripID string) ([]*models.TripDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, date FROM trip_days WHERE trip_id = ? ORDER BY date`,
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
