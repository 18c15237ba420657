package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateTrip creates a new trip
func (s *Store) CreateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (id, title, start_date, end_date, description, owner_id, currency_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.Exec(ctx, query,
		trip.ID, trip.Title, trip.StartDate, trip.EndDate,
		trip.Description, trip.OwnerID, trip.CurrencyCode, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID
func (s *Store) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	query := `
		SELECT id, title, start_date, end_date, description, owner_id, currency_code, created_at
		FROM trips
		WHERE id = $1
	`
	var trip models.Trip
	err := s.db.QueryRow(ctx, query, id).Scan(
		&trip.ID, &trip.Title, &trip.StartDate, &trip.EndDate,
		&trip.Description, &trip.OwnerID, &trip.CurrencyCode, &trip.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// ListTripsForUser retrieves trips the user owns or collaborates on, newest first
func (s *Store) ListTripsForUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	query := `
		SELECT DISTINCT t.id, t.title, t.start_date, t.end_date, t.description,
			t.owner_id, t.currency_code, t.created_at
		FROM trips t
		LEFT JOIN trip_members m ON m.trip_id = t.id
		WHERE t.owner_id = $1 OR m.user_id = $1
		ORDER BY t.created_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()
	return scanTrips(rows)
}

// ListTripsByOwner retrieves trips owned by a user, newest first
func (s *Store) ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	query := `
		SELECT id, title, start_date, end_date, description, owner_id, currency_code, created_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips by owner: %w", err)
	}
	defer rows.Close()
	return scanTrips(rows)
}

func scanTrips(rows pgx.Rows) ([]*models.Trip, error) {
	var trips []*models.Trip
	for rows.Next() {
		var trip models.Trip
		err := rows.Scan(
			&trip.ID, &trip.Title, &trip.StartDate, &trip.EndDate,
			&trip.Description, &trip.OwnerID, &trip.CurrencyCode, &trip.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}
	return trips, nil
}

// UpdateTrip applies a partial update to a trip
func (s *Store) UpdateTrip(ctx context.Context, id string, upd storage.TripUpdate) error {
	query := `
		UPDATE trips SET
			title         = COALESCE($1, title),
			start_date    = COALESCE($2, start_date),
			end_date      = COALESCE($3, end_date),
			currency_code = COALESCE($4, currency_code)
		WHERE id = $5
	`
	result, err := s.db.Exec(ctx, query, upd.Title, upd.StartDate, upd.EndDate, upd.CurrencyCode, id)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateTripDescription overwrites the free-text description column
func (s *Store) UpdateTripDescription(ctx context.Context, id, description string) error {
	result, err := s.db.Exec(ctx, `UPDATE trips SET description = $1 WHERE id = $2`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update trip description: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTrip removes a trip; children cascade through foreign keys
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
