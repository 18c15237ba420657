package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateTrip creates a new trip
func (s *Store) CreateTrip(ctx context.Context, trip *models.Trip) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (id, title, start_date, end_date, description, owner_id, currency_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
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
	var trip models.Trip
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, start_date, end_date, description, owner_id, currency_code, created_at
		 FROM trips WHERE id = ?`, id,
	).Scan(
		&trip.ID, &trip.Title, &trip.StartDate, &trip.EndDate,
		&trip.Description, &trip.OwnerID, &trip.CurrencyCode, &trip.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// ListTripsForUser retrieves trips the user owns or collaborates on, newest first
func (s *Store) ListTripsForUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT t.id, t.title, t.start_date, t.end_date, t.description,
			t.owner_id, t.currency_code, t.created_at
		 FROM trips t
		 LEFT JOIN trip_members m ON m.trip_id = t.id
		 WHERE t.owner_id = ? OR m.user_id = ?
		 ORDER BY t.created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()
	return scanTrips(rows)
}

// ListTripsByOwner retrieves trips owned by a user, newest first
func (s *Store) ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, start_date, end_date, description, owner_id, currency_code, created_at
		 FROM trips WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips by owner: %w", err)
	}
	defer rows.Close()
	return scanTrips(rows)
}

func scanTrips(rows *sql.Rows) ([]*models.Trip, error) {
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
	result, err := s.db.ExecContext(ctx,
		`UPDATE trips SET
			title         = COALESCE(?, title),
			start_date    = COALESCE(?, start_date),
			end_date      = COALESCE(?, end_date),
			currency_code = COALESCE(?, currency_code)
		 WHERE id = ?`,
		upd.Title, upd.StartDate, upd.EndDate, upd.CurrencyCode, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return requireRow(result)
}

// UpdateTripDescription overwrites the free-text description column
func (s *Store) UpdateTripDescription(ctx context.Context, id, description string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE trips SET description = ? WHERE id = ?`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update trip description: %w", err)
	}
	return requireRow(result)
}

// DeleteTrip removes a trip; children cascade through foreign keys
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row mutation to ErrNotFound
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
