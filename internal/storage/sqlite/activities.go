package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateActivity creates a new activity
func (s *Store) CreateActivity(ctx context.Context, activity *models.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (id, trip_id, day_id, title, start_time, end_time, location, note, order_no)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.TripID, activity.DayID, activity.Title,
		activity.StartTime, activity.EndTime, activity.Location, activity.Note, activity.OrderNo,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetActivity retrieves an activity scoped by trip
func (s *Store) GetActivity(ctx context.Context, tripID, id string) (*models.Activity, error) {
	var a models.Activity
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, day_id, title, start_time, end_time, location, note, order_no
		 FROM activities WHERE trip_id = ? AND id = ?`,
		tripID, id,
	).Scan(
		&a.ID, &a.TripID, &a.DayID, &a.Title,
		&a.StartTime, &a.EndTime, &a.Location, &a.Note, &a.OrderNo,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &a, nil
}

// ListActivities retrieves all activities of a trip
func (s *Store) ListActivities(ctx context.Context, tripID string) ([]*models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, day_id, title, start_time, end_time, location, note, order_no
		 FROM activities WHERE trip_id = ? ORDER BY order_no, title`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		err := rows.Scan(
			&a.ID, &a.TripID, &a.DayID, &a.Title,
			&a.StartTime, &a.EndTime, &a.Location, &a.Note, &a.OrderNo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return activities, nil
}

// UpdateActivity applies a partial update scoped by trip.
// The empty-string sentinel clears a nullable column via NULLIF.
func (s *Store) UpdateActivity(ctx context.Context, tripID, id string, upd storage.ActivityUpdate) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE activities SET
			title      = COALESCE(?, title),
			day_id     = CASE WHEN ? IS NULL THEN day_id ELSE NULLIF(?, '') END,
			start_time = CASE WHEN ? IS NULL THEN start_time ELSE NULLIF(?, '') END,
			end_time   = CASE WHEN ? IS NULL THEN end_time ELSE NULLIF(?, '') END,
			location   = COALESCE(?, location),
			note       = COALESCE(?, note),
			order_no   = COALESCE(?, order_no)
		 WHERE trip_id = ? AND id = ?`,
		upd.Title,
		upd.DayID, upd.DayID,
		upd.StartTime, upd.StartTime,
		upd.EndTime, upd.EndTime,
		upd.Location, upd.Note, upd.OrderNo,
		tripID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return requireRow(result)
}

// DeleteActivity removes an activity scoped by trip
func (s *Store) DeleteActivity(ctx context.Context, tripID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM activities WHERE trip_id = ? AND id = ?`, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireRow(result)
}

// SetActivityOrder updates order_no scoped by (trip, activity)
func (s *Store) SetActivityOrder(ctx context.Context, tripID, id string, orderNo int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE activities SET order_no = ? WHERE trip_id = ? AND id = ?`,
		orderNo, tripID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set activity order: %w", err)
	}
	return requireRow(result)
}

// AssignUnscheduled moves all of a trip's unscheduled activities onto a day
func (s *Store) AssignUnscheduled(ctx context.Context, tripID, dayID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE activities SET day_id = ? WHERE trip_id = ? AND day_id IS NULL`,
		dayID, tripID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to assign unscheduled activities: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}
