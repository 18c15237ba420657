package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateActivity creates a new activity
func (s *Store) CreateActivity(ctx context.Context, activity *models.Activity) error {
	query := `
		INSERT INTO activities (id, trip_id, day_id, title, start_time, end_time, location, note, order_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.Exec(ctx, query,
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
	query := `
		SELECT id, trip_id, day_id, title, start_time, end_time, location, note, order_no
		FROM activities
		WHERE trip_id = $1 AND id = $2
	`
	var a models.Activity
	err := s.db.QueryRow(ctx, query, tripID, id).Scan(
		&a.ID, &a.TripID, &a.DayID, &a.Title,
		&a.StartTime, &a.EndTime, &a.Location, &a.Note, &a.OrderNo,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &a, nil
}

// ListActivities retrieves all activities of a trip
func (s *Store) ListActivities(ctx context.Context, tripID string) ([]*models.Activity, error) {
	query := `
		SELECT id, trip_id, day_id, title, start_time, end_time, location, note, order_no
		FROM activities
		WHERE trip_id = $1
		ORDER BY order_no, title
	`
	rows, err := s.db.Query(ctx, query, tripID)
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

// UpdateActivity applies a partial update scoped by trip
func (s *Store) UpdateActivity(ctx context.Context, tripID, id string, upd storage.ActivityUpdate) error {
	// NULLIF turns the empty-string sentinel into a cleared column.
	query := `
		UPDATE activities SET
			title      = COALESCE($1, title),
			day_id     = CASE WHEN $2::text IS NULL THEN day_id ELSE NULLIF($2, '') END,
			start_time = CASE WHEN $3::text IS NULL THEN start_time ELSE NULLIF($3, '') END,
			end_time   = CASE WHEN $4::text IS NULL THEN end_time ELSE NULLIF($4, '') END,
			location   = COALESCE($5, location),
			note       = COALESCE($6, note),
			order_no   = COALESCE($7, order_no)
		WHERE trip_id = $8 AND id = $9
	`
	result, err := s.db.Exec(ctx, query,
		upd.Title, upd.DayID, upd.StartTime, upd.EndTime,
		upd.Location, upd.Note, upd.OrderNo, tripID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteActivity removes an activity scoped by trip
func (s *Store) DeleteActivity(ctx context.Context, tripID, id string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM activities WHERE trip_id = $1 AND id = $2`, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetActivityOrder updates order_no scoped by (trip, activity)
func (s *Store) SetActivityOrder(ctx context.Context, tripID, id string, orderNo int) error {
	result, err := s.db.Exec(ctx,
		`UPDATE activities SET order_no = $1 WHERE trip_id = $2 AND id = $3`,
		orderNo, tripID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set activity order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AssignUnscheduled moves all of a trip's unscheduled activities onto a day
func (s *Store) AssignUnscheduled(ctx context.Context, tripID, dayID string) (int, error) {
	result, err := s.db.Exec(ctx,
		`UPDATE activities SET day_id = $1 WHERE trip_id = $2 AND day_id IS NULL`,
		dayID, tripID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to assign unscheduled activities: %w", err)
	}
	return int(result.RowsAffected()), nil
}
