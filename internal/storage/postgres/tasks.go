package postgres

import (
	"context"
	"fmt"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateTask creates a new task
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, trip_id, title, kind, done, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.Exec(ctx, query,
		task.ID, task.TripID, task.Title, task.Kind, task.Done, task.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListTasks retrieves a trip's tasks ordered by sort_order then title
func (s *Store) ListTasks(ctx context.Context, tripID string) ([]*models.Task, error) {
	query := `
		SELECT id, trip_id, title, kind, done, sort_order
		FROM tasks
		WHERE trip_id = $1
		ORDER BY sort_order NULLS LAST, title
	`
	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TripID, &t.Title, &t.Kind, &t.Done, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update scoped by trip
func (s *Store) UpdateTask(ctx context.Context, tripID, id string, upd storage.TaskUpdate) error {
	query := `
		UPDATE tasks SET
			title      = COALESCE($1, title),
			done       = COALESCE($2, done),
			sort_order = COALESCE($3, sort_order)
		WHERE trip_id = $4 AND id = $5
	`
	result, err := s.db.Exec(ctx, query, upd.Title, upd.Done, upd.SortOrder, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task scoped by trip
func (s *Store) DeleteTask(ctx context.Context, tripID, id string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM tasks WHERE trip_id = $1 AND id = $2`, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
