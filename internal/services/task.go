package services

import (
	"context"

	"github.com/google/uuid"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// TaskService handles todo and packing-list items
type TaskService struct {
	store storage.Store
}

// NewTaskService creates a new task service
func NewTaskService(store storage.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput carries the fields accepted at task creation
type CreateTaskInput struct {
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	SortOrder *int   `json:"sort_order,omitempty"`
}

// CreateTask validates and records a task
func (s *TaskService) CreateTask(ctx context.Context, userID, tripID string, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, validationErrorf("title is required")
	}
	kind := models.TaskKind(input.Kind)
	if kind == "" {
		kind = models.KindTodo
	}
	if kind != models.KindTodo && kind != models.KindPacking {
		return nil, validationErrorf("kind must be todo or packing")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:        uuid.New().String(),
		TripID:    tripID,
		Title:     input.Title,
		Kind:      kind,
		Done:      false,
		SortOrder: input.SortOrder,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks retrieves a trip's tasks
func (s *TaskService) ListTasks(ctx context.Context, userID, tripID string) ([]*models.Task, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, false); err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx, tripID)
}

// UpdateTask applies a partial update scoped to the trip
func (s *TaskService) UpdateTask(ctx context.Context, userID, tripID, taskID string, upd storage.TaskUpdate) error {
	if upd.Title == nil && upd.Done == nil && upd.SortOrder == nil {
		return validationErrorf("no fields to update")
	}
	if upd.Title != nil && *upd.Title == "" {
		return validationErrorf("title must not be empty")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return err
	}
	return s.store.UpdateTask(ctx, tripID, taskID, upd)
}

// DeleteTask removes a task scoped to the trip
func (s *TaskService) DeleteTask(ctx context.Context, userID, tripID, taskID string) error {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, tripID, taskID)
}
