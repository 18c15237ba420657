package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/middleware"
	"tripdesk-backend/internal/services"
	"tripdesk-backend/internal/storage"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /api/v1/trips/{trip_id}/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.CreateTask(ctx, userID, tripID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to create task")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/v1/trips/{trip_id}/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	tasks, err := h.taskService.ListTasks(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to list tasks")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Done      *bool   `json:"done,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// UpdateTask handles PATCH /api/v1/trips/{trip_id}/tasks/{task_id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	taskID := chi.URLParam(r, "task_id")

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.taskService.UpdateTask(ctx, userID, tripID, taskID, storage.TaskUpdate{
		Title:     req.Title,
		Done:      req.Done,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).
			Str("task_id", taskID).Msg("Failed to update task")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /api/v1/trips/{trip_id}/tasks/{task_id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	taskID := chi.URLParam(r, "task_id")

	if err := h.taskService.DeleteTask(ctx, userID, tripID, taskID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).
			Str("task_id", taskID).Msg("Failed to delete task")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
