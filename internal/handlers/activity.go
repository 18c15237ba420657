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

// ActivityHandler handles activity and day HTTP requests
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivity handles POST /api/v1/trips/{trip_id}/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var input services.CreateActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	activity, err := h.activityService.CreateActivity(ctx, userID, tripID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to create activity")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// UpdateActivityRequest represents a partial activity update
type UpdateActivityRequest struct {
	Title     *string `json:"title,omitempty"`
	DayID     *string `json:"day_id,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Location  *string `json:"location,omitempty"`
	Note      *string `json:"note,omitempty"`
	OrderNo   *int    `json:"order_no,omitempty"`
}

// UpdateActivity handles PATCH /api/v1/trips/{trip_id}/activities/{activity_id}
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	activityID := chi.URLParam(r, "activity_id")

	var req UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	activity, err := h.activityService.UpdateActivity(ctx, userID, tripID, activityID, storage.ActivityUpdate{
		Title:     req.Title,
		DayID:     req.DayID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Note:      req.Note,
		OrderNo:   req.OrderNo,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).
			Str("activity_id", activityID).Msg("Failed to update activity")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/v1/trips/{trip_id}/activities/{activity_id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	activityID := chi.URLParam(r, "activity_id")

	if err := h.activityService.DeleteActivity(ctx, userID, tripID, activityID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).
			Str("activity_id", activityID).Msg("Failed to delete activity")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDays handles GET /api/v1/trips/{trip_id}/days
func (h *ActivityHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	days, err := h.activityService.ListDays(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to list days")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, days)
}

// EnsureDayRequest represents the request body for a day find-or-create
type EnsureDayRequest struct {
	Date string `json:"date"`
}

// EnsureDay handles POST /api/v1/trips/{trip_id}/days
func (h *ActivityHandler) EnsureDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req EnsureDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	day, err := h.activityService.EnsureDay(ctx, userID, tripID, req.Date)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to ensure day")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

// ReorderRequest represents the request body for a reorder operation
type ReorderRequest struct {
	Items []services.ReorderItem `json:"items"`
}

// ReorderResponse reports per-item outcomes of a reorder operation
type ReorderResponse struct {
	OK      bool                     `json:"ok"`
	Results []services.ReorderResult `json:"results"`
}

// Reorder handles POST /api/v1/trips/{trip_id}/activities/reorder.
// A partial failure responds 500 but still carries the per-item results,
// because already-applied updates are not rolled back.
func (h *ActivityHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := h.activityService.Reorder(ctx, userID, tripID, req.Items)
	if err != nil {
		if results == nil {
			respondServiceError(w, err)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Reorder partially failed")
		respondJSON(w, http.StatusInternalServerError, ReorderResponse{OK: false, Results: results})
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", tripID).Int("count", len(results)).Msg("Activities reordered")
	respondJSON(w, http.StatusOK, ReorderResponse{OK: true, Results: results})
}

// AssignDayRequest represents the request body for a bulk day assignment
type AssignDayRequest struct {
	Date string `json:"date"`
}

// AssignDayResponse reports how many activities were scheduled
type AssignDayResponse struct {
	DayID   string `json:"day_id"`
	Date    string `json:"date"`
	Updated int    `json:"updated"`
}

// AssignDay handles POST /api/v1/trips/{trip_id}/activities/assign-day
func (h *ActivityHandler) AssignDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req AssignDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	day, updated, err := h.activityService.AssignDay(ctx, userID, tripID, req.Date)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to assign day")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", tripID).
		Str("date", req.Date).Int("updated", updated).Msg("Unscheduled activities assigned")
	respondJSON(w, http.StatusOK, AssignDayResponse{DayID: day.ID, Date: day.Date, Updated: updated})
}
