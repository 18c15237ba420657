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

// TripHandler handles trip-related HTTP requests
type TripHandler struct {
	tripService *services.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var input services.CreateTripInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.CreateTrip(ctx, userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create trip")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", trip.ID).Msg("Trip created")
	respondJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/v1/trips
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trips, err := h.tripService.ListTrips(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list trips")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/v1/trips/{trip_id} and returns the aggregated preview
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	preview, err := h.tripService.Preview(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to load trip preview")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

// UpdateTripRequest represents the request body for a partial trip update
type UpdateTripRequest struct {
	Title        *string `json:"title,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	CurrencyCode *string `json:"currency_code,omitempty"`
}

// UpdateTrip handles PATCH /api/v1/trips/{trip_id}
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.UpdateTrip(ctx, userID, tripID, storage.TripUpdate{
		Title:        req.Title,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CurrencyCode: req.CurrencyCode,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to update trip")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/{trip_id}
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	if err := h.tripService.DeleteTrip(ctx, userID, tripID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to delete trip")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", tripID).Msg("Trip deleted")
	w.WriteHeader(http.StatusNoContent)
}
