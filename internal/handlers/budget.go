package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/middleware"
	"tripdesk-backend/internal/services"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *services.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetBudget handles GET /api/v1/trips/{trip_id}/budget
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	budget, err := h.budgetService.GetBudget(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to get budget")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// UpdateBudget handles PUT /api/v1/trips/{trip_id}/budget
func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var input services.UpdateBudgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	budget, err := h.budgetService.UpdateBudget(ctx, userID, tripID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to update budget")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("trip_id", tripID).Msg("Budget updated")
	respondJSON(w, http.StatusOK, budget)
}

// MigrateWizardBudgets handles POST /api/v1/migrations/wizard-budget.
// It runs over every trip owned by the caller and is safe to repeat.
func (h *BudgetHandler) MigrateWizardBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	report, err := h.budgetService.MigrateWizardBudgets(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Wizard budget migration failed")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
