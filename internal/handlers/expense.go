package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/middleware"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/services"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense handles POST /api/v1/trips/{trip_id}/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var input services.CreateExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	expense, err := h.expenseService.CreateExpense(ctx, userID, tripID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to create expense")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// ExpenseListResponse carries a trip's expenses and their total
type ExpenseListResponse struct {
	Expenses []*models.Expense `json:"expenses"`
	Total    float64           `json:"total"`
}

// ListExpenses handles GET /api/v1/trips/{trip_id}/expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	expenses, total, err := h.expenseService.ListExpenses(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to list expenses")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ExpenseListResponse{Expenses: expenses, Total: total})
}

// DeleteExpense handles DELETE /api/v1/trips/{trip_id}/expenses/{expense_id}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")
	expenseID := chi.URLParam(r, "expense_id")

	if err := h.expenseService.DeleteExpense(ctx, userID, tripID, expenseID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).
			Str("expense_id", expenseID).Msg("Failed to delete expense")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
