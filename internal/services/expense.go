package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// ExpenseService handles shared trip expenses
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new expense service
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the fields accepted at expense creation.
// PaidBy takes either a member id or a free-text payer name; the value is
// classified exactly once here, at the boundary.
type CreateExpenseInput struct {
	Date      string   `json:"date,omitempty"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Amount    float64  `json:"amount"`
	PaidBy    string   `json:"paid_by,omitempty"`
	SplitWith []string `json:"split_with,omitempty"`
}

// CreateExpense validates and records an expense
func (s *ExpenseService) CreateExpense(ctx context.Context, userID, tripID string, input CreateExpenseInput) (*models.Expense, error) {
	if input.Title == "" {
		return nil, validationErrorf("title is required")
	}
	category := models.ExpenseCategory(input.Category)
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return nil, validationErrorf("unknown category %q", input.Category)
	}
	if !finiteAmount(input.Amount) {
		return nil, validationErrorf("amount must be a non-negative number")
	}
	if input.Date != "" && !validDate(input.Date) {
		return nil, validationErrorf("date must be YYYY-MM-DD")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:        uuid.New().String(),
		TripID:    tripID,
		Date:      input.Date,
		Title:     input.Title,
		Category:  category,
		Amount:    input.Amount,
		PaidBy:    models.ParsePayer(input.PaidBy),
		SplitWith: input.SplitWith,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves a trip's expenses with their running total
func (s *ExpenseService) ListExpenses(ctx context.Context, userID, tripID string) ([]*models.Expense, float64, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, false); err != nil {
		return nil, 0, err
	}
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	return expenses, expenseTotal(expenses), nil
}

// DeleteExpense removes an expense scoped to the trip
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, tripID, expenseID string) error {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return err
	}
	return s.store.DeleteExpense(ctx, tripID, expenseID)
}
