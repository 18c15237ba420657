package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-backend/internal/models"
)

// GetBudget retrieves the budget row for a trip; (nil, nil) when absent
func (s *Store) GetBudget(ctx context.Context, tripID string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.QueryRowContext(ctx,
		`SELECT trip_id, amount, currency FROM budgets WHERE trip_id = ?`, tripID,
	).Scan(&b.TripID, &b.Amount, &b.Currency)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &b, nil
}

// UpsertBudget writes the single budget row for a trip
func (s *Store) UpsertBudget(ctx context.Context, budget *models.Budget) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (trip_id, amount, currency) VALUES (?, ?, ?)
		 ON CONFLICT (trip_id) DO UPDATE SET amount = excluded.amount, currency = excluded.currency`,
		budget.TripID, budget.Amount, budget.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}
