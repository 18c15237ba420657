package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
)

// GetBudget retrieves the budget row for a trip; (nil, nil) when absent
func (s *Store) GetBudget(ctx context.Context, tripID string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.QueryRow(ctx,
		`SELECT trip_id, amount, currency FROM budgets WHERE trip_id = $1`,
		tripID,
	).Scan(&b.TripID, &b.Amount, &b.Currency)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &b, nil
}

// UpsertBudget writes the single budget row for a trip
func (s *Store) UpsertBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (trip_id, amount, currency)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id) DO UPDATE SET amount = EXCLUDED.amount, currency = EXCLUDED.currency
	`
	_, err := s.db.Exec(ctx, query, budget.TripID, budget.Amount, budget.Currency)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}
