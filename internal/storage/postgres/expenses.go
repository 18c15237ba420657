package postgres

import (
	"context"
	"fmt"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateExpense creates a new expense
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	splitWith, err := storage.EncodeIDList(expense.SplitWith)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO expenses (id, trip_id, date, title, category, amount, paid_by, paid_by_name, split_with, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
	`
	_, err = s.db.Exec(ctx, query,
		expense.ID, expense.TripID, expense.Date, expense.Title, expense.Category,
		expense.Amount, expense.PaidBy.MemberID, expense.PaidBy.Name, splitWith, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpenses retrieves a trip's expenses ordered by date then creation time
func (s *Store) ListExpenses(ctx context.Context, tripID string) ([]*models.Expense, error) {
	query := `
		SELECT id, trip_id, date, title, category, amount,
			COALESCE(paid_by, ''), COALESCE(paid_by_name, ''), split_with, created_at
		FROM expenses
		WHERE trip_id = $1
		ORDER BY date, created_at
	`
	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		var splitWith string
		err := rows.Scan(
			&e.ID, &e.TripID, &e.Date, &e.Title, &e.Category, &e.Amount,
			&e.PaidBy.MemberID, &e.PaidBy.Name, &splitWith, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.SplitWith, err = storage.DecodeIDList(splitWith); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense scoped by trip
func (s *Store) DeleteExpense(ctx context.Context, tripID, id string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM expenses WHERE trip_id = $1 AND id = $2`, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
