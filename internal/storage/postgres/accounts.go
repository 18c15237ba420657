package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
)

// UpsertAccount writes a row of the auth-provider directory mirror
func (s *Store) UpsertAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, display_name = EXCLUDED.display_name
	`
	_, err := s.db.Exec(ctx, query,
		account.ID, strings.ToLower(account.Email), account.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// GetAccountByEmail resolves an email to an account; (nil, nil) when unknown
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(ctx,
		`SELECT id, email, display_name FROM accounts WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&a.ID, &a.Email, &a.DisplayName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &a, nil
}

// ListAccounts pages through the directory mirror ordered by id
func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, email, display_name FROM accounts ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}
