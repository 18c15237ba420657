package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tripdesk-backend/internal/models"
)

// UpsertAccount writes a row of the auth-provider directory mirror
func (s *Store) UpsertAccount(ctx context.Context, account *models.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, display_name) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name`,
		account.ID, strings.ToLower(account.Email), account.DisplayName,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// GetAccountByEmail resolves an email to an account; (nil, nil) when unknown
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, display_name FROM accounts WHERE email = ?`,
		strings.ToLower(email),
	).Scan(&a.ID, &a.Email, &a.DisplayName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &a, nil
}

// ListAccounts pages through the directory mirror ordered by id
func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, display_name FROM accounts ORDER BY id LIMIT ? OFFSET ?`,
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
