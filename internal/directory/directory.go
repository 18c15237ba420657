// Package directory resolves collaborator emails to account identifiers
// using the local mirror of the hosted auth provider's user directory.
package directory

import (
	"context"
	"fmt"
	"strings"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

const defaultPageSize = 200

// Resolver looks up accounts by email. Batch resolution enumerates the
// directory page by page with an upper bound, so bulk jobs are best-effort
// rather than guaranteed-complete.
type Resolver struct {
	accounts storage.AccountStore
	maxPages int
	pageSize int
}

// NewResolver creates a resolver; maxPages bounds batch enumeration
func NewResolver(accounts storage.AccountStore, maxPages int) *Resolver {
	if maxPages <= 0 {
		maxPages = 10
	}
	return &Resolver{
		accounts: accounts,
		maxPages: maxPages,
		pageSize: defaultPageSize,
	}
}

// Resolve returns the account id for an email, or "" when nothing matches
func (r *Resolver) Resolve(ctx context.Context, email string) (string, error) {
	account, err := r.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to resolve email: %w", err)
	}
	if account == nil {
		return "", nil
	}
	return account.ID, nil
}

// ResolveBatch returns the subset of emails that resolve, each mapped to its
// account id. Unresolved emails are simply absent from the result.
func (r *Resolver) ResolveBatch(ctx context.Context, emails []string) (map[string]string, error) {
	wanted := make(map[string]string, len(emails))
	for _, email := range emails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized != "" {
			wanted[normalized] = email
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	resolved := make(map[string]string)
	for page := 0; page < r.maxPages && len(resolved) < len(wanted); page++ {
		accounts, err := r.accounts.ListAccounts(ctx, r.pageSize, page*r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate directory: %w", err)
		}
		for _, account := range accounts {
			if original, ok := wanted[strings.ToLower(account.Email)]; ok {
				resolved[original] = account.ID
			}
		}
		if len(accounts) < r.pageSize {
			break
		}
	}
	return resolved, nil
}

// Lookup returns the full account for an email, or nil when nothing matches
func (r *Resolver) Lookup(ctx context.Context, email string) (*models.Account, error) {
	return r.accounts.GetAccountByEmail(ctx, email)
}
