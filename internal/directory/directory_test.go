package directory

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"tripdesk-backend/internal/models"
)

// fakeAccounts is an in-memory AccountStore that counts list calls
type fakeAccounts struct {
	accounts  []*models.Account
	listCalls int
}

func (f *fakeAccounts) UpsertAccount(ctx context.Context, account *models.Account) error {
	f.accounts = append(f.accounts, account)
	sort.Slice(f.accounts, func(i, j int) bool { return f.accounts[i].ID < f.accounts[j].ID })
	return nil
}

func (f *fakeAccounts) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	f.listCalls++
	if offset >= len(f.accounts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.accounts) {
		end = len(f.accounts)
	}
	return f.accounts[offset:end], nil
}

func seedAccounts(t *testing.T, store *fakeAccounts, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := store.UpsertAccount(context.Background(), &models.Account{
			ID:    fmt.Sprintf("user-%04d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestResolve(t *testing.T) {
	store := &fakeAccounts{}
	seedAccounts(t, store, 3)
	resolver := NewResolver(store, 5)

	id, err := resolver.Resolve(context.Background(), "user1@example.com")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "user-0001" {
		t.Errorf("expected user-0001, got %q", id)
	}

	id, err = resolver.Resolve(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id for unknown email, got %q", id)
	}
}

func TestResolveBatchCaseInsensitive(t *testing.T) {
	store := &fakeAccounts{}
	seedAccounts(t, store, 3)
	resolver := NewResolver(store, 5)

	resolved, err := resolver.ResolveBatch(context.Background(), []string{
		"USER0@Example.com", "user2@example.com", "missing@example.com", "",
	})
	if err != nil {
		t.Fatalf("ResolveBatch failed: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved, got %v", resolved)
	}
	// Keys are the caller's original spellings.
	if resolved["USER0@Example.com"] != "user-0000" || resolved["user2@example.com"] != "user-0002" {
		t.Errorf("unexpected mapping: %v", resolved)
	}
}

func TestResolveBatchStopsAtPageBound(t *testing.T) {
	store := &fakeAccounts{}
	// Three full pages of 200; the bound of 2 pages must leave the third unseen.
	seedAccounts(t, store, 600)
	resolver := NewResolver(store, 2)

	resolved, err := resolver.ResolveBatch(context.Background(), []string{
		"user10@example.com", "user550@example.com",
	})
	if err != nil {
		t.Fatalf("ResolveBatch failed: %v", err)
	}
	if store.listCalls != 2 {
		t.Errorf("expected 2 directory pages, got %d", store.listCalls)
	}
	if _, ok := resolved["user10@example.com"]; !ok {
		t.Error("email on an early page should resolve")
	}
	if _, ok := resolved["user550@example.com"]; ok {
		t.Error("email beyond the page bound should be dropped")
	}
}

func TestResolveBatchStopsEarlyWhenDone(t *testing.T) {
	store := &fakeAccounts{}
	seedAccounts(t, store, 600)
	resolver := NewResolver(store, 10)

	// Everything wanted sits on the first page, so enumeration stops there.
	if _, err := resolver.ResolveBatch(context.Background(), []string{"user5@example.com"}); err != nil {
		t.Fatalf("ResolveBatch failed: %v", err)
	}
	if store.listCalls != 1 {
		t.Errorf("expected enumeration to stop after 1 page, got %d", store.listCalls)
	}
}

func TestResolveBatchEmptyInput(t *testing.T) {
	store := &fakeAccounts{}
	resolver := NewResolver(store, 5)

	resolved, err := resolver.ResolveBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ResolveBatch failed: %v", err)
	}
	if len(resolved) != 0 || store.listCalls != 0 {
		t.Errorf("empty input must not touch the directory: %v, %d calls", resolved, store.listCalls)
	}
}
