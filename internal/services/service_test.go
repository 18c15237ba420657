package services

import (
	"context"
	"os"
	"testing"

	"tripdesk-backend/internal/directory"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
	"tripdesk-backend/internal/storage/sqlite"
)

const ownerID = "owner-1"

// newTestStore creates a temp-file SQLite store that is torn down with the test
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "tripdesk-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return store
}

// newTestServices wires every service onto one shared test store
func newTestServices(t *testing.T) (storage.Store, *TripService, *ActivityService, *BudgetService, *ExpenseService, *TaskService, *MemberService) {
	t.Helper()
	store := newTestStore(t)
	resolver := directory.NewResolver(store, 5)
	return store,
		NewTripService(store, resolver),
		NewActivityService(store),
		NewBudgetService(store),
		NewExpenseService(store),
		NewTaskService(store),
		NewMemberService(store, resolver)
}

// createTestTrip creates a trip owned by ownerID
func createTestTrip(t *testing.T, trips *TripService) *models.Trip {
	t.Helper()
	trip, err := trips.CreateTrip(context.Background(), ownerID, CreateTripInput{})
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return trip
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
