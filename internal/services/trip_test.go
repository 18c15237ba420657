package services

import (
	"context"
	"errors"
	"testing"

	"tripdesk-backend/internal/directory"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

func TestPreviewNotFound(t *testing.T) {
	_, trips, _, _, _, _, _ := newTestServices(t)

	_, err := trips.Preview(context.Background(), ownerID, "missing-trip")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPreviewBucketOrdering(t *testing.T) {
	ctx := context.Background()
	_, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	// Created deliberately out of calendar order, with one unscheduled first.
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{Title: "Float"})
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Aquarium", Date: strPtr("2025-03-02"), StartTime: strPtr("10:00"),
	})
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Castle", Date: strPtr("2025-03-01"), StartTime: strPtr("14:00"),
	})
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Breakfast", Date: strPtr("2025-03-01"), StartTime: strPtr("08:30"),
	})

	preview, err := trips.Preview(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if len(preview.Days) != 3 {
		t.Fatalf("buckets: expected 3, got %d", len(preview.Days))
	}
	if preview.Days[0].Date != "2025-03-01" || preview.Days[1].Date != "2025-03-02" {
		t.Errorf("dated buckets out of order: %q, %q", preview.Days[0].Date, preview.Days[1].Date)
	}
	if preview.Days[2].Date != "" {
		t.Errorf("expected unscheduled bucket last, got date %q", preview.Days[2].Date)
	}

	first := preview.Days[0].Activities
	if len(first) != 2 || first[0].Title != "Breakfast" || first[1].Title != "Castle" {
		t.Errorf("first bucket not sorted by start_time: %+v", titles(first))
	}
	unscheduled := preview.Days[2].Activities
	if len(unscheduled) != 1 || unscheduled[0].Title != "Float" {
		t.Errorf("unscheduled bucket wrong: %+v", titles(unscheduled))
	}
}

func TestPreviewTieBrokenByTitle(t *testing.T) {
	ctx := context.Background()
	_, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	for _, title := range []string{"Zoo", "Arcade", "Museum"} {
		mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
			Title: title, Date: strPtr("2025-03-01"), StartTime: strPtr("09:00"),
		})
	}

	preview, err := trips.Preview(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	got := titles(preview.Days[0].Activities)
	want := []string{"Arcade", "Museum", "Zoo"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("title tiebreak: expected %v, got %v", want, got)
		}
	}
}

func TestPreviewExpenseTotal(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, expenses, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	for _, amount := range []float64{800, 1200, 0} {
		_, err := expenses.CreateExpense(ctx, ownerID, trip.ID, CreateExpenseInput{
			Title: "item", Category: "other", Amount: amount,
		})
		if err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	preview, err := trips.Preview(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.ExpenseTotal != 2000 {
		t.Errorf("expense total: expected 2000, got %v", preview.ExpenseTotal)
	}
	if len(preview.Expenses) != 3 {
		t.Errorf("expenses: expected 3, got %d", len(preview.Expenses))
	}
}

// brokenExpenseStore fails every expense read
type brokenExpenseStore struct {
	storage.Store
}

func (s brokenExpenseStore) ListExpenses(ctx context.Context, tripID string) ([]*models.Expense, error) {
	return nil, errors.New("expense table unavailable")
}

func TestPreviewToleratesFailedSection(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, expenses, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Castle", Date: strPtr("2025-03-01"),
	})
	if _, err := expenses.CreateExpense(ctx, ownerID, trip.ID, CreateExpenseInput{
		Title: "Lunch", Amount: 1200,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	degraded := NewTripService(brokenExpenseStore{store}, directory.NewResolver(store, 5))
	preview, err := degraded.Preview(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("Preview should survive a failed section: %v", err)
	}
	if preview.Trip == nil || preview.Trip.ID != trip.ID {
		t.Fatal("trip header missing from degraded preview")
	}
	if len(preview.Expenses) != 0 || preview.ExpenseTotal != 0 {
		t.Errorf("broken section should be empty, got %d expenses totalling %v",
			len(preview.Expenses), preview.ExpenseTotal)
	}
	if len(preview.Days) != 1 || len(preview.Days[0].Activities) != 1 {
		t.Errorf("healthy sections should still load: %+v", preview.Days)
	}
}

func TestCreateTripValidation(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, _, _ := newTestServices(t)

	tests := []struct {
		name  string
		input CreateTripInput
	}{
		{"bad start date", CreateTripInput{StartDate: strPtr("03-01-2025")}},
		{"bad end date", CreateTripInput{EndDate: strPtr("2025-3-1")}},
		{"inverted range", CreateTripInput{StartDate: strPtr("2025-03-02"), EndDate: strPtr("2025-03-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := trips.CreateTrip(ctx, ownerID, tt.input); !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateTripDefaultsCurrency(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, _, _ := newTestServices(t)

	trip, err := trips.CreateTrip(ctx, ownerID, CreateTripInput{CurrencyCode: " usd "})
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if trip.CurrencyCode != "USD" {
		t.Errorf("currency: expected USD, got %q", trip.CurrencyCode)
	}

	trip, err = trips.CreateTrip(ctx, ownerID, CreateTripInput{})
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if trip.CurrencyCode != "JPY" {
		t.Errorf("currency default: expected JPY, got %q", trip.CurrencyCode)
	}
}

func TestCreateTripDropsUnresolvedEmails(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, members := newTestServices(t)

	if err := store.UpsertAccount(ctx, &models.Account{ID: "friend-1", Email: "ann@example.com"}); err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}

	trip, err := trips.CreateTrip(ctx, ownerID, CreateTripInput{
		MemberEmails: []string{"ann@example.com", "nobody@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	list, err := members.ListMembers(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(list) != 1 || list[0].UserID != "friend-1" {
		t.Errorf("expected only the resolvable email as member, got %+v", list)
	}
	if list[0].Role != models.RoleEditor {
		t.Errorf("role: expected editor, got %q", list[0].Role)
	}
}

func TestViewerCannotWrite(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	member := &models.TripMember{TripID: trip.ID, UserID: "viewer-1", Role: models.RoleViewer}
	if err := store.AddMember(ctx, member); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	if _, err := trips.Preview(ctx, "viewer-1", trip.ID); err != nil {
		t.Fatalf("viewer read should pass: %v", err)
	}
	_, err := trips.UpdateTrip(ctx, "viewer-1", trip.ID, storage.TripUpdate{Title: strPtr("new")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("viewer write: expected ErrForbidden, got %v", err)
	}
	_, err = trips.Preview(ctx, "stranger", trip.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger read: expected ErrForbidden, got %v", err)
	}
}

func mustCreateActivity(t *testing.T, svc *ActivityService, tripID string, input CreateActivityInput) *models.Activity {
	t.Helper()
	activity, err := svc.CreateActivity(context.Background(), ownerID, tripID, input)
	if err != nil {
		t.Fatalf("CreateActivity(%q) failed: %v", input.Title, err)
	}
	return activity
}

func titles(activities []*models.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Title
	}
	return out
}
