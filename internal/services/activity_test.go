package services

import (
	"context"
	"testing"

	"tripdesk-backend/internal/storage"
)

func TestReorderAppliesSubmittedOrder(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	// One activity per day with start times that contradict the desired order.
	a1 := mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Late start", Date: strPtr("2025-04-01"), StartTime: strPtr("18:00"),
	})
	a2 := mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Mid start", Date: strPtr("2025-04-02"), StartTime: strPtr("12:00"),
	})
	a3 := mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Early start", Date: strPtr("2025-04-03"), StartTime: strPtr("07:00"),
	})

	results, err := activities.Reorder(ctx, ownerID, trip.ID, []ReorderItem{
		{ActivityID: a3.ID, OrderNo: 1},
		{ActivityID: a1.ID, OrderNo: 2},
		{ActivityID: a2.ID, OrderNo: 3},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	for _, res := range results {
		if !res.OK {
			t.Fatalf("item %s failed: %s", res.ActivityID, res.Error)
		}
	}

	// ListActivities orders by order_no; the fetch must return the submitted sequence.
	list, err := store.ListActivities(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	wantIDs := []string{a3.ID, a1.ID, a2.ID}
	for i, want := range wantIDs {
		if list[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestReorderScopedToTrip(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip1 := createTestTrip(t, trips)
	trip2 := createTestTrip(t, trips)

	victim := mustCreateActivity(t, activities, trip1.ID, CreateActivityInput{Title: "Mine", OrderNo: 7})

	// Supplying trip2 with trip1's activity id must not move it.
	results, err := activities.Reorder(ctx, ownerID, trip2.ID, []ReorderItem{
		{ActivityID: victim.ID, OrderNo: 99},
	})
	if err == nil {
		t.Fatal("expected aggregate error for cross-trip reorder")
	}
	if len(results) != 1 || results[0].OK {
		t.Fatalf("expected the single item to fail, got %+v", results)
	}

	got, err := store.GetActivity(ctx, trip1.ID, victim.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.OrderNo != 7 {
		t.Errorf("order_no changed across trips: expected 7, got %d", got.OrderNo)
	}
}

func TestReorderPartialFailureKeepsAppliedItems(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	good := mustCreateActivity(t, activities, trip.ID, CreateActivityInput{Title: "Good", OrderNo: 1})

	results, err := activities.Reorder(ctx, ownerID, trip.ID, []ReorderItem{
		{ActivityID: good.ID, OrderNo: 5},
		{ActivityID: "no-such-activity", OrderNo: 6},
	})
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	if !results[0].OK || results[1].OK {
		t.Fatalf("expected first ok and second failed, got %+v", results)
	}

	// The applied update stays applied.
	got, err := store.GetActivity(ctx, trip.ID, good.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.OrderNo != 5 {
		t.Errorf("first item rolled back: expected order_no 5, got %d", got.OrderNo)
	}
}

func TestAssignDayMovesOnlyUnscheduled(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	scheduled := mustCreateActivity(t, activities, trip.ID, CreateActivityInput{
		Title: "Scheduled", Date: strPtr("2025-05-01"),
	})
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{Title: "Loose A"})
	mustCreateActivity(t, activities, trip.ID, CreateActivityInput{Title: "Loose B"})

	day, updated, err := activities.AssignDay(ctx, ownerID, trip.ID, "2025-05-02")
	if err != nil {
		t.Fatalf("AssignDay failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated: expected 2, got %d", updated)
	}

	// The already-scheduled activity keeps its original day.
	got, err := store.GetActivity(ctx, trip.ID, scheduled.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.DayID == nil || *got.DayID == day.ID {
		t.Errorf("scheduled activity was moved: day_id %v", got.DayID)
	}

	// Repeating the call finds nothing unscheduled.
	_, updated, err = activities.AssignDay(ctx, ownerID, trip.ID, "2025-05-02")
	if err != nil {
		t.Fatalf("second AssignDay failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("second run updated: expected 0, got %d", updated)
	}
}

func TestAssignDayReusesExistingDay(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	first, err := activities.EnsureDay(ctx, ownerID, trip.ID, "2025-06-01")
	if err != nil {
		t.Fatalf("EnsureDay failed: %v", err)
	}

	day, updated, err := activities.AssignDay(ctx, ownerID, trip.ID, "2025-06-01")
	if err != nil {
		t.Fatalf("AssignDay failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated: expected 0, got %d", updated)
	}
	if day.ID != first.ID {
		t.Errorf("expected existing day %s, got %s", first.ID, day.ID)
	}

	days, err := store.ListDays(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 1 {
		t.Errorf("expected no duplicate day, got %d rows", len(days))
	}
}

func TestAssignDayValidatesDate(t *testing.T) {
	ctx := context.Background()
	_, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	if _, _, err := activities.AssignDay(ctx, ownerID, trip.ID, "June 1st"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateActivityRejectsForeignDay(t *testing.T) {
	ctx := context.Background()
	store, trips, activities, _, _, _, _ := newTestServices(t)
	trip1 := createTestTrip(t, trips)
	trip2 := createTestTrip(t, trips)

	activity := mustCreateActivity(t, activities, trip1.ID, CreateActivityInput{
		Title: "Castle", Date: strPtr("2025-07-01"),
	})
	foreignDay, err := activities.EnsureDay(ctx, ownerID, trip2.ID, "2025-07-01")
	if err != nil {
		t.Fatalf("EnsureDay failed: %v", err)
	}

	// A day of another trip must never be attachable.
	_, err = activities.UpdateActivity(ctx, ownerID, trip1.ID, activity.ID, storage.ActivityUpdate{
		DayID: &foreignDay.ID,
	})
	if !IsValidation(err) {
		t.Fatalf("foreign day: expected validation error, got %v", err)
	}

	got, err := store.GetActivity(ctx, trip1.ID, activity.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.DayID == nil || *got.DayID == foreignDay.ID {
		t.Errorf("day_id changed to a foreign day: %v", got.DayID)
	}

	// The trip's own day still attaches.
	ownDay, err := activities.EnsureDay(ctx, ownerID, trip1.ID, "2025-07-02")
	if err != nil {
		t.Fatalf("EnsureDay failed: %v", err)
	}
	updated, err := activities.UpdateActivity(ctx, ownerID, trip1.ID, activity.ID, storage.ActivityUpdate{
		DayID: &ownDay.ID,
	})
	if err != nil {
		t.Fatalf("UpdateActivity failed: %v", err)
	}
	if updated.DayID == nil || *updated.DayID != ownDay.ID {
		t.Errorf("expected day %s, got %v", ownDay.ID, updated.DayID)
	}
}

func TestCreateActivityRequiresTitle(t *testing.T) {
	ctx := context.Background()
	_, trips, activities, _, _, _, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	if _, err := activities.CreateActivity(ctx, ownerID, trip.ID, CreateActivityInput{}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := activities.CreateActivity(ctx, ownerID, trip.ID, CreateActivityInput{
		Title: "x", StartTime: strPtr("25:99"),
	}); !IsValidation(err) {
		t.Fatalf("expected validation error for bad time, got %v", err)
	}
}
