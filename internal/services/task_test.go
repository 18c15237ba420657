package services

import (
	"context"
	"errors"
	"testing"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

func TestCreateTaskDefaultsKind(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, tasks, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	task, err := tasks.CreateTask(ctx, ownerID, trip.ID, CreateTaskInput{Title: "Book hotel"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Kind != models.KindTodo || task.Done {
		t.Errorf("expected open todo, got %+v", task)
	}

	if _, err := tasks.CreateTask(ctx, ownerID, trip.ID, CreateTaskInput{Title: "x", Kind: "groceries"}); !IsValidation(err) {
		t.Errorf("unknown kind: expected validation error, got %v", err)
	}
	if _, err := tasks.CreateTask(ctx, ownerID, trip.ID, CreateTaskInput{Kind: "todo"}); !IsValidation(err) {
		t.Errorf("missing title: expected validation error, got %v", err)
	}
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, tasks, _ := newTestServices(t)
	trip := createTestTrip(t, trips)

	task, err := tasks.CreateTask(ctx, ownerID, trip.ID, CreateTaskInput{Title: "Pack socks", Kind: "packing"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := tasks.UpdateTask(ctx, ownerID, trip.ID, task.ID, storage.TaskUpdate{}); !IsValidation(err) {
		t.Errorf("empty update: expected validation error, got %v", err)
	}

	done := true
	if err := tasks.UpdateTask(ctx, ownerID, trip.ID, task.ID, storage.TaskUpdate{Done: &done}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	list, err := store.ListTasks(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(list) != 1 || !list[0].Done || list[0].Title != "Pack socks" {
		t.Errorf("done flag update wrong: %+v", list[0])
	}

	if err := tasks.UpdateTask(ctx, ownerID, trip.ID, "no-such-task", storage.TaskUpdate{Done: &done}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown task: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTaskScopedToTrip(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, tasks, _ := newTestServices(t)
	trip1 := createTestTrip(t, trips)
	trip2 := createTestTrip(t, trips)

	task, err := tasks.CreateTask(ctx, ownerID, trip1.ID, CreateTaskInput{Title: "Tickets"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := tasks.DeleteTask(ctx, ownerID, trip2.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-trip delete: expected ErrNotFound, got %v", err)
	}
	if err := tasks.DeleteTask(ctx, ownerID, trip1.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
}
