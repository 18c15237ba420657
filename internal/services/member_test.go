package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripdesk-backend/internal/models"
)

func TestAddMemberByEmailRejectsUnresolved(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	_, err := members.AddMemberByEmail(ctx, ownerID, trip.ID, "ghost@example.com", models.RoleEditor)
	if !IsValidation(err) {
		t.Fatalf("unresolved email: expected validation error, got %v", err)
	}
}

func TestAddMemberByEmail(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	if err := store.UpsertAccount(ctx, &models.Account{ID: "friend-1", Email: "bob@example.com"}); err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}

	member, err := members.AddMemberByEmail(ctx, ownerID, trip.ID, "bob@example.com", "")
	if err != nil {
		t.Fatalf("AddMemberByEmail failed: %v", err)
	}
	if member.UserID != "friend-1" || member.Role != models.RoleEditor {
		t.Errorf("expected friend-1 as editor, got %+v", member)
	}

	// Re-adding with a different role upserts rather than duplicating.
	if _, err := members.AddMemberByEmail(ctx, ownerID, trip.ID, "bob@example.com", models.RoleViewer); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	list, err := members.ListMembers(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(list) != 1 || list[0].Role != models.RoleViewer {
		t.Errorf("expected single member with viewer role, got %+v", list)
	}
}

func TestMemberManagementOwnerOnly(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	if err := store.UpsertAccount(ctx, &models.Account{ID: "friend-1", Email: "bob@example.com"}); err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}
	if err := store.AddMember(ctx, &models.TripMember{TripID: trip.ID, UserID: "editor-1", Role: models.RoleEditor}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	_, err := members.AddMemberByEmail(ctx, "editor-1", trip.ID, "bob@example.com", models.RoleEditor)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("editor add: expected ErrForbidden, got %v", err)
	}
	if err := members.UpdateMemberRole(ctx, "editor-1", trip.ID, "editor-1", models.RoleViewer); !errors.Is(err, ErrForbidden) {
		t.Errorf("editor role change: expected ErrForbidden, got %v", err)
	}
	if err := members.RemoveMember(ctx, "editor-1", trip.ID, "editor-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("editor remove: expected ErrForbidden, got %v", err)
	}

	if err := members.UpdateMemberRole(ctx, ownerID, trip.ID, "editor-1", models.RoleViewer); err != nil {
		t.Fatalf("owner role change failed: %v", err)
	}
	if err := members.RemoveMember(ctx, ownerID, trip.ID, "editor-1"); err != nil {
		t.Fatalf("owner remove failed: %v", err)
	}
}

func TestAddMemberRejectsOwner(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	if err := store.UpsertAccount(ctx, &models.Account{ID: ownerID, Email: "owner@example.com"}); err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}
	if _, err := members.AddMemberByEmail(ctx, ownerID, trip.ID, "owner@example.com", models.RoleEditor); !IsValidation(err) {
		t.Fatalf("owner as member: expected validation error, got %v", err)
	}
}

func TestResolveShareLink(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	link, err := members.CreateShareLink(ctx, ownerID, trip.ID, 0)
	if err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}

	tripID, err := members.ResolveShareLink(ctx, link.ID)
	if err != nil {
		t.Fatalf("ResolveShareLink failed: %v", err)
	}
	if tripID != trip.ID {
		t.Errorf("expected trip %s, got %s", trip.ID, tripID)
	}

	if _, err := members.ResolveShareLink(ctx, "no-such-link"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown link: expected ErrNotFound, got %v", err)
	}
}

func TestResolveShareLinkExpired(t *testing.T) {
	ctx := context.Background()
	_, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	expired, err := members.CreateShareLink(ctx, ownerID, trip.ID, time.Now().Add(-time.Hour).Unix())
	if err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}
	if _, err := members.ResolveShareLink(ctx, expired.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired link: expected ErrNotFound, got %v", err)
	}

	// A future expiry still resolves.
	live, err := members.CreateShareLink(ctx, ownerID, trip.ID, time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}
	if _, err := members.ResolveShareLink(ctx, live.ID); err != nil {
		t.Errorf("live link: expected resolve, got %v", err)
	}
}

func TestListShareLinksNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, trips, _, _, _, _, members := newTestServices(t)
	trip := createTestTrip(t, trips)

	// Seed directly to control created_at.
	old := &models.ShareLink{ID: "link-old", TripID: trip.ID, IsEnabled: true, CreatedAt: 100}
	recent := &models.ShareLink{ID: "link-new", TripID: trip.ID, IsEnabled: true, CreatedAt: 200}
	if err := store.CreateShareLink(ctx, old); err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}
	if err := store.CreateShareLink(ctx, recent); err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}

	list, err := members.ListShareLinks(ctx, ownerID, trip.ID)
	if err != nil {
		t.Fatalf("ListShareLinks failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "link-new" {
		t.Fatalf("expected newest link first, got %+v", list)
	}
}
