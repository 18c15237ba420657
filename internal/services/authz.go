package services

import (
	"context"
	"errors"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// authorizeTrip loads the trip and checks the actor's access level.
// The trip owner passes every check; other users need a member row, and
// viewers pass only read checks.
func authorizeTrip(ctx context.Context, store storage.Store, tripID, userID string, write bool) (*models.Trip, error) {
	trip, err := store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID == userID {
		return trip, nil
	}
	member, err := store.GetMember(ctx, tripID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if write && member.Role == models.RoleViewer {
		return nil, ErrForbidden
	}
	return trip, nil
}

// authorizeOwner loads the trip and requires the actor to be its owner
func authorizeOwner(ctx context.Context, store storage.Store, tripID, userID string) (*models.Trip, error) {
	trip, err := store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != userID {
		return nil, ErrForbidden
	}
	return trip, nil
}
