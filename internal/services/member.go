package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripdesk-backend/internal/directory"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// MemberService manages collaborator roles and public share links
type MemberService struct {
	store    storage.Store
	resolver *directory.Resolver
}

// NewMemberService creates a new member service
func NewMemberService(store storage.Store, resolver *directory.Resolver) *MemberService {
	return &MemberService{store: store, resolver: resolver}
}

// AddMemberByEmail adds a single collaborator interactively. Unlike the
// batch path at trip creation, an email that does not resolve rejects the
// whole add.
func (s *MemberService) AddMemberByEmail(ctx context.Context, actorID, tripID, email string, role models.Role) (*models.TripMember, error) {
	if email == "" {
		return nil, validationErrorf("email is required")
	}
	if role == "" {
		role = models.RoleEditor
	}
	if !models.ValidRole(role) {
		return nil, validationErrorf("unknown role %q", role)
	}
	trip, err := authorizeOwner(ctx, s.store, tripID, actorID)
	if err != nil {
		return nil, err
	}

	userID, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, validationErrorf("no account found for %s", email)
	}
	if userID == trip.OwnerID {
		return nil, validationErrorf("the trip owner is already a member")
	}

	member := &models.TripMember{TripID: tripID, UserID: userID, Role: role}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers retrieves a trip's collaborators
func (s *MemberService) ListMembers(ctx context.Context, actorID, tripID string) ([]*models.TripMember, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, actorID, false); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, tripID)
}

// UpdateMemberRole changes a collaborator's role; owner only
func (s *MemberService) UpdateMemberRole(ctx context.Context, actorID, tripID, userID string, role models.Role) error {
	if !models.ValidRole(role) {
		return validationErrorf("unknown role %q", role)
	}
	if _, err := authorizeOwner(ctx, s.store, tripID, actorID); err != nil {
		return err
	}
	return s.store.UpdateMemberRole(ctx, tripID, userID, role)
}

// RemoveMember deletes a collaborator; owner only
func (s *MemberService) RemoveMember(ctx context.Context, actorID, tripID, userID string) error {
	if _, err := authorizeOwner(ctx, s.store, tripID, actorID); err != nil {
		return err
	}
	return s.store.RemoveMember(ctx, tripID, userID)
}

// CreateShareLink issues a new enabled share link. Earlier links stay as
// they are; readers treat the newest enabled row as the active one.
func (s *MemberService) CreateShareLink(ctx context.Context, actorID, tripID string, expiresAt int64) (*models.ShareLink, error) {
	if expiresAt < 0 {
		return nil, validationErrorf("expires_at must not be negative")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, actorID, true); err != nil {
		return nil, err
	}

	link := &models.ShareLink{
		ID:        uuid.New().String(),
		TripID:    tripID,
		IsEnabled: true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.CreateShareLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListShareLinks retrieves a trip's share links, newest first
func (s *MemberService) ListShareLinks(ctx context.Context, actorID, tripID string) ([]*models.ShareLink, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, actorID, false); err != nil {
		return nil, err
	}
	return s.store.ListShareLinks(ctx, tripID)
}

// ResolveShareLink maps a public share id to its trip, honoring the enabled
// flag and expiry at this serving boundary. A disabled, expired or unknown
// id is indistinguishable to the caller.
func (s *MemberService) ResolveShareLink(ctx context.Context, shareID string) (string, error) {
	link, err := s.store.GetShareLink(ctx, shareID)
	if err != nil {
		return "", err
	}
	if !link.IsEnabled {
		return "", ErrNotFound
	}
	if link.ExpiresAt > 0 && link.ExpiresAt < time.Now().Unix() {
		return "", ErrNotFound
	}
	return link.TripID, nil
}
