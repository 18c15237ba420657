package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// AddMember inserts a collaborator; re-adding an existing one updates the role
func (s *Store) AddMember(ctx context.Context, member *models.TripMember) error {
	query := `
		INSERT INTO trip_members (trip_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := s.db.Exec(ctx, query, member.TripID, member.UserID, member.Role)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// GetMember retrieves a member row by its composite key
func (s *Store) GetMember(ctx context.Context, tripID, userID string) (*models.TripMember, error) {
	var m models.TripMember
	err := s.db.QueryRow(ctx,
		`SELECT trip_id, user_id, role FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID,
	).Scan(&m.TripID, &m.UserID, &m.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

// ListMembers retrieves a trip's collaborators
func (s *Store) ListMembers(ctx context.Context, tripID string) ([]*models.TripMember, error) {
	rows, err := s.db.Query(ctx,
		`SELECT trip_id, user_id, role FROM trip_members WHERE trip_id = $1 ORDER BY user_id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.TripMember
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.TripID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes a collaborator's role
func (s *Store) UpdateMemberRole(ctx context.Context, tripID, userID string, role models.Role) error {
	result, err := s.db.Exec(ctx,
		`UPDATE trip_members SET role = $1 WHERE trip_id = $2 AND user_id = $3`,
		role, tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RemoveMember deletes a collaborator row
func (s *Store) RemoveMember(ctx context.Context, tripID, userID string) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM trip_members WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
