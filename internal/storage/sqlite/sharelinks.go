package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// CreateShareLink inserts a new share link row
func (s *Store) CreateShareLink(ctx context.Context, link *models.ShareLink) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO share_links (id, trip_id, is_enabled, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		link.ID, link.TripID, link.IsEnabled, link.ExpiresAt, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create share link: %w", err)
	}
	return nil
}

// GetShareLink retrieves a share link by ID
func (s *Store) GetShareLink(ctx context.Context, id string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, is_enabled, expires_at, created_at FROM share_links WHERE id = ?`,
		id,
	).Scan(&link.ID, &link.TripID, &link.IsEnabled, &link.ExpiresAt, &link.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}
	return &link, nil
}

// ListShareLinks retrieves a trip's share links, newest first
func (s *Store) ListShareLinks(ctx context.Context, tripID string) ([]*models.ShareLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, is_enabled, expires_at, created_at
		 FROM share_links WHERE trip_id = ? ORDER BY created_at DESC, id DESC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list share links: %w", err)
	}
	defer rows.Close()

	var links []*models.ShareLink
	for rows.Next() {
		var link models.ShareLink
		err := rows.Scan(&link.ID, &link.TripID, &link.IsEnabled, &link.ExpiresAt, &link.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share link: %w", err)
		}
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share links: %w", err)
	}
	return links, nil
}
