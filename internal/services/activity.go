package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// ActivityService keeps per-day activity order correct and moves
// unscheduled activities onto day buckets
type ActivityService struct {
	store storage.Store
}

// NewActivityService creates a new activity service
func NewActivityService(store storage.Store) *ActivityService {
	return &ActivityService{store: store}
}

// CreateActivityInput carries the fields accepted at activity creation
type CreateActivityInput struct {
	Title     string  `json:"title"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Location  string  `json:"location,omitempty"`
	Note      string  `json:"note,omitempty"`
	OrderNo   int     `json:"order_no,omitempty"`
}

// CreateActivity creates an activity; a supplied date schedules it onto that
// day (created on demand), otherwise it stays unscheduled
func (s *ActivityService) CreateActivity(ctx context.Context, userID, tripID string, input CreateActivityInput) (*models.Activity, error) {
	if input.Title == "" {
		return nil, validationErrorf("title is required")
	}
	if input.Date != nil && !validDate(*input.Date) {
		return nil, validationErrorf("date must be YYYY-MM-DD")
	}
	if input.StartTime != nil && !validTimeOfDay(*input.StartTime) {
		return nil, validationErrorf("start_time must be HH:MM")
	}
	if input.EndTime != nil && !validTimeOfDay(*input.EndTime) {
		return nil, validationErrorf("end_time must be HH:MM")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}

	var dayID *string
	if input.Date != nil {
		day, err := s.store.EnsureDay(ctx, tripID, *input.Date)
		if err != nil {
			return nil, err
		}
		dayID = &day.ID
	}

	activity := &models.Activity{
		ID:        uuid.New().String(),
		TripID:    tripID,
		DayID:     dayID,
		Title:     input.Title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Location:  input.Location,
		Note:      input.Note,
		OrderNo:   input.OrderNo,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// UpdateActivity applies a partial update scoped to the trip
func (s *ActivityService) UpdateActivity(ctx context.Context, userID, tripID, activityID string, upd storage.ActivityUpdate) (*models.Activity, error) {
	if upd.Title != nil && *upd.Title == "" {
		return nil, validationErrorf("title must not be empty")
	}
	if upd.StartTime != nil && *upd.StartTime != "" && !validTimeOfDay(*upd.StartTime) {
		return nil, validationErrorf("start_time must be HH:MM")
	}
	if upd.EndTime != nil && *upd.EndTime != "" && !validTimeOfDay(*upd.EndTime) {
		return nil, validationErrorf("end_time must be HH:MM")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}
	// A day id must belong to this trip; the FK alone would accept a day of
	// another trip.
	if upd.DayID != nil && *upd.DayID != "" {
		if _, err := s.store.GetDay(ctx, tripID, *upd.DayID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, validationErrorf("day %s does not belong to this trip", *upd.DayID)
			}
			return nil, err
		}
	}
	if err := s.store.UpdateActivity(ctx, tripID, activityID, upd); err != nil {
		return nil, err
	}
	return s.store.GetActivity(ctx, tripID, activityID)
}

// DeleteActivity removes an activity scoped to the trip
func (s *ActivityService) DeleteActivity(ctx context.Context, userID, tripID, activityID string) error {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return err
	}
	return s.store.DeleteActivity(ctx, tripID, activityID)
}

// ListDays retrieves the trip's days in date order
func (s *ActivityService) ListDays(ctx context.Context, userID, tripID string) ([]*models.TripDay, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, false); err != nil {
		return nil, err
	}
	return s.store.ListDays(ctx, tripID)
}

// EnsureDay returns the trip's day for a date, creating it if absent
func (s *ActivityService) EnsureDay(ctx context.Context, userID, tripID, date string) (*models.TripDay, error) {
	if !validDate(date) {
		return nil, validationErrorf("date must be YYYY-MM-DD")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}
	return s.store.EnsureDay(ctx, tripID, date)
}

// ReorderItem is one (activity, rank) pair of a reorder request
type ReorderItem struct {
	ActivityID string `json:"activity_id"`
	OrderNo    int    `json:"order_no"`
}

// ReorderResult reports the outcome of a single reorder item
type ReorderResult struct {
	ActivityID string `json:"activity_id"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// Reorder applies new order_no ranks to activities of one trip. Every update
// is scoped by (trip, activity), so an id belonging to another trip matches
// nothing and is reported as failed. Items are applied independently: a
// failure does not roll back items already written, and the caller gets a
// per-item result list alongside the aggregate error.
func (s *ActivityService) Reorder(ctx context.Context, userID, tripID string, items []ReorderItem) ([]ReorderResult, error) {
	if len(items) == 0 {
		return nil, validationErrorf("no reorder items supplied")
	}
	for _, item := range items {
		if item.ActivityID == "" {
			return nil, validationErrorf("activity_id is required for every item")
		}
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}

	results := make([]ReorderResult, 0, len(items))
	failed := 0
	for _, item := range items {
		err := s.store.SetActivityOrder(ctx, tripID, item.ActivityID, item.OrderNo)
		if err != nil {
			failed++
			results = append(results, ReorderResult{ActivityID: item.ActivityID, Error: err.Error()})
			continue
		}
		results = append(results, ReorderResult{ActivityID: item.ActivityID, OK: true})
	}
	if failed > 0 {
		log.Warn().Str("trip_id", tripID).Int("failed", failed).Int("total", len(items)).
			Msg("Reorder applied partially")
		return results, fmt.Errorf("reorder failed for %d of %d activities", failed, len(items))
	}
	return results, nil
}

// AssignDay finds or creates the trip's day for a date and moves every
// currently unscheduled activity onto it. Activities that already have a day
// are never touched, so repeating the call is safe.
func (s *ActivityService) AssignDay(ctx context.Context, userID, tripID, date string) (*models.TripDay, int, error) {
	if !validDate(date) {
		return nil, 0, validationErrorf("date must be YYYY-MM-DD")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, 0, err
	}

	day, err := s.store.EnsureDay(ctx, tripID, date)
	if err != nil {
		return nil, 0, err
	}
	updated, err := s.store.AssignUnscheduled(ctx, tripID, day.ID)
	if err != nil {
		return nil, 0, err
	}
	return day, updated, nil
}
