package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/directory"
	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

const defaultCurrency = "JPY"

// TripService handles trip lifecycle and read-side aggregation
type TripService struct {
	store    storage.Store
	resolver *directory.Resolver
}

// NewTripService creates a new trip service
func NewTripService(store storage.Store, resolver *directory.Resolver) *TripService {
	return &TripService{store: store, resolver: resolver}
}

// CreateTripInput carries the fields accepted at trip creation.
// MemberEmails are resolved best-effort: emails that do not match an
// account are dropped from the batch without failing the creation.
type CreateTripInput struct {
	Title        *string  `json:"title,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	CurrencyCode string   `json:"currency_code,omitempty"`
	Description  string   `json:"description,omitempty"`
	MemberEmails []string `json:"member_emails,omitempty"`
}

// CreateTrip creates a trip owned by ownerID and invites any resolvable
// collaborator emails as editors
func (s *TripService) CreateTrip(ctx context.Context, ownerID string, input CreateTripInput) (*models.Trip, error) {
	if input.StartDate != nil && !validDate(*input.StartDate) {
		return nil, validationErrorf("start_date must be YYYY-MM-DD")
	}
	if input.EndDate != nil && !validDate(*input.EndDate) {
		return nil, validationErrorf("end_date must be YYYY-MM-DD")
	}
	if input.StartDate != nil && input.EndDate != nil && *input.EndDate < *input.StartDate {
		return nil, validationErrorf("end_date must not be before start_date")
	}
	currency := normalizeCurrency(input.CurrencyCode)
	if currency == "" {
		currency = defaultCurrency
	}

	trip := &models.Trip{
		ID:           uuid.New().String(),
		Title:        input.Title,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Description:  input.Description,
		OwnerID:      ownerID,
		CurrencyCode: currency,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	if len(input.MemberEmails) > 0 {
		resolved, err := s.resolver.ResolveBatch(ctx, input.MemberEmails)
		if err != nil {
			// Invitations are best-effort at creation time; the trip stands.
			log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Failed to resolve member emails")
		}
		for _, userID := range resolved {
			if userID == ownerID {
				continue
			}
			member := &models.TripMember{TripID: trip.ID, UserID: userID, Role: models.RoleEditor}
			if err := s.store.AddMember(ctx, member); err != nil {
				log.Warn().Err(err).Str("trip_id", trip.ID).Str("user_id", userID).Msg("Failed to add member")
			}
		}
	}
	return trip, nil
}

// GetTrip retrieves a trip the user can read
func (s *TripService) GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	return authorizeTrip(ctx, s.store, tripID, userID, false)
}

// ListTrips retrieves the trips a user owns or collaborates on
func (s *TripService) ListTrips(ctx context.Context, userID string) ([]*models.Trip, error) {
	return s.store.ListTripsForUser(ctx, userID)
}

// UpdateTrip applies a partial update; owner or editor only
func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID string, upd storage.TripUpdate) (*models.Trip, error) {
	if upd.Title == nil && upd.StartDate == nil && upd.EndDate == nil && upd.CurrencyCode == nil {
		return nil, validationErrorf("no fields to update")
	}
	if upd.StartDate != nil && *upd.StartDate != "" && !validDate(*upd.StartDate) {
		return nil, validationErrorf("start_date must be YYYY-MM-DD")
	}
	if upd.EndDate != nil && *upd.EndDate != "" && !validDate(*upd.EndDate) {
		return nil, validationErrorf("end_date must be YYYY-MM-DD")
	}
	if upd.CurrencyCode != nil {
		currency := normalizeCurrency(*upd.CurrencyCode)
		if currency == "" {
			return nil, validationErrorf("currency_code must not be empty")
		}
		upd.CurrencyCode = &currency
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTrip(ctx, tripID, upd); err != nil {
		return nil, err
	}
	return s.store.GetTrip(ctx, tripID)
}

// DeleteTrip removes a trip and, through the schema, everything it owns
func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	if _, err := authorizeOwner(ctx, s.store, tripID, userID); err != nil {
		return err
	}
	return s.store.DeleteTrip(ctx, tripID)
}

// DayBucket groups a day's activities for display. The unscheduled bucket
// has an empty Date and always comes last.
type DayBucket struct {
	DayID      string             `json:"day_id,omitempty"`
	Date       string             `json:"date,omitempty"`
	Activities []*models.Activity `json:"activities"`
}

// TripPreview is the display-ready aggregate of a trip
type TripPreview struct {
	Trip         *models.Trip      `json:"trip"`
	Days         []DayBucket       `json:"days"`
	Expenses     []*models.Expense `json:"expenses"`
	ExpenseTotal float64           `json:"expense_total"`
	Tasks        []*models.Task    `json:"tasks"`
}

// Preview composes a trip's activities, expenses and tasks into consistently
// ordered display structures. A missing trip aborts the aggregation, but a
// failed sub-resource fetch only empties its section: a trip should still
// render when one list cannot be loaded.
func (s *TripService) Preview(ctx context.Context, userID, tripID string) (*TripPreview, error) {
	trip, err := authorizeTrip(ctx, s.store, tripID, userID, false)
	if err != nil {
		return nil, err
	}
	return s.buildPreview(ctx, trip), nil
}

// PreviewUnauthenticated builds the preview for the public share surface
func (s *TripService) PreviewUnauthenticated(ctx context.Context, tripID string) (*TripPreview, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.buildPreview(ctx, trip), nil
}

func (s *TripService) buildPreview(ctx context.Context, trip *models.Trip) *TripPreview {
	activities, err := s.store.ListActivities(ctx, trip.ID)
	if err != nil {
		log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Preview: failed to load activities")
		activities = nil
	}
	days, err := s.store.ListDays(ctx, trip.ID)
	if err != nil {
		log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Preview: failed to load days")
		days = nil
	}
	expenses, err := s.store.ListExpenses(ctx, trip.ID)
	if err != nil {
		log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Preview: failed to load expenses")
		expenses = nil
	}
	tasks, err := s.store.ListTasks(ctx, trip.ID)
	if err != nil {
		log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Preview: failed to load tasks")
		tasks = nil
	}

	return &TripPreview{
		Trip:         trip,
		Days:         groupActivities(activities, days),
		Expenses:     expenses,
		ExpenseTotal: expenseTotal(expenses),
		Tasks:        tasks,
	}
}

// groupActivities orders activities by (day date, start_time, title) and
// groups them into one bucket per date, ascending, with activities whose day
// is null or unknown collected into a trailing unscheduled bucket.
func groupActivities(activities []*models.Activity, days []*models.TripDay) []DayBucket {
	dayDates := make(map[string]string, len(days))
	for _, day := range days {
		dayDates[day.ID] = day.Date
	}

	dateOf := func(a *models.Activity) (string, bool) {
		if a.DayID == nil {
			return "", false
		}
		date, ok := dayDates[*a.DayID]
		return date, ok
	}
	startOf := func(a *models.Activity) string {
		if a.StartTime == nil {
			return ""
		}
		return *a.StartTime
	}

	sorted := make([]*models.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, oki := dateOf(sorted[i])
		dj, okj := dateOf(sorted[j])
		if oki != okj {
			return oki // dated activities before unscheduled ones
		}
		if di != dj {
			return di < dj
		}
		if si, sj := startOf(sorted[i]), startOf(sorted[j]); si != sj {
			return si < sj
		}
		return sorted[i].Title < sorted[j].Title
	})

	var buckets []DayBucket
	var unscheduled []*models.Activity
	for _, a := range sorted {
		date, ok := dateOf(a)
		if !ok {
			unscheduled = append(unscheduled, a)
			continue
		}
		if len(buckets) == 0 || buckets[len(buckets)-1].Date != date {
			buckets = append(buckets, DayBucket{DayID: *a.DayID, Date: date})
		}
		last := &buckets[len(buckets)-1]
		last.Activities = append(last.Activities, a)
	}
	if len(unscheduled) > 0 {
		buckets = append(buckets, DayBucket{Activities: unscheduled})
	}
	return buckets
}

// expenseTotal sums amounts, clamped to a non-negative display number
func expenseTotal(expenses []*models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	if total < 0 {
		return 0
	}
	return total
}
