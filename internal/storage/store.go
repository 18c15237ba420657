// Package storage defines the data-access contract every feature operates
// through. Implementations exist for Postgres (production) and SQLite
// (tests, local development).
package storage

import (
	"context"
	"errors"

	"tripdesk-backend/internal/models"
)

// ErrNotFound is returned by single-row reads that matched nothing.
// Maybe-single reads (GetBudget, GetAccountByEmail) return (nil, nil) instead.
var ErrNotFound = errors.New("not found")

// TripUpdate is a partial update; nil fields are left unchanged.
// An empty string clears a nullable column.
type TripUpdate struct {
	Title        *string
	StartDate    *string
	EndDate      *string
	CurrencyCode *string
}

// ActivityUpdate is a partial update; nil fields are left unchanged.
// DayID set to the empty string unschedules the activity.
type ActivityUpdate struct {
	Title     *string
	DayID     *string
	StartTime *string
	EndTime   *string
	Location  *string
	Note      *string
	OrderNo   *int
}

// TaskUpdate is a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title     *string
	Done      *bool
	SortOrder *int
}

// TripStore handles trip rows
type TripStore interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	// ListTripsForUser returns trips the user owns or is a member of,
	// newest first.
	ListTripsForUser(ctx context.Context, userID string) ([]*models.Trip, error)
	ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, id string, upd TripUpdate) error
	UpdateTripDescription(ctx context.Context, id, description string) error
	// DeleteTrip removes a trip; child rows cascade via foreign keys.
	DeleteTrip(ctx context.Context, id string) error
}

// DayStore handles trip_days rows
type DayStore interface {
	// EnsureDay returns the day for (tripID, date), creating it if absent.
	// The (trip_id, date) pair is unique in the schema; a lost insert race
	// resolves to the surviving row.
	EnsureDay(ctx context.Context, tripID, date string) (*models.TripDay, error)
	// GetDay retrieves a day scoped by trip; a day id belonging to another
	// trip matches nothing and yields ErrNotFound.
	GetDay(ctx context.Context, tripID, id string) (*models.TripDay, error)
	ListDays(ctx context.Context, tripID string) ([]*models.TripDay, error)
}

// ActivityStore handles activity rows
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetActivity(ctx context.Context, tripID, id string) (*models.Activity, error)
	ListActivities(ctx context.Context, tripID string) ([]*models.Activity, error)
	UpdateActivity(ctx context.Context, tripID, id string, upd ActivityUpdate) error
	DeleteActivity(ctx context.Context, tripID, id string) error
	// SetActivityOrder updates order_no scoped by (tripID, id); an id
	// belonging to another trip matches nothing and yields ErrNotFound.
	SetActivityOrder(ctx context.Context, tripID, id string, orderNo int) error
	// AssignUnscheduled moves every activity of the trip with a null day
	// onto dayID and returns how many rows changed.
	AssignUnscheduled(ctx context.Context, tripID, dayID string) (int, error)
}

// ExpenseStore handles expense rows
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, tripID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, tripID, id string) error
}

// BudgetStore handles the one-row-per-trip budget table
type BudgetStore interface {
	// GetBudget returns (nil, nil) when no row exists for the trip.
	GetBudget(ctx context.Context, tripID string) (*models.Budget, error)
	// UpsertBudget inserts or overwrites the single row keyed by trip_id.
	UpsertBudget(ctx context.Context, budget *models.Budget) error
}

// TaskStore handles task rows
type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	ListTasks(ctx context.Context, tripID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, tripID, id string, upd TaskUpdate) error
	DeleteTask(ctx context.Context, tripID, id string) error
}

// MemberStore handles trip_members rows
type MemberStore interface {
	// AddMember inserts a member row; adding an existing member updates
	// the stored role.
	AddMember(ctx context.Context, member *models.TripMember) error
	GetMember(ctx context.Context, tripID, userID string) (*models.TripMember, error)
	ListMembers(ctx context.Context, tripID string) ([]*models.TripMember, error)
	UpdateMemberRole(ctx context.Context, tripID, userID string, role models.Role) error
	RemoveMember(ctx context.Context, tripID, userID string) error
}

// ShareLinkStore handles share_links rows
type ShareLinkStore interface {
	CreateShareLink(ctx context.Context, link *models.ShareLink) error
	GetShareLink(ctx context.Context, id string) (*models.ShareLink, error)
	// ListShareLinks returns the trip's links newest first.
	ListShareLinks(ctx context.Context, tripID string) ([]*models.ShareLink, error)
}

// AccountStore reads the local mirror of the auth provider's user directory
type AccountStore interface {
	UpsertAccount(ctx context.Context, account *models.Account) error
	// GetAccountByEmail returns (nil, nil) when the email resolves to nothing.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	// ListAccounts pages through the directory ordered by id.
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

// Store is the full gateway contract consumed by the service layer
type Store interface {
	TripStore
	DayStore
	ActivityStore
	ExpenseStore
	BudgetStore
	TaskStore
	MemberStore
	ShareLinkStore
	AccountStore

	Close() error
}
