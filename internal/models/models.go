package models

// Trip is the top-level planning unit owning all other entities
type Trip struct {
	ID           string  `json:"id"`
	Title        *string `json:"title,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Description  string  `json:"description,omitempty"`
	OwnerID      string  `json:"owner_id"`
	CurrencyCode string  `json:"currency_code"`
	CreatedAt    int64   `json:"created_at"`
}

// TripDay is a calendar date scoped to one trip; at most one per (trip, date)
type TripDay struct {
	ID     string `json:"id"`
	TripID string `json:"trip_id"`
	Date   string `json:"date"`
}

// Activity is a scheduled or unscheduled event within a trip.
// DayID is nil until the activity is assigned to a day.
type Activity struct {
	ID        string  `json:"id"`
	TripID    string  `json:"trip_id"`
	DayID     *string `json:"day_id,omitempty"`
	Title     string  `json:"title"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Location  string  `json:"location,omitempty"`
	Note      string  `json:"note,omitempty"`
	OrderNo   int     `json:"order_no"`
}

// ExpenseCategory classifies an expense
type ExpenseCategory string

const (
	CategoryMeal      ExpenseCategory = "meal"
	CategoryTransport ExpenseCategory = "transport"
	CategoryLodging   ExpenseCategory = "lodging"
	CategoryTicket    ExpenseCategory = "ticket"
	CategoryOther     ExpenseCategory = "other"
)

// ValidCategory reports whether c is a known expense category
func ValidCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryMeal, CategoryTransport, CategoryLodging, CategoryTicket, CategoryOther:
		return true
	}
	return false
}

// Expense is a shared cost within a trip
type Expense struct {
	ID        string          `json:"id"`
	TripID    string          `json:"trip_id"`
	Date      string          `json:"date"`
	Title     string          `json:"title"`
	Category  ExpenseCategory `json:"category"`
	Amount    float64         `json:"amount"`
	PaidBy    Payer           `json:"paid_by"`
	SplitWith []string        `json:"split_with,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

// Budget is the single budget row for a trip, keyed by trip id
type Budget struct {
	TripID   string  `json:"trip_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// TaskKind distinguishes todo items from packing-list items
type TaskKind string

const (
	KindTodo    TaskKind = "todo"
	KindPacking TaskKind = "packing"
)

// Task is a todo or packing-list item within a trip
type Task struct {
	ID        string   `json:"id"`
	TripID    string   `json:"trip_id"`
	Title     string   `json:"title"`
	Kind      TaskKind `json:"kind"`
	Done      bool     `json:"done"`
	SortOrder *int     `json:"sort_order,omitempty"`
}

// Role is a collaborator's permission level on a trip
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	return r == RoleOwner || r == RoleEditor || r == RoleViewer
}

// TripMember is an additional collaborator on a trip.
// The trip creator is owner via Trip.OwnerID, not via a member row.
type TripMember struct {
	TripID string `json:"trip_id"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// ShareLink grants unauthenticated read access to a trip's preview.
// ExpiresAt is unix seconds, 0 meaning the link never expires.
type ShareLink struct {
	ID        string `json:"id"`
	TripID    string `json:"trip_id"`
	IsEnabled bool   `json:"is_enabled"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Account mirrors a user record from the hosted auth provider,
// read by the identity resolver for email lookups
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
