package models

import (
	"strings"

	"github.com/google/uuid"
)

// Payer records who paid for an expense: either a registered trip member
// (MemberID set) or a free-text name for someone outside the trip (Name set).
// Exactly one of the two fields is non-empty.
type Payer struct {
	MemberID string `json:"member_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

// ParsePayer classifies a raw payer string once, at the boundary:
// a value that parses as a UUID is treated as a member identifier,
// anything else as a free-text name. Empty input yields a zero Payer.
func ParsePayer(raw string) Payer {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Payer{}
	}
	if _, err := uuid.Parse(raw); err == nil {
		return Payer{MemberID: raw}
	}
	return Payer{Name: raw}
}

// IsZero reports whether no payer was recorded
func (p Payer) IsZero() bool {
	return p.MemberID == "" && p.Name == ""
}
