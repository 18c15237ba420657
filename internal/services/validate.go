package services

import (
	"math"
	"strings"
	"time"
)

// validDate reports whether s is an ISO calendar date (YYYY-MM-DD)
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// validTimeOfDay reports whether s is an HH:MM time-of-day
func validTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// finiteAmount reports whether v is a usable non-negative money amount
func finiteAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// normalizeCurrency trims and upper-cases a currency code
func normalizeCurrency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
