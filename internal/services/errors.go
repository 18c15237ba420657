package services

import (
	"errors"
	"fmt"

	"tripdesk-backend/internal/storage"
)

// ErrNotFound mirrors the storage sentinel for callers that only import services
var ErrNotFound = storage.ErrNotFound

// ErrForbidden is returned when the actor lacks the required role on a trip
var ErrForbidden = errors.New("insufficient permissions for this trip")

// ValidationError rejects a request before any store call is made
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
