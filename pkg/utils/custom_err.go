package utils

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPetNotFound        = errors.New("pet not found")
	ErrPlanNotFound       = errors.New("plan not found")

	// Unverified clinics are indistinguishable from missing ones on every
	// public read path.
	ErrClinicNotFound = errors.New("clinic not found")

	// Distinct internally for logs and tests; the API surfaces both the same way.
	ErrTokenInvalid = errors.New("confirmation token invalid")
	ErrTokenExpired = errors.New("confirmation token expired")

	ErrResetTokenInvalid = errors.New("reset token invalid or expired")

	// Provider failure: no artifact was produced and no quota was charged.
	ErrGenerationFailed = errors.New("generation provider error")

	ErrDeletionAlreadyRequested = errors.New("deletion already requested")
	ErrDeletionNotPending       = errors.New("no pending deletion request")
)

// QuotaExceededError carries the ceiling so the user understands the limit
// they ran into.
type QuotaExceededError struct {
	Kind  string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly %s quota exceeded (limit %d)", e.Kind, e.Limit)
}
