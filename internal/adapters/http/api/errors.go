package api

import (
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
)

// Sentinel kinds for API errors.
var (
	ErrMissingEmail = errors.New("email query parameter is required")
	ErrBadLimit     = errors.New("limit must be a positive integer")
	ErrLimitTooHigh = errors.New("limit exceeds the maximum")
)

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch activity.KindOf(err) {
	case activity.KindNotFound:
		return http.StatusNotFound
	case activity.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
