package loadgen

import "errors"

// Sentinel kinds for load run failures.
var (
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvariant        = errors.New("roster invariant violated")
	ErrBadConfig        = errors.New("invalid load config")
)
