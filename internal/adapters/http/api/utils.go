package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const defaultChangesLimit = 20

// emailParam returns the trimmed email query parameter.
func emailParam(r *http.Request) (string, error) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

// limitParam parses ?limit, falling back to a default capped by maxLimit.
func limitParam(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return min(defaultChangesLimit, maxLimit), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrBadLimit
	}
	if n > maxLimit {
		return 0, fmt.Errorf("%w of %d", ErrLimitTooHigh, maxLimit)
	}
	return n, nil
}
