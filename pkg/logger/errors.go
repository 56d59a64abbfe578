package logger

import "errors"

// Sentinel kinds for logger errors.
var (
	ErrUnknownFormat = errors.New("unknown log format")
)
