package journal

import "errors"

// Sentinel kinds for journal errors.
var (
	ErrEmptyID = errors.New("change has no id")
)
