package activity

import "errors"

// Kind classifies roster errors for the transport layer.
type Kind int

const (
	// KindUnknown is any error that is not a roster rule violation.
	KindUnknown Kind = iota
	// KindNotFound means the activity name is not in the directory.
	KindNotFound
	// KindConflict means the request contradicts the current roster.
	KindConflict
)

// String returns the kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Sentinel errors. Their messages are returned verbatim to API clients.
var (
	ErrActivityNotFound = errors.New("Activity not found")                              //nolint:staticcheck // client-facing message
	ErrAlreadySignedUp  = errors.New("Student is already signed up for this activity") //nolint:staticcheck // client-facing message
	ErrActivityFull     = errors.New("Activity is full")                                //nolint:staticcheck // client-facing message
	ErrNotSignedUp      = errors.New("Student is not signed up for this activity")      //nolint:staticcheck // client-facing message

	ErrInvalidActivity = errors.New("invalid activity")
)

// KindOf maps err onto its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrActivityNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadySignedUp),
		errors.Is(err, ErrActivityFull),
		errors.Is(err, ErrNotSignedUp):
		return KindConflict
	default:
		return KindUnknown
	}
}

// Reason returns a short label for a rejected mutation, used as a metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, ErrActivityFull):
		return "full"
	case errors.Is(err, ErrNotSignedUp):
		return "not_signed_up"
	default:
		return "other"
	}
}
