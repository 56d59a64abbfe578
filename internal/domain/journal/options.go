package journal

import "github.com/mergington/activities/internal/domain/model"

// Option applies a configuration option to the Ring.
type Option func(*Ring)

// WithSize sets how many changes are retained.
func WithSize(size int) Option {
	return func(r *Ring) {
		if size > 0 {
			r.buf = make([]model.Change, size)
		}
	}
}
