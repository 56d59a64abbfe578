// Package repository defines the activity directory interface and its
// in-memory implementation.
package repository

import (
	"time"

	"github.com/mergington/activities/internal/domain/activity"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeed replaces the built-in roster. The directory is copied.
func WithSeed(seed activity.Directory) Option {
	return func(s *MemoryStore) {
		if seed != nil {
			s.activities = seed.Clone()
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}
