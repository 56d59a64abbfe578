// Package repository defines the activity directory interface and its
// in-memory implementation.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/activity"
)

// Store provides read/write access to the activity directory.
type Store interface {
	// List returns a copy of every activity keyed by name.
	List(ctx context.Context) activity.Directory

	// Get returns a copy of one activity.
	// Returns activity.ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (activity.Activity, error)

	// Enroll appends email to the roster of name.
	Enroll(ctx context.Context, name, email string) error

	// Unenroll removes email from the roster of name.
	Unenroll(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Participants returns the number of enrollments across all activities.
	Participants(ctx context.Context) int
}
