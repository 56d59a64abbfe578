// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Action names what happened to a roster.
type Action string

// Roster actions.
const (
	ActionEnrolled   Action = "enrolled"
	ActionUnenrolled Action = "unenrolled"
)

// Change records one successful roster mutation.
type Change struct {
	ID       string    `json:"id"`
	Action   Action    `json:"action"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}

// NewChange stamps a change with a fresh id and the current UTC time.
func NewChange(action Action, activity, email string) Change {
	return Change{
		ID:       uuid.NewString(),
		Action:   action,
		Activity: activity,
		Email:    email,
		At:       time.Now().UTC(),
	}
}
