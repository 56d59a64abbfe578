// Package activity contains the activity record and the rules that guard
// its participant roster.
package activity

import (
	"fmt"
	"slices"
	"strings"
)

// Activity is a school club or event with a schedule, a capacity and the
// emails of the students enrolled in it.
type Activity struct {
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a deep copy so the roster can be handed out without sharing
// the backing array.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = slices.Clone(a.Participants)
	if c.Participants == nil {
		c.Participants = []string{}
	}
	return c
}

// Has reports whether email is enrolled.
func (a Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// IsFull reports whether the roster reached capacity.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft returns the number of free places, never negative.
func (a Activity) SpotsLeft() int {
	return max(a.MaxParticipants-len(a.Participants), 0)
}

// Validate checks the capacity and uniqueness invariants of a single record.
func (a Activity) Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty activity name", ErrInvalidActivity)
	}
	if a.MaxParticipants < 1 {
		return fmt.Errorf("%w: %q has max_participants %d", ErrInvalidActivity, name, a.MaxParticipants)
	}
	if len(a.Participants) > a.MaxParticipants {
		return fmt.Errorf("%w: %q has %d participants for %d places",
			ErrInvalidActivity, name, len(a.Participants), a.MaxParticipants)
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, email := range a.Participants {
		if _, dup := seen[email]; dup {
			return fmt.Errorf("%w: %q lists %s twice", ErrInvalidActivity, name, email)
		}
		seen[email] = struct{}{}
	}
	return nil
}

// SignedUpMessage is the confirmation returned by a successful enrollment.
func SignedUpMessage(name, email string) string {
	return fmt.Sprintf("Signed up %s for %s", email, name)
}

// UnregisteredMessage is the confirmation returned by a successful unenrollment.
func UnregisteredMessage(name, email string) string {
	return fmt.Sprintf("Unregistered %s from %s", email, name)
}
