// Package types contains common types used across the application
package types

// Message is the body of a successful roster mutation.
type Message struct {
	Message string `json:"message"`
}

// Summary is the per-activity occupancy reported by /stats.
type Summary struct {
	Enrolled  int `json:"enrolled"`
	Capacity  int `json:"capacity"`
	SpotsLeft int `json:"spots_left"`
}
