package loadgen

import "time"

// Config holds configuration for a signup load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Activity   string        // Activity every generated student signs up for
	Students   int           // Number of distinct students to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional file receiving the accepted emails
	Cleanup    bool          // Unregister accepted students after verification
	Verbose    bool          // Enable verbose logging
}

// Activity mirrors one entry of GET /activities.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse is the success body of signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body of every API failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Stats holds run statistics.
type Stats struct {
	StudentsGenerated int
	SignupsSubmitted  int
	SignupsAccepted   int
	SignupsFull       int
	SignupsDuplicate  int
	SignupsFailed     int
	Unregistered      int
	SpotsBefore       int
	ParticipantsAfter int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
