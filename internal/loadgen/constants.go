package loadgen

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	emailDomain          = "mergington.edu"
)

// Signup outcomes as classified from the API response.
const (
	outcomeAccepted  = "accepted"
	outcomeFull      = "full"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// API details used to classify rejections.
const (
	detailFull      = "Activity is full"
	detailDuplicate = "Student is already signed up for this activity"
)
