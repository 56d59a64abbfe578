package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes the complete signup load run.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)

	logger.Get().Info(ctx, "starting signup load run",
		logger.String("baseURL", config.BaseURL),
		logger.String("activity", config.Activity),
		logger.Int("students", config.Students),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("cleanup", config.Cleanup),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, err
	}

	// Step 2: Snapshot the activity
	before, err := fetchActivity(ctx, client, config.Activity)
	if err != nil {
		return nil, err
	}
	stats.SpotsBefore = before.MaxParticipants - len(before.Participants)

	// Step 3: Generate students and sign them up concurrently
	emails := generateEmails(ctx, config.Students, stats)
	accepted := submitSignups(ctx, config, client, emails, stats)

	// Step 4: Verify the roster
	after, err := fetchActivity(ctx, client, config.Activity)
	if err != nil {
		return nil, err
	}
	stats.ParticipantsAfter = len(after.Participants)
	verifyErr := verifyResults(ctx, before, after, accepted, stats)

	// Step 5: Save accepted emails
	if config.OutputFile != "" {
		if err := saveEmailsToFile(ctx, config.OutputFile, accepted); err != nil {
			logger.Get().Warn(ctx, "failed to save emails to file", logger.Error(err))
		}
	}

	// Step 6: Put the roster back
	if config.Cleanup {
		stats.Unregistered = unregisterAll(ctx, config, client, accepted)
		logger.Get().Info(ctx, "unregistered accepted students", logger.Int("count", stats.Unregistered))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if verifyErr != nil {
		return stats, verifyErr
	}
	logger.Get().Info(ctx, "load run completed successfully")
	return stats, nil
}

func validate(config *Config) error {
	switch {
	case config.BaseURL == "":
		return fmt.Errorf("%w: base URL is required", ErrBadConfig)
	case config.Activity == "":
		return fmt.Errorf("%w: activity is required", ErrBadConfig)
	case config.Students < 1:
		return fmt.Errorf("%w: students must be positive", ErrBadConfig)
	case config.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrBadConfig)
	}
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// saveEmailsToFile writes the accepted emails as a JSON array.
func saveEmailsToFile(ctx context.Context, filename string, emails []string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(emails, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal emails: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Get().Info(ctx, "emails saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, signupsPerSecond float64
	if stats.SignupsSubmitted > 0 {
		acceptRate = float64(stats.SignupsAccepted) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		signupsPerSecond = float64(stats.SignupsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("studentsGenerated", stats.StudentsGenerated),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsAccepted", stats.SignupsAccepted),
		logger.Int("signupsFull", stats.SignupsFull),
		logger.Int("signupsDuplicate", stats.SignupsDuplicate),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("spotsBefore", stats.SpotsBefore),
		logger.Int("participantsAfter", stats.ParticipantsAfter),
		logger.Int("unregistered", stats.Unregistered),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("signupsPerSecond", signupsPerSecond))
}
