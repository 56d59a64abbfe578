package loadgen

import (
	"fmt"
	"io"
	"os"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the logger, writing to stdout and, when logFile
// is set, to that file too. It returns a func that closes the file.
func SetupLogging(logFile string, verbose bool) (func(), error) {
	out := io.Writer(os.Stdout)
	closeFn := func() {}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closeFn = func() { _ = file.Close() }
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the signup load tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Mergington Signup Load Tool
===========================

Fires concurrent signups for one activity, checks that the roster never
exceeds capacity or lists a student twice, then unregisters the students
it enrolled.

Usage:
  go run ./cmd/signup-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to sign students up for (default "Chess Club")
  -students int
        Number of distinct students to sign up (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        File receiving the accepted student emails as JSON
  -log string
        Log file for run output
  -keep
        Keep the enrolled students instead of unregistering them
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Oversubscribe Mathletes with 50 concurrent students
  go run ./cmd/signup-load -activity Mathletes -students 50

  # Target another host and keep the enrollments
  go run ./cmd/signup-load -url http://localhost:8080 -keep
`)
}
