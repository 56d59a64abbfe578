package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mergington/activities/internal/loadgen"
)

// Default configuration constants.
const (
	defaultStudents    = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		activity   = flag.String("activity", "Chess Club", "Activity to sign students up for")
		students   = flag.Int("students", defaultStudents, "Number of distinct students to sign up")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "File receiving the accepted student emails as JSON")
		logFile    = flag.String("log", "", "Log file for run output")
		keep       = flag.Bool("keep", false, "Keep the enrolled students instead of unregistering them")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	closeLog, err := loadgen.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)

	config := &loadgen.Config{
		BaseURL:    *baseURL,
		Activity:   *activity,
		Students:   *students,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Cleanup:    !*keep,
		Verbose:    *verbose,
	}

	_, err = loadgen.Run(ctx, config)
	cancel()
	closeLog()
	if err != nil {
		_, _ = os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
