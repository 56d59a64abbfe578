package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do performs a request without a body and returns the status and body.
func (c *HTTPClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func rosterPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

// fetchActivity reads one activity through GET /activities.
func fetchActivity(ctx context.Context, client *HTTPClient, name string) (Activity, error) {
	status, body, err := client.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return Activity{}, fmt.Errorf("list activities: %w", err)
	}
	if status != http.StatusOK {
		return Activity{}, fmt.Errorf("list activities: unexpected status %d", status)
	}

	var all map[string]Activity
	if err := json.Unmarshal(body, &all); err != nil {
		return Activity{}, fmt.Errorf("decode activities: %w", err)
	}
	a, ok := all[name]
	if !ok {
		return Activity{}, fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	return a, nil
}

// submitSignups signs every email up concurrently and returns the accepted ones.
func submitSignups(ctx context.Context, config *Config, client *HTTPClient, emails []string, stats *Stats) []string {
	logger.Get().Info(ctx, "submitting signups",
		logger.String("activity", config.Activity),
		logger.Int("students", len(emails)),
		logger.Int("workers", config.Workers),
	)

	var (
		submitted, accepted, full, duplicate, failed int64

		mu            sync.Mutex
		acceptedEmail []string
		wg            sync.WaitGroup
	)

	emailChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range emailChan {
				if ctx.Err() != nil {
					return
				}
				outcome := submitSingleSignup(ctx, client, config.Activity, email)
				atomic.AddInt64(&submitted, 1)
				switch outcome {
				case outcomeAccepted:
					atomic.AddInt64(&accepted, 1)
					mu.Lock()
					acceptedEmail = append(acceptedEmail, email)
					mu.Unlock()
				case outcomeFull:
					atomic.AddInt64(&full, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if config.Verbose {
					logger.Get().Debug(ctx, "signup", logger.String("email", email), logger.String("outcome", outcome))
				}
			}
		}()
	}

	go func() {
		defer close(emailChan)
		for _, email := range emails {
			select {
			case <-ctx.Done():
				return
			case emailChan <- email:
			}
		}
	}()
	wg.Wait()

	stats.SignupsSubmitted = int(submitted)
	stats.SignupsAccepted = int(accepted)
	stats.SignupsFull = int(full)
	stats.SignupsDuplicate = int(duplicate)
	stats.SignupsFailed = int(failed)

	logger.Get().Info(ctx, "signup submission completed",
		logger.Int("accepted", stats.SignupsAccepted),
		logger.Int("full", stats.SignupsFull),
		logger.Int("duplicate", stats.SignupsDuplicate),
		logger.Int("failed", stats.SignupsFailed),
	)
	return acceptedEmail
}

// submitSingleSignup submits one signup and classifies the response.
func submitSingleSignup(ctx context.Context, client *HTTPClient, activity, email string) string {
	status, body, err := client.do(ctx, http.MethodPost, rosterPath(activity, "signup", email))
	if err != nil {
		return outcomeFailed
	}
	switch status {
	case http.StatusOK:
		return outcomeAccepted
	case http.StatusBadRequest:
		var e ErrorResponse
		if err := json.Unmarshal(body, &e); err != nil {
			return outcomeFailed
		}
		switch e.Detail {
		case detailFull:
			return outcomeFull
		case detailDuplicate:
			return outcomeDuplicate
		}
	}
	return outcomeFailed
}

// unregisterAll removes every email from the activity and returns how many succeeded.
func unregisterAll(ctx context.Context, config *Config, client *HTTPClient, emails []string) int {
	var (
		removed int64
		wg      sync.WaitGroup
	)
	emailChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range emailChan {
				status, _, err := client.do(ctx, http.MethodDelete, rosterPath(config.Activity, "unregister", email))
				if err == nil && status == http.StatusOK {
					atomic.AddInt64(&removed, 1)
				}
			}
		}()
	}
	for _, email := range emails {
		emailChan <- email
	}
	close(emailChan)
	wg.Wait()
	return int(removed)
}
