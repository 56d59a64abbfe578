package api

import "github.com/mergington/activities/pkg/logger"

const defaultMaxChangesLimit = 100

type serverConfig struct {
	maxChangesLimit int
	logger          logger.Logger
}

// Option configures the API server.
type Option func(*serverConfig)

// WithMaxChangesLimit caps GET /changes?limit.
func WithMaxChangesLimit(limit int) Option {
	return func(c *serverConfig) {
		if limit > 0 {
			c.maxChangesLimit = limit
		}
	}
}

// WithLogger sets the logger used for unexpected handler failures.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
