// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/adapters/mq/queue"
	"github.com/mergington/activities/internal/adapters/mq/worker"
	"github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// Service owns the activity directory and the roster change pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	directory  *repository.MemoryStore
	changes    *queue.InMemoryQueue
	journal    *journal.Ring
	workerPool *worker.Pool

	// Configuration
	workerCount int
	queueSize   int
	journalSize int
	seed        activity.Directory

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of change workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending roster changes.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithJournalSize sets how many recent changes are retained.
func WithJournalSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.journalSize = size
		}
	}
}

// WithSeed sets the roster the directory starts from on every Start.
func WithSeed(seed activity.Directory) Option {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed.Clone()
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 2,
		queueSize:   10_000,
		journalSize: 1_000,
		seed:        activity.DefaultSeed(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the directory from the seed and starts the change workers.
// Calling Start on a running service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if err := s.seed.Validate(); err != nil {
		return err
	}

	s.logger.Info(ctx, "starting activities service...")

	// Workers outlive the request that started them; Stop cancels them.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.directory = repository.NewMemoryStore(runCtx, repository.WithSeed(s.seed))
	s.changes = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)
	s.journal = journal.NewRing(journal.WithSize(s.journalSize))
	s.workerPool = worker.NewPool(s.workerCount, s.changes, s.journal)
	s.workerPool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.directory.Count(ctx)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("journalSize", s.journalSize),
	)
	return nil
}

// Stop drains the change queue and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping activities service...")
	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "change workers did not stop cleanly", logger.Error(err))
	}
	_ = s.directory.Close()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "activities service stopped")
}

// directoryIfStarted returns the running directory and change queue.
func (s *Service) directoryIfStarted() (*repository.MemoryStore, *queue.InMemoryQueue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.directory, s.changes, nil
}

// List returns every activity keyed by name.
func (s *Service) List(ctx context.Context) (activity.Directory, error) {
	dir, _, err := s.directoryIfStarted()
	if err != nil {
		return nil, err
	}
	return dir.List(ctx), nil
}

// Get returns one activity.
func (s *Service) Get(ctx context.Context, name string) (activity.Activity, error) {
	dir, _, err := s.directoryIfStarted()
	if err != nil {
		return activity.Activity{}, err
	}
	return dir.Get(ctx, name)
}

// Enroll signs email up for the named activity and returns the confirmation.
func (s *Service) Enroll(ctx context.Context, name, email string) (string, error) {
	dir, changes, err := s.directoryIfStarted()
	if err != nil {
		return "", err
	}
	if err := dir.Enroll(ctx, name, email); err != nil {
		metrics.RecordRejection("signup", activity.Reason(err))
		s.logger.Debug(ctx, "signup refused",
			logger.String("activity", name),
			logger.String("email", email),
			logger.String("reason", activity.Reason(err)),
		)
		return "", err
	}

	metrics.RecordSignup()
	s.publish(ctx, changes, model.NewChange(model.ActionEnrolled, name, email))
	s.logger.Info(ctx, "student signed up", logger.String("activity", name), logger.String("email", email))
	return activity.SignedUpMessage(name, email), nil
}

// Unenroll removes email from the named activity and returns the confirmation.
func (s *Service) Unenroll(ctx context.Context, name, email string) (string, error) {
	dir, changes, err := s.directoryIfStarted()
	if err != nil {
		return "", err
	}
	if err := dir.Unenroll(ctx, name, email); err != nil {
		metrics.RecordRejection("unregister", activity.Reason(err))
		s.logger.Debug(ctx, "unregister refused",
			logger.String("activity", name),
			logger.String("email", email),
			logger.String("reason", activity.Reason(err)),
		)
		return "", err
	}

	metrics.RecordUnregistration()
	s.publish(ctx, changes, model.NewChange(model.ActionUnenrolled, name, email))
	s.logger.Info(ctx, "student unregistered", logger.String("activity", name), logger.String("email", email))
	return activity.UnregisteredMessage(name, email), nil
}

// publish hands a change to the workers. A refused change is counted and
// logged; the roster mutation it describes stands.
func (s *Service) publish(ctx context.Context, q *queue.InMemoryQueue, c model.Change) {
	if q.Enqueue(ctx, c) {
		return
	}
	metrics.RecordChangeDropped()
	s.logger.Warn(ctx, "roster change not journaled; queue refused it",
		logger.String("id", c.ID),
		logger.String("activity", c.Activity),
	)
}

// Changes returns up to n recent roster changes, newest first.
func (s *Service) Changes(ctx context.Context, n int) ([]model.Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.journal.Recent(ctx, n), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"journalSize": s.journalSize,
	}

	if s.started {
		all := s.directory.List(ctx)
		occupancy := make(map[string]types.Summary, len(all))
		participants := 0
		for name, a := range all {
			participants += len(a.Participants)
			occupancy[name] = types.Summary{
				Enrolled:  len(a.Participants),
				Capacity:  a.MaxParticipants,
				SpotsLeft: a.SpotsLeft(),
			}
		}

		queueLen := s.changes.Len(ctx)
		stats["activities"] = len(all)
		stats["participants"] = participants
		stats["occupancy"] = occupancy
		stats["queueLength"] = queueLen
		stats["journalLength"] = s.journal.Len()
		stats["changesRecorded"] = s.workerPool.Processed()

		metrics.UpdateActivitiesTotal(len(all))
		metrics.UpdateParticipantsTotal(participants)
		metrics.UpdateJournalSize(s.journal.Len())
	}

	return stats
}
