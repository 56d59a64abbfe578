package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the in-memory Store. A single RWMutex covers the whole
// directory: every mutation checks and applies its rules under the write
// lock, so capacity and uniqueness hold under concurrent requests.
type MemoryStore struct {
	mu         sync.RWMutex
	activities activity.Directory

	metricsUpdateInterval time.Duration
	stopCh                chan struct{}
	stopOnce              sync.Once
}

// NewMemoryStore creates a store seeded with the default roster unless
// WithSeed is given, and starts publishing occupancy gauges until ctx ends
// or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		activities:            activity.DefaultSeed(),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopCh:                make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.publishMetrics()
	go s.metricsLoop(ctx)
	return s
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) activity.Directory {
	start := time.Now()
	defer observeSince(start, metrics.RecordDirectoryQueryLatency)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.Clone()
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, name string) (activity.Activity, error) {
	start := time.Now()
	defer observeSince(start, metrics.RecordDirectoryQueryLatency)

	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Enroll implements Store. The duplicate check runs before the capacity check.
func (s *MemoryStore) Enroll(_ context.Context, name, email string) error {
	start := time.Now()
	defer observeSince(start, metrics.RecordDirectoryUpdateLatency)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return activity.ErrActivityNotFound
	}
	if a.Has(email) {
		return activity.ErrAlreadySignedUp
	}
	if a.IsFull() {
		return activity.ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	s.activities[name] = a
	metrics.UpdateActivityOccupancy(name, len(a.Participants), a.MaxParticipants)
	return nil
}

// Unenroll implements Store. Remaining participants keep their order.
func (s *MemoryStore) Unenroll(_ context.Context, name, email string) error {
	start := time.Now()
	defer observeSince(start, metrics.RecordDirectoryUpdateLatency)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return activity.ErrActivityNotFound
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return activity.ErrNotSignedUp
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	s.activities[name] = a
	metrics.UpdateActivityOccupancy(name, len(a.Participants), a.MaxParticipants)
	return nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Participants implements Store.
func (s *MemoryStore) Participants(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, a := range s.activities {
		total += len(a.Participants)
	}
	return total
}

// Close stops the background metrics loop.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

func (s *MemoryStore) metricsLoop(ctx context.Context) {
	ticker := time.NewTicker(s.metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.publishMetrics()
		}
	}
}

func (s *MemoryStore) publishMetrics() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for name, a := range s.activities {
		total += len(a.Participants)
		metrics.UpdateActivityOccupancy(name, len(a.Participants), a.MaxParticipants)
	}
	metrics.UpdateActivitiesTotal(len(s.activities))
	metrics.UpdateParticipantsTotal(total)
}

func observeSince(start time.Time, record func(float64)) {
	record(float64(time.Since(start).Microseconds()) / 1000)
}
