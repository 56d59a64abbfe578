// Package journal keeps a bounded, in-memory history of roster changes.
package journal

import (
	"context"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
)

const defaultSize = 1000

// Journal records changes and returns the most recent ones.
type Journal interface {
	// Record appends a change, evicting the oldest entry when full.
	Record(ctx context.Context, c model.Change) error
	// Recent returns up to n changes, newest first.
	Recent(ctx context.Context, n int) []model.Change
	// Len returns the number of retained changes.
	Len() int
}

// Ring is a fixed-size Journal backed by a circular buffer.
type Ring struct {
	mu    sync.RWMutex
	buf   []model.Change
	next  int
	count int
}

// NewRing creates a journal retaining at most size changes.
func NewRing(opts ...Option) *Ring {
	r := &Ring{buf: make([]model.Change, defaultSize)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record implements Journal.
func (r *Ring) Record(_ context.Context, c model.Change) error {
	if c.ID == "" {
		return ErrEmptyID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = c
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	return nil
}

// Recent implements Journal.
func (r *Ring) Recent(_ context.Context, n int) []model.Change {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return []model.Change{}
	}
	out := make([]model.Change, n)
	idx := r.next
	for i := 0; i < n; i++ {
		idx = (idx - 1 + len(r.buf)) % len(r.buf)
		out[i] = r.buf[idx]
	}
	return out
}

// Len implements Journal.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Cap returns the maximum number of retained changes.
func (r *Ring) Cap() int {
	return len(r.buf)
}
