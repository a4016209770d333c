package httputil

import (
	"context"
	"sync/atomic"
)

// Semaphore caps concurrent outbound lookups. Enrichment calls are
// best-effort, so the non-blocking TryAcquire path drops work at capacity
// instead of queueing it.
type Semaphore struct {
	slots   chan struct{}
	dropped atomic.Int64
}

// NewSemaphore creates a semaphore. Non-positive capacities default to 32.
func NewSemaphore(capacity int) *Semaphore {
	if capacity <= 0 {
		capacity = 32
	}
	return &Semaphore{slots: make(chan struct{}, capacity)}
}

// TryAcquire takes a slot without blocking. A false return counts toward
// DroppedCount.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Acquire blocks for a slot until the context is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot. Releasing an unheld slot is a no-op.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
	}
}

// DroppedCount returns how many TryAcquire calls were rejected at capacity.
func (s *Semaphore) DroppedCount() int64 {
	return s.dropped.Load()
}

// Stats is a point-in-time view for monitoring endpoints.
type Stats struct {
	Capacity  int   `json:"capacity"`
	InUse     int   `json:"in_use"`
	Available int   `json:"available"`
	Dropped   int64 `json:"dropped"`
}

// Snapshot returns current semaphore statistics.
func (s *Semaphore) Snapshot() Stats {
	return Stats{
		Capacity:  cap(s.slots),
		InUse:     len(s.slots),
		Available: cap(s.slots) - len(s.slots),
		Dropped:   s.dropped.Load(),
	}
}
