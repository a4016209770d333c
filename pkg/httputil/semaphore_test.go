package httputil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphoreTryAcquire(t *testing.T) {
	sem := NewSemaphore(2)

	if !sem.TryAcquire() {
		t.Error("first TryAcquire should succeed")
	}
	if !sem.TryAcquire() {
		t.Error("second TryAcquire should succeed")
	}
	if sem.TryAcquire() {
		t.Error("third TryAcquire should fail at capacity")
	}
	if sem.DroppedCount() != 1 {
		t.Errorf("DroppedCount = %d, want 1", sem.DroppedCount())
	}

	sem.Release()
	if !sem.TryAcquire() {
		t.Error("TryAcquire should succeed after Release")
	}
}

func TestSemaphoreAcquireTimeout(t *testing.T) {
	sem := NewSemaphore(1)

	if err := sem.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := sem.Acquire(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestSemaphoreConcurrent(t *testing.T) {
	sem := NewSemaphore(10)
	var acquired atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem.TryAcquire() {
				acquired.Add(1)
				time.Sleep(5 * time.Millisecond)
				sem.Release()
			}
		}()
	}
	wg.Wait()

	if snap := sem.Snapshot(); snap.InUse != 0 {
		t.Errorf("expected 0 in use after completion, got %d", snap.InUse)
	}
	if acquired.Load() == 0 {
		t.Error("no goroutine acquired a slot")
	}
}

func TestSemaphoreSnapshot(t *testing.T) {
	sem := NewSemaphore(5)

	sem.TryAcquire()
	sem.TryAcquire()

	snap := sem.Snapshot()
	if snap.Capacity != 5 || snap.InUse != 2 || snap.Available != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestNewSemaphoreDefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		sem := NewSemaphore(capacity)
		if got := sem.Snapshot().Capacity; got != 32 {
			t.Errorf("NewSemaphore(%d) capacity = %d, want 32", capacity, got)
		}
	}
}
