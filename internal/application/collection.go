package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/estate-cli/internal/ports"
)

type CollectionStatus string

const (
	StatusIdle    CollectionStatus = "idle"
	StatusLoading CollectionStatus = "loading"
	StatusReady   CollectionStatus = "ready"
	StatusFailed  CollectionStatus = "failed"
)

// Snapshot is a point-in-time view of a cached collection. Items is a
// copy; readers can hold it without observing later mutations.
type Snapshot[R any] struct {
	Items         []R
	Status        CollectionStatus
	Err           string
	LastFetchedAt time.Time
}

type FetchFunc[R any] func(ctx context.Context) ([]R, error)

// Collection caches one server-side collection behind a small state
// machine: Idle -> Loading -> Ready|Failed, with refetch allowed from
// any non-Loading state. At most one fetch is in flight at a time; a
// refetch requested while Loading coalesces into the in-flight call
// instead of starting a second network request.
type Collection[R any] struct {
	mu         sync.Mutex
	fetch      FetchFunc[R]
	clock      ports.Clock
	snap       Snapshot[R]
	lastErr    error
	inflight   chan struct{}
	generation uint64
}

func NewCollection[R any](fetch FetchFunc[R], clock ports.Clock) *Collection[R] {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Collection[R]{
		fetch: fetch,
		clock: clock,
		snap:  Snapshot[R]{Status: StatusIdle},
	}
}

// Current returns the latest snapshot without blocking.
func (c *Collection[R]) Current() Snapshot[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySnapshotLocked()
}

// Refetch starts a fetch unless one is already in flight, in which case
// the pending completion channel is returned as-is. The returned
// channel closes when the fetch that will satisfy this request
// completes; callers that only want to trigger a refresh may ignore it.
func (c *Collection[R]) Refetch(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.snap.Status == StatusLoading && c.inflight != nil {
		done := c.inflight
		c.mu.Unlock()
		return done
	}

	done := make(chan struct{})
	c.inflight = done
	c.snap.Status = StatusLoading
	c.snap.Err = ""
	generation := c.generation
	c.mu.Unlock()

	go func() {
		defer close(done)

		items, err := c.fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()

		// A superseded fetch (invalidated mid-flight) must not write its
		// result: it may carry data that belongs to a previous identity.
		if generation != c.generation {
			return
		}
		c.inflight = nil

		if err != nil {
			c.snap.Status = StatusFailed
			c.snap.Err = err.Error()
			c.lastErr = err
			return
		}

		if items == nil {
			items = []R{}
		}
		c.snap = Snapshot[R]{
			Items:         items,
			Status:        StatusReady,
			LastFetchedAt: c.clock.Now(),
		}
		c.lastErr = nil
	}()

	return done
}

// Sync refetches (or joins the in-flight fetch) and blocks until it
// completes, returning the resulting snapshot and the fetch error, if
// any.
func (c *Collection[R]) Sync(ctx context.Context) (Snapshot[R], error) {
	done := c.Refetch(ctx)

	select {
	case <-ctx.Done():
		return c.Current(), ctx.Err()
	case <-done:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySnapshotLocked(), c.lastErr
}

// Invalidate discards the cached items and resets the collection to
// Idle. Any in-flight fetch keeps running but its result is dropped, so
// stale data from before the invalidation can never surface after it.
func (c *Collection[R]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.inflight = nil
	c.snap = Snapshot[R]{Status: StatusIdle}
	c.lastErr = nil
}

func (c *Collection[R]) copySnapshotLocked() Snapshot[R] {
	snap := c.snap
	if snap.Items != nil {
		snap.Items = append([]R(nil), snap.Items...)
	}
	return snap
}
