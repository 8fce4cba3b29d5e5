package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Result is what a cached query hands back to a view. Data may be valid
// even when Err is set: a failed refresh keeps the last good value.
type Result[T any] struct {
	Data T
	Err  error
	// HasData is false until one fetch succeeded.
	HasData bool
	// Cached is true when Data came from the cache rather than from the
	// fetch made by this call.
	Cached    bool
	Stale     bool
	FetchedAt time.Time
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
	err       error
}

// Cache is a process-lifetime stale-while-revalidate cache. Entries younger
// than the freshness window are served as is; older entries are served and
// refreshed in the background. Concurrent fetches of a key are collapsed.
type Cache[K comparable, T any] struct {
	freshness time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[K]*entry[T]

	group singleflight.Group
	bg    sync.WaitGroup

	onUpdate func(K, T)
}

func NewCache[K comparable, T any](freshness time.Duration) *Cache[K, T] {
	return &Cache[K, T]{
		freshness: freshness,
		now:       time.Now,
		entries:   make(map[K]*entry[T]),
	}
}

// OnUpdate registers fn to run after a background refresh stored a new
// value. It must be set before the cache is used.
func (c *Cache[K, T]) OnUpdate(fn func(K, T)) { c.onUpdate = fn }

// Get returns the cached value for key, fetching it when absent.
func (c *Cache[K, T]) Get(ctx context.Context, key K, fetch func(context.Context) (T, error)) Result[T] {
	c.mu.Lock()
	e, ok := c.entries[key]
	var snap entry[T]
	if ok {
		snap = *e
	}
	c.mu.Unlock()

	if !ok {
		return c.load(ctx, key, fetch)
	}

	res := Result[T]{Data: snap.value, Err: snap.err, HasData: true, Cached: true, FetchedAt: snap.fetchedAt}
	if c.now().Sub(snap.fetchedAt) >= c.freshness {
		res.Stale = true
		c.revalidate(ctx, key, fetch)
	}
	return res
}

// Refresh fetches key now. On failure the previous value, if any, is
// returned along with the error.
func (c *Cache[K, T]) Refresh(ctx context.Context, key K, fetch func(context.Context) (T, error)) Result[T] {
	return c.load(ctx, key, fetch)
}

// Wait blocks until background refreshes started so far have finished.
func (c *Cache[K, T]) Wait() { c.bg.Wait() }

func (c *Cache[K, T]) load(ctx context.Context, key K, fetch func(context.Context) (T, error)) Result[T] {
	v, err, _ := c.group.Do(flightKey(key), func() (any, error) {
		return c.fetch(ctx, key, fetch)
	})

	if err == nil {
		return Result[T]{Data: v.(T), HasData: true, FetchedAt: c.now()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	res := Result[T]{Err: err}
	if e, ok := c.entries[key]; ok {
		res.Data = e.value
		res.HasData = true
		res.Cached = true
		res.Stale = true
		res.FetchedAt = e.fetchedAt
	}
	return res
}

func (c *Cache[K, T]) revalidate(ctx context.Context, key K, fetch func(context.Context) (T, error)) {
	ctx = context.WithoutCancel(ctx)
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		v, err, _ := c.group.Do(flightKey(key), func() (any, error) {
			return c.fetch(ctx, key, fetch)
		})
		if err == nil && c.onUpdate != nil {
			c.onUpdate(key, v.(T))
		}
	}()
}

// fetch runs fn and records the outcome. Errors are kept on an existing
// entry so the next Get can report them next to the old value.
func (c *Cache[K, T]) fetch(ctx context.Context, key K, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if e, ok := c.entries[key]; ok {
			e.err = err
		}
		return v, err
	}
	c.entries[key] = &entry[T]{value: v, fetchedAt: c.now()}
	return v, nil
}

func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
