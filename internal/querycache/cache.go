// Package querycache is the console's read-through cache for upstream queries.
//
// Entries live in namespaces, one per authenticated session, so that a branch
// switch or logout can drop everything a session has fetched in one call.
package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/flock-console/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Options controls freshness and retry behaviour.
type Options struct {
	// StaleTime is how long a successful result is served without refetching.
	StaleTime time.Duration
	// Retry is the number of additional attempts after a failed fetch.
	Retry int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	opts Options

	mu         sync.RWMutex
	namespaces map[string]map[string]entry

	// generations is bumped on Clear so fetches started before a clear
	// cannot repopulate the namespace.
	generations map[string]uint64

	sf  singleflight.Group
	now func() time.Time
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	return &Cache{
		opts:        opts,
		namespaces:  make(map[string]map[string]entry),
		generations: make(map[string]uint64),
		now:         time.Now,
	}
}

// Fetch returns the cached value for (namespace, key) while it is fresh,
// otherwise calls fn, retrying up to Options.Retry times. Concurrent callers
// for the same key share one in-flight call, which keeps running when the
// caller that started it gives up. Failures are not cached.
func Fetch[T any](ctx context.Context, c *Cache, namespace, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(namespace, key); ok {
		if typed, ok := v.(T); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return typed, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	// The shared fetch is detached from the first caller's cancellation so
	// one disconnecting client cannot fail the others waiting on it.
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(flightKey(namespace, key), func() (any, error) {
		gen := c.generation(namespace)
		value, err := c.fetchWithRetry(shared, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}
		c.store(namespace, key, value, gen)
		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *Cache) fetchWithRetry(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.Retry; attempt++ {
		if attempt > 0 && c.opts.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.opts.RetryDelay):
			}
		}
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Cache) lookup(namespace, key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.namespaces[namespace][key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.opts.StaleTime {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) generation(namespace string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generations[namespace]
}

func (c *Cache) store(namespace, key string, value any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[namespace] != gen {
		return
	}
	ns, ok := c.namespaces[namespace]
	if !ok {
		ns = make(map[string]entry)
		c.namespaces[namespace] = ns
	}
	ns[key] = entry{value: value, fetchedAt: c.now()}
}

// Invalidate drops every key in namespace that starts with prefix.
func (c *Cache) Invalidate(namespace, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.namespaces[namespace] {
		if strings.HasPrefix(key, prefix) {
			delete(c.namespaces[namespace], key)
		}
	}
}

// Clear drops the whole namespace.
func (c *Cache) Clear(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.namespaces, namespace)
	c.generations[namespace]++
}

// Len returns the number of entries held for namespace, fresh or not.
func (c *Cache) Len(namespace string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.namespaces[namespace])
}

func flightKey(namespace, key string) string {
	return namespace + "\x00" + key
}
