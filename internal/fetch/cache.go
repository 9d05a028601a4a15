package fetch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes successful fetches by exact remote path for the life of
// the process. Concurrent requests for the same path share one transfer.
// Failures are not cached. Returned slices are shared and must not be
// modified.
type Cache struct {
	next  Fetcher
	group singleflight.Group

	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	misses  int
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Entries int
	Hits    int
	Misses  int
}

// NewCache wraps next.
func NewCache(next Fetcher) *Cache {
	return &Cache{next: next, entries: make(map[string][]byte)}
}

// Fetch returns cached bytes for remotePath or fetches them.
func (c *Cache) Fetch(ctx context.Context, remotePath string) ([]byte, error) {
	if data, ok := c.lookup(remotePath, true); ok {
		zerolog.Ctx(ctx).Debug().Str("path", remotePath).Msg("fetch cache hit")
		return data, nil
	}

	v, err, shared := c.group.Do(remotePath, func() (any, error) {
		if data, ok := c.lookup(remotePath, false); ok {
			return data, nil
		}
		data, err := c.next.Fetch(ctx, remotePath)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[remotePath] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		zerolog.Ctx(ctx).Debug().Str("path", remotePath).Msg("joined in-flight fetch")
	}
	return v.([]byte), nil
}

func (c *Cache) lookup(remotePath string, count bool) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[remotePath]
	if count {
		if ok {
			c.hits++
		} else {
			c.misses++
		}
	}
	return data, ok
}

// Invalidate drops one path so the next Fetch goes to the server.
func (c *Cache) Invalidate(remotePath string) {
	c.mu.Lock()
	delete(c.entries, remotePath)
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
}

// Stats returns current usage counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
