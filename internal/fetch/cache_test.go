package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int32
	gate  chan struct{}
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte("data:" + path), nil
}

func TestCacheReturnsCachedBytes(t *testing.T) {
	next := &countingFetcher{}
	c := NewCache(next)
	ctx := context.Background()

	first, err := c.Fetch(ctx, "/a")
	require.NoError(t, err)
	second, err := c.Fetch(ctx, "/a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, next.calls.Load())
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, c.Stats())

	_, err = c.Fetch(ctx, "/b")
	require.NoError(t, err)
	assert.EqualValues(t, 2, next.calls.Load(), "distinct paths are distinct entries")
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	next := &countingFetcher{err: errors.New("timeout")}
	c := NewCache(next)

	_, err := c.Fetch(context.Background(), "/a")
	require.Error(t, err)
	_, err = c.Fetch(context.Background(), "/a")
	require.Error(t, err)

	assert.EqualValues(t, 2, next.calls.Load())
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestCacheCollapsesConcurrentRequests(t *testing.T) {
	next := &countingFetcher{gate: make(chan struct{})}
	c := NewCache(next)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := c.Fetch(context.Background(), "/shared")
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}
	close(next.gate)
	wg.Wait()

	assert.EqualValues(t, 1, next.calls.Load())
	for _, r := range results {
		assert.Equal(t, "data:/shared", string(r))
	}
}

func TestCacheInvalidateAndPurge(t *testing.T) {
	next := &countingFetcher{}
	c := NewCache(next)
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "/a")
	_, _ = c.Fetch(ctx, "/b")
	c.Invalidate("/a")
	_, _ = c.Fetch(ctx, "/a")
	_, _ = c.Fetch(ctx, "/b")
	assert.EqualValues(t, 3, next.calls.Load())

	c.Purge()
	assert.Equal(t, 0, c.Stats().Entries)
	_, _ = c.Fetch(ctx, "/b")
	assert.EqualValues(t, 4, next.calls.Load())
}
