package fetch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// CachedFetcher wraps a Fetcher and keeps each station's file for a fixed time. DPR products
// are issued every few minutes, so repeated requests inside that window can share one download.
// Concurrent misses for the same station wait on a single download.
type CachedFetcher struct {
	inner  Fetcher
	ttl    time.Duration
	clock  clockwork.Clock
	flight singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data    []byte
	fetched time.Time
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner Fetcher, ttl time.Duration, clock clockwork.Clock) *CachedFetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedFetcher{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedFetcher) Latest(ctx context.Context, station string) ([]byte, error) {
	key := strings.ToUpper(station)
	if data, ok := c.lookup(key); ok {
		return data, nil
	}

	ch := c.flight.DoChan(key, func() (any, error) {
		if data, ok := c.lookup(key); ok {
			return data, nil
		}
		data, err := c.inner.Latest(ctx, station)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{data: data, fetched: c.clock.Now()}
		c.mu.Unlock()
		return data, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *CachedFetcher) lookup(key string) ([]byte, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.clock.Since(e.fetched) < c.ttl {
		return e.data, true
	}
	return nil, false
}

// Invalidate drops the cached file of a station.
func (c *CachedFetcher) Invalidate(station string) {
	c.mu.Lock()
	delete(c.entries, strings.ToUpper(station))
	c.mu.Unlock()
}
