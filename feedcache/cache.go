package feedcache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transportnsw/tripplanner/model"
)

const bucketSize = 60 // seconds per cache bucket

// Fetcher downloads and decodes one mode's vehicle-position feed. It is
// satisfied by *client.Client.
type Fetcher interface {
	FetchRealtimeFeed(ctx context.Context, mode string) (*model.RealtimeFeed, error)
}

type key struct {
	mode   string
	bucket int64
}

// entry is the in-flight/completed fetch handle for one (mode, bucket) key.
// feed and err are written exactly once, before done is closed.
type entry struct {
	done chan struct{}
	feed *model.RealtimeFeed
	err  error
}

// Cache deduplicates realtime feed fetches per (mode, minute bucket) key.
// Distinct modes fetch independently; there is no head-of-line blocking
// behind a slow mode.
type Cache struct {
	fetcher      Fetcher
	fetchTimeout time.Duration
	now          func() time.Time

	mu      sync.Mutex
	entries map[key]*entry
}

// New creates a cache in front of the given fetcher.
func New(fetcher Fetcher) *Cache {
	return NewWithClock(fetcher, time.Now)
}

// NewWithClock creates a cache using the given clock for bucket computation.
func NewWithClock(fetcher Fetcher, now func() time.Time) *Cache {
	return &Cache{
		fetcher:      fetcher,
		fetchTimeout: 30 * time.Second,
		now:          now,
		entries:      map[key]*entry{},
	}
}

// Feed returns the vehicle-position snapshot for a mode, fetching at most
// once per mode per minute. Concurrent callers for the same mode share a
// single in-flight fetch and receive the same result. A caller cancelling
// its context stops waiting but does not cancel the shared fetch.
func (c *Cache) Feed(ctx context.Context, mode string) (*model.RealtimeFeed, error) {
	k := key{mode: mode, bucket: c.now().Unix() / bucketSize}

	c.mu.Lock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[k] = e
		c.prune(k.bucket)
		go c.fetch(k, e)
	}
	c.mu.Unlock()

	select {
	case <-e.done:
		return e.feed, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetch runs detached from any caller context so that abandonment by one
// waiter leaves the shared fetch running for the others.
func (c *Cache) fetch(k key, e *entry) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	e.feed, e.err = c.fetcher.FetchRealtimeFeed(ctx, k.mode)
	if e.err != nil {
		// Failures are never cached: drop the entry so the next caller in
		// this bucket retries instead of inheriting the error.
		c.mu.Lock()
		if c.entries[k] == e {
			delete(c.entries, k)
		}
		c.mu.Unlock()
		log.Warn().Err(e.err).Str("mode", k.mode).Msg("Vehicle position fetch failed")
	}
	close(e.done)
}

// prune drops entries more than one bucket old. Caller holds c.mu.
func (c *Cache) prune(current int64) {
	for k := range c.entries {
		if k.bucket < current-1 {
			delete(c.entries, k)
		}
	}
}
