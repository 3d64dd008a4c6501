package feedcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportnsw/tripplanner/model"
)

// fakeFetcher counts fetches per mode and can block until released.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	block   chan struct{}
	err     error
	started chan string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: map[string]int{}}
}

func (f *fakeFetcher) FetchRealtimeFeed(ctx context.Context, mode string) (*model.RealtimeFeed, error) {
	f.mu.Lock()
	f.calls[mode]++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- mode
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.RealtimeFeed{
		Vehicles: []model.VehiclePosition{{TripID: "T-" + mode}},
	}, nil
}

func (f *fakeFetcher) callCount(mode string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[mode]
}

func TestFeedDeduplicatesConcurrentCallers(t *testing.T) {
	fetcher := newFakeFetcher()
	c := New(fetcher)
	c.now = func() time.Time { return time.Unix(1767139200, 0) }

	const callers = 16
	feeds := make([]*model.RealtimeFeed, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			feeds[i], errs[i] = c.Feed(context.Background(), "buses")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	assert.Equal(t, 1, fetcher.callCount("buses"))
	for i := 1; i < callers; i++ {
		// All callers share the same snapshot.
		assert.Same(t, feeds[0], feeds[i])
	}
}

func TestFeedRefetchesInNextBucket(t *testing.T) {
	fetcher := newFakeFetcher()
	c := New(fetcher)

	now := time.Unix(1767139200, 0)
	c.now = func() time.Time { return now }

	_, err := c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	_, err = c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount("buses"))

	// Same minute: still cached.
	now = now.Add(59 * time.Second)
	_, err = c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount("buses"))

	// Minute rolls over: new fetch.
	now = now.Add(1 * time.Second)
	_, err = c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount("buses"))
}

func TestFeedModesFetchIndependently(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.block = make(chan struct{})
	fetcher.started = make(chan string, 2)

	c := New(fetcher)
	c.now = func() time.Time { return time.Unix(1767139200, 0) }

	results := make(chan string, 2)
	for _, mode := range []string{"buses", "ferries"} {
		go func(mode string) {
			feed, err := c.Feed(context.Background(), mode)
			if err == nil {
				results <- feed.Vehicles[0].TripID
			}
		}(mode)
	}

	// Both fetches must start even though neither has finished: a slow mode
	// must not serialize the other behind it.
	started := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-fetcher.started:
			started[m] = true
		case <-time.After(time.Second):
			t.Fatal("fetches did not start concurrently")
		}
	}
	assert.True(t, started["buses"] && started["ferries"])

	close(fetcher.block)
	got := map[string]bool{<-results: true, <-results: true}
	assert.True(t, got["T-buses"] && got["T-ferries"])
}

func TestFeedDoesNotCacheFailures(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.err = errors.New("upstream down")

	c := New(fetcher)
	c.now = func() time.Time { return time.Unix(1767139200, 0) }

	_, err := c.Feed(context.Background(), "buses")
	require.Error(t, err)
	assert.Equal(t, 1, fetcher.callCount("buses"))

	// Same bucket, but the failure was not cached: a new fetch happens and
	// succeeds now that the upstream recovered.
	fetcher.err = nil
	feed, err := c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	require.NotNil(t, feed)
	assert.Equal(t, 2, fetcher.callCount("buses"))
}

func TestFeedCallerCancellationDoesNotCancelSharedFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.block = make(chan struct{})

	c := New(fetcher)
	c.now = func() time.Time { return time.Unix(1767139200, 0) }

	ctx, cancel := context.WithCancel(context.Background())
	abandoned := make(chan error, 1)
	go func() {
		_, err := c.Feed(ctx, "buses")
		abandoned <- err
	}()

	var patientErr error
	var patientFeed *model.RealtimeFeed
	done := make(chan struct{})
	go func() {
		patientFeed, patientErr = c.Feed(context.Background(), "buses")
		close(done)
	}()

	// Give both waiters time to join the in-flight fetch, then abandon one.
	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-abandoned, context.Canceled)

	close(fetcher.block)
	<-done
	require.NoError(t, patientErr)
	require.NotNil(t, patientFeed)
	assert.Equal(t, 1, fetcher.callCount("buses"))
}

func TestPruneDiscardsStaleBuckets(t *testing.T) {
	fetcher := newFakeFetcher()
	c := New(fetcher)

	now := time.Unix(1767139200, 0)
	c.now = func() time.Time { return now }

	_, err := c.Feed(context.Background(), "buses")
	require.NoError(t, err)
	_, err = c.Feed(context.Background(), "ferries")
	require.NoError(t, err)

	c.mu.Lock()
	entries := len(c.entries)
	c.mu.Unlock()
	assert.Equal(t, 2, entries)

	// Two buckets later, inserting a new entry evicts everything stale.
	now = now.Add(2 * time.Minute)
	_, err = c.Feed(context.Background(), "buses")
	require.NoError(t, err)

	c.mu.Lock()
	for k := range c.entries {
		assert.GreaterOrEqual(t, k.bucket, now.Unix()/bucketSize-1)
	}
	entries = len(c.entries)
	c.mu.Unlock()
	assert.Equal(t, 1, entries)
}

func TestFeedConcurrentBucketRollover(t *testing.T) {
	fetcher := newFakeFetcher()
	c := New(fetcher)

	var tick atomic.Int64
	tick.Store(1767139200)
	c.now = func() time.Time { return time.Unix(tick.Load(), 0) }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Feed(context.Background(), "buses")
		}()
	}
	wg.Wait()

	tick.Add(60)
	_, err := c.Feed(context.Background(), "buses")
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.callCount("buses"))
}
