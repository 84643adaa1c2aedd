package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns a fixed payload or error, counting calls. An
// optional release channel holds every Fetch until closed.
type stubFetcher struct {
	mu      sync.Mutex
	payload *Payload
	err     error
	calls   int32
	release chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context) (*Payload, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payload, f.err
}

func (f *stubFetcher) set(payload *Payload, err error) {
	f.mu.Lock()
	f.payload = payload
	f.err = err
	f.mu.Unlock()
}

func (f *stubFetcher) callCount() int32 {
	return atomic.LoadInt32(&f.calls)
}

func payloadWithFollowers(n int64) *Payload {
	return &Payload{
		PlatformStats: []map[string]interface{}{statsRow("instagram", n)},
		TopPosts: map[string][]map[string]interface{}{
			"instagram": {{"rank": int64(1), "url": "https://example.com/p/1"}},
		},
		Assets: map[string]string{"hero": "https://cdn.example.com/hero.jpg"},
	}
}

func TestLoader_GetCachesResult(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWithFollowers(100)}
	loader := NewLoader(fetcher, NewResolver(newStubStore()), 0)

	first := loader.Get(context.Background())
	second := loader.Get(context.Background())

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, fetcher.callCount())
	assert.EqualValues(t, 100, first.Stats.Followers)
}

func TestLoader_ConcurrentGetsCollapse(t *testing.T) {
	fetcher := &stubFetcher{
		payload: payloadWithFollowers(100),
		release: make(chan struct{}),
	}
	loader := NewLoader(fetcher, NewResolver(newStubStore()), 0)

	const n = 8
	results := make([]*Dashboard, n)
	var started, done sync.WaitGroup
	started.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			started.Done()
			results[i] = loader.Get(context.Background())
			done.Done()
		}(i)
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(fetcher.release)
	done.Wait()

	assert.EqualValues(t, 1, fetcher.callCount())
	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestLoader_InvalidateForcesRefetch(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWithFollowers(100)}
	loader := NewLoader(fetcher, NewResolver(newStubStore()), 0)

	before := loader.Get(context.Background())
	require.EqualValues(t, 100, before.Stats.Followers)

	fetcher.set(payloadWithFollowers(250), nil)
	assert.EqualValues(t, 100, loader.Get(context.Background()).Stats.Followers)

	loader.Invalidate()
	after := loader.Get(context.Background())
	assert.EqualValues(t, 250, after.Stats.Followers)
	assert.EqualValues(t, 2, fetcher.callCount())
}

func TestLoader_TTLExpiryRefetches(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWithFollowers(100)}
	loader := NewLoader(fetcher, NewResolver(newStubStore()), time.Millisecond)

	loader.Get(context.Background())
	time.Sleep(5 * time.Millisecond)
	loader.Get(context.Background())

	assert.EqualValues(t, 2, fetcher.callCount())
}

func TestLoader_EmptyEntityFallsBackIndividually(t *testing.T) {
	payload := payloadWithFollowers(100)
	payload.TopPosts = map[string][]map[string]interface{}{"instagram": {}}

	store := newStubStore()
	store.posts = []map[string]interface{}{
		{"rank": int64(1), "url": "https://example.com/p/1"},
		{"rank": int64(2), "url": "https://example.com/p/2"},
	}

	fetcher := &stubFetcher{payload: payload}
	loader := NewLoader(fetcher, NewResolver(store), 0)

	d := loader.Get(context.Background())

	assert.Len(t, d.Posts, 2)
	assert.EqualValues(t, 100, d.Stats.Followers)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", d.Assets["hero"])

	// Only the empty entity is re-read.
	assert.Equal(t, 1, store.callCount("posts"))
	assert.Equal(t, 0, store.callCount("stats_by_platform"))
	assert.Equal(t, 0, store.callCount("assets"))
}

func TestLoader_FetchErrorFallsBackToStore(t *testing.T) {
	store := newStubStore()
	store.stats = []map[string]interface{}{statsRow("instagram", 500)}
	store.assets = map[string]string{"hero_title": "Hi"}

	fetcher := &stubFetcher{err: errors.New("upstream down")}
	loader := NewLoader(fetcher, NewResolver(store), 0)

	d := loader.Get(context.Background())
	require.NotNil(t, d)

	assert.EqualValues(t, 500, d.Stats.Followers)
	assert.Equal(t, "Hi", d.Assets["hero_title"])
	assert.Nil(t, d.Audience)
	assert.Empty(t, d.Posts)
}

func TestLoader_FetchErrorKeepsStaleResult(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWithFollowers(100)}
	loader := NewLoader(fetcher, NewResolver(newStubStore()), time.Millisecond)

	first := loader.Get(context.Background())
	time.Sleep(5 * time.Millisecond)

	fetcher.set(nil, errors.New("upstream down"))
	second := loader.Get(context.Background())

	// The stale view outlives the failed refresh and stays expired, so
	// the Get after that retries upstream.
	assert.Same(t, first, second)
	loader.Get(context.Background())
	assert.EqualValues(t, 3, fetcher.callCount())
}

func TestLoader_EverythingDownStillRenders(t *testing.T) {
	store := newStubStore()
	down := errors.New("connection refused")
	store.statsErr = down
	store.audienceErr = down
	store.postsErr = down
	store.assetsErr = down

	fetcher := &stubFetcher{err: errors.New("upstream down")}
	loader := NewLoader(fetcher, NewResolver(store), 0)

	d := loader.Get(context.Background())
	require.NotNil(t, d)

	assert.Zero(t, d.Stats.Followers)
	assert.Nil(t, d.Audience)
	assert.NotNil(t, d.Posts)
	assert.Empty(t, d.Posts)
	assert.NotNil(t, d.Assets)
}
