package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/embermedia/creatorsite/internal/models"
	"github.com/embermedia/creatorsite/pkg/logging"
	"github.com/embermedia/creatorsite/pkg/telemetry"
)

const flightKey = "dashboard"

// Loader caches the last successfully resolved Dashboard for the
// process lifetime. Concurrent Get calls during a resolve collapse into
// one upstream fetch; Invalidate discards the cached view so the next
// Get refetches.
type Loader struct {
	fetcher  Fetcher
	resolver *Resolver
	ttl      time.Duration
	logger   *zap.Logger

	group singleflight.Group

	mu        sync.Mutex
	cached    *Dashboard
	fetchedAt time.Time
	gen       uint64
}

// NewLoader creates a new loader. ttl <= 0 disables time-based expiry;
// the cache is then dropped only by Invalidate.
func NewLoader(fetcher Fetcher, resolver *Resolver, ttl time.Duration) *Loader {
	return &Loader{
		fetcher:  fetcher,
		resolver: resolver,
		ttl:      ttl,
		logger:   logging.GetLogger().With(zap.String("component", "dashboard-loader")),
	}
}

// Get returns the cached dashboard when fresh, otherwise resolves a new
// one. Resolution never fails: entities degrade to their empty values.
func (l *Loader) Get(ctx context.Context) *Dashboard {
	l.mu.Lock()
	if l.cached != nil && l.fresh() {
		d := l.cached
		l.mu.Unlock()
		return d
	}
	l.mu.Unlock()

	v, _, _ := l.group.Do(flightKey, func() (interface{}, error) {
		return l.resolve(ctx), nil
	})
	return v.(*Dashboard)
}

// Invalidate unconditionally discards the cached dashboard. Reads
// already in flight keep their result; reads starting after this call
// refetch.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.gen++
	l.mu.Unlock()
	l.group.Forget(flightKey)
}

// fresh reports cache freshness; callers hold l.mu
func (l *Loader) fresh() bool {
	return l.ttl <= 0 || time.Since(l.fetchedAt) < l.ttl
}

func (l *Loader) resolve(ctx context.Context) *Dashboard {
	ctx, span := telemetry.StartSpan(ctx, "dashboard.resolve")
	defer span.End()

	l.mu.Lock()
	gen := l.gen
	stale := l.cached
	l.mu.Unlock()

	payload, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.logger.Warn("aggregation fetch failed, falling back", zap.Error(err))
		if stale != nil {
			// The previous payload stays valid until a later fetch
			// succeeds; returning it without touching fetchedAt makes
			// the next Get retry.
			return stale
		}
		d := l.build(
			l.resolver.Stats(ctx),
			l.resolver.Audience(ctx),
			l.resolver.Posts(ctx),
			l.resolver.Assets(ctx),
		)
		l.store(d, gen)
		return d
	}

	// Aggregation succeeded; any entity whose slice came back empty is
	// re-read directly, the rest stay as delivered.
	statsRows := payload.PlatformStats
	if len(statsRows) == 0 {
		statsRows = l.resolver.Stats(ctx)
	}
	audienceRow := payload.Audience
	if len(audienceRow) == 0 {
		audienceRow = l.resolver.Audience(ctx)
	}
	postRows := payload.TopPosts[models.DefaultPlatform]
	if len(postRows) == 0 {
		postRows = l.resolver.Posts(ctx)
	}
	assets := payload.Assets
	if len(assets) == 0 {
		assets = l.resolver.Assets(ctx)
	}

	d := l.build(statsRows, audienceRow, postRows, assets)
	l.store(d, gen)
	return d
}

func (l *Loader) build(
	statsRows []map[string]interface{},
	audienceRow map[string]interface{},
	postRows []map[string]interface{},
	assets map[string]string,
) *Dashboard {
	return &Dashboard{
		Stats:    NormalizeStats(statsRows, models.DefaultPlatform),
		Audience: NormalizeAudience(audienceRow),
		Posts:    NormalizePosts(postRows),
		Assets:   NormalizeAssets(assets),
	}
}

// store caches a resolved dashboard unless an Invalidate arrived while
// the resolve was in flight
func (l *Loader) store(d *Dashboard, gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen != gen {
		return
	}
	l.cached = d
	l.fetchedAt = time.Now()
}
