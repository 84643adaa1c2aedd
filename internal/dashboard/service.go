package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/internal/models"
	"github.com/embermedia/creatorsite/pkg/logging"
	"github.com/embermedia/creatorsite/pkg/telemetry"
)

// Service aggregates the four record collections into one payload
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new aggregation service
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logging.GetLogger().With(zap.String("component", "dashboard-service")),
	}
}

// Aggregate performs the four backing reads and composes the payload.
// Composition is fail-fast: the first read error aborts the whole
// operation and is returned as a StageError; no partial payload is
// ever produced.
func (s *Service) Aggregate(ctx context.Context) (*Payload, error) {
	ctx, span := telemetry.StartSpan(ctx, "dashboard.aggregate")
	defer span.End()

	stats, err := s.store.ListStats(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageStats, Err: err}
	}

	audience, err := s.store.GetAudience(ctx, models.DefaultPlatform)
	if err != nil {
		return nil, &StageError{Stage: StageAudience, Err: err}
	}

	posts, err := s.store.ListTopPosts(ctx, models.DefaultPlatform)
	if err != nil {
		return nil, &StageError{Stage: StagePosts, Err: err}
	}

	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageAssets, Err: err}
	}

	if stats == nil {
		stats = []map[string]interface{}{}
	}
	if posts == nil {
		posts = []map[string]interface{}{}
	}
	if assets == nil {
		assets = map[string]string{}
	}

	return &Payload{
		PlatformStats: stats,
		Audience:      audience,
		TopPosts: map[string][]map[string]interface{}{
			models.DefaultPlatform: posts,
		},
		Assets: assets,
	}, nil
}

// Fetch implements Fetcher by aggregating in-process
func (s *Service) Fetch(ctx context.Context) (*Payload, error) {
	return s.Aggregate(ctx)
}
