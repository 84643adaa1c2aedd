package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/internal/models"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// Resolver reads each entity directly from the store, used when the
// aggregation fetch fails or an entity's slice of the payload is empty.
// A failed direct read resolves silently to the entity's empty value;
// the site always renders something.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

// NewResolver creates a new fallback resolver
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		logger: logging.GetLogger().With(zap.String("component", "dashboard-fallback")),
	}
}

// Stats reads the stats rows for the fixed platform
func (r *Resolver) Stats(ctx context.Context) []map[string]interface{} {
	rows, err := r.store.ListStatsByPlatform(ctx, models.DefaultPlatform)
	if err != nil {
		r.logger.Warn("stats fallback read failed", zap.Error(err))
		return nil
	}
	return rows
}

// Audience reads the audience row for the fixed platform
func (r *Resolver) Audience(ctx context.Context) map[string]interface{} {
	row, err := r.store.GetAudience(ctx, models.DefaultPlatform)
	if err != nil {
		r.logger.Warn("audience fallback read failed", zap.Error(err))
		return nil
	}
	return row
}

// Posts reads the ranked posts for the fixed platform, rank ascending
func (r *Resolver) Posts(ctx context.Context) []map[string]interface{} {
	rows, err := r.store.ListTopPosts(ctx, models.DefaultPlatform)
	if err != nil {
		r.logger.Warn("posts fallback read failed", zap.Error(err))
		return nil
	}
	return rows
}

// Assets reads the brand asset map
func (r *Resolver) Assets(ctx context.Context) map[string]string {
	assets, err := r.store.ListAssets(ctx)
	if err != nil {
		r.logger.Warn("assets fallback read failed", zap.Error(err))
		return nil
	}
	return assets
}
