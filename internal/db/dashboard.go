package db

import (
	"context"
)

// DashboardStore bundles the per-entity reads behind the dashboard.
// It satisfies the dashboard package's Store interface.
type DashboardStore struct {
	stats    *StatsRepository
	audience *AudienceRepository
	posts    *PostRepository
	assets   *AssetRepository
}

// NewDashboardStore creates a dashboard store over one repository
func NewDashboardStore(repo *Repository) *DashboardStore {
	return &DashboardStore{
		stats:    NewStatsRepository(repo),
		audience: NewAudienceRepository(repo),
		posts:    NewPostRepository(repo),
		assets:   NewAssetRepository(repo),
	}
}

// ListStats returns every stats row as raw column maps
func (s *DashboardStore) ListStats(ctx context.Context) ([]map[string]interface{}, error) {
	return s.stats.ListRaw(ctx)
}

// ListStatsByPlatform returns the stats rows for one platform
func (s *DashboardStore) ListStatsByPlatform(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	return s.stats.ListRawByPlatform(ctx, platform)
}

// GetAudience returns the audience row for one platform, nil if absent
func (s *DashboardStore) GetAudience(ctx context.Context, platform string) (map[string]interface{}, error) {
	return s.audience.GetRaw(ctx, platform)
}

// ListTopPosts returns the ranked posts for one platform, rank ascending
func (s *DashboardStore) ListTopPosts(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	return s.posts.ListRaw(ctx, platform)
}

// ListAssets returns the brand asset map
func (s *DashboardStore) ListAssets(ctx context.Context) (map[string]string, error) {
	return s.assets.List(ctx)
}
