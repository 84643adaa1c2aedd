package dashboard

import (
	"context"
	"fmt"
)

// Aggregation stages, used to tag which backing query failed
const (
	StageStats    = "stats"
	StageAudience = "audience"
	StagePosts    = "posts"
	StageAssets   = "assets"
)

// StageError wraps a backing query error with the stage that produced it
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Stage, e.Err)
}

// Unwrap returns the upstream error
func (e *StageError) Unwrap() error {
	return e.Err
}

// Payload is the aggregated wire shape served by the public dashboard
// endpoint. Rows are kept as raw column maps; historical deployments
// renamed several columns, so shaping is deferred to the normalizer.
type Payload struct {
	PlatformStats []map[string]interface{}            `json:"platform_stats"`
	Audience      map[string]interface{}              `json:"audience"`
	TopPosts      map[string][]map[string]interface{} `json:"top_posts"`
	Assets        map[string]string                   `json:"assets"`
}

// Store reads the four record collections backing the dashboard.
// *db.DashboardStore is the production implementation.
type Store interface {
	ListStats(ctx context.Context) ([]map[string]interface{}, error)
	ListStatsByPlatform(ctx context.Context, platform string) ([]map[string]interface{}, error)
	GetAudience(ctx context.Context, platform string) (map[string]interface{}, error)
	ListTopPosts(ctx context.Context, platform string) ([]map[string]interface{}, error)
	ListAssets(ctx context.Context) (map[string]string, error)
}

// Fetcher produces one aggregated payload. Implementations are the
// in-process Service and the HTTP Client.
type Fetcher interface {
	Fetch(ctx context.Context) (*Payload, error)
}
