package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embermedia/creatorsite/internal/dashboard"
)

// fakeStore is an in-memory dashboard.Store for handler tests
type fakeStore struct {
	stats    []map[string]interface{}
	audience map[string]interface{}
	posts    []map[string]interface{}
	assets   map[string]string
	err      error
}

func (s *fakeStore) ListStats(ctx context.Context) ([]map[string]interface{}, error) {
	return s.stats, s.err
}

func (s *fakeStore) ListStatsByPlatform(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	return s.stats, s.err
}

func (s *fakeStore) GetAudience(ctx context.Context, platform string) (map[string]interface{}, error) {
	return s.audience, s.err
}

func (s *fakeStore) ListTopPosts(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	return s.posts, s.err
}

func (s *fakeStore) ListAssets(ctx context.Context) (map[string]string, error) {
	return s.assets, s.err
}

func newTestDashboardAPI(store dashboard.Store) *DashboardAPI {
	service := dashboard.NewService(store)
	loader := dashboard.NewLoader(service, dashboard.NewResolver(store), 0)
	return NewDashboardAPI(service, loader, nil, 0)
}

func TestDashboardAPI_GetAggregate(t *testing.T) {
	store := &fakeStore{
		stats:  []map[string]interface{}{{"platform": "instagram", "followers": int64(12500)}},
		posts:  []map[string]interface{}{{"rank": int64(1), "url": "https://example.com/p/1"}},
		assets: map[string]string{"hero": "https://cdn.example.com/hero.jpg"},
	}

	engine := gin.New()
	engine.GET("/functions/public-dashboard", newTestDashboardAPI(store).GetAggregate)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/functions/public-dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    *dashboard.Payload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.Len(t, body.Data.PlatformStats, 1)
	assert.Len(t, body.Data.TopPosts["instagram"], 1)
}

func TestDashboardAPI_GetAggregateFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}

	engine := gin.New()
	engine.GET("/functions/public-dashboard", newTestDashboardAPI(store).GetAggregate)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/functions/public-dashboard", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "stats query failed")
}

func TestDashboardAPI_GetView(t *testing.T) {
	store := &fakeStore{
		stats: []map[string]interface{}{{
			"platform":      "instagram",
			"followers":     int64(12500),
			"monthly_views": int64(2_300_000),
		}},
	}

	engine := gin.New()
	engine.GET("/api/dashboard", newTestDashboardAPI(store).GetView)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stats   dashboard.Stats `json:"stats"`
		Display struct {
			Followers    string `json:"followers"`
			MonthlyViews string `json:"monthly_views"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 12500, body.Stats.Followers)
	assert.Equal(t, "13K", body.Display.Followers)
	assert.Equal(t, "2.3M", body.Display.MonthlyViews)
}

func TestDashboardAPI_GetViewNeverFails(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}

	engine := gin.New()
	engine.GET("/api/dashboard", newTestDashboardAPI(store).GetView)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display"`)
}
