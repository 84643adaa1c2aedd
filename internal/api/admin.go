package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/embermedia/creatorsite/internal/auth"
	"github.com/embermedia/creatorsite/internal/cache"
	"github.com/embermedia/creatorsite/internal/dashboard"
	"github.com/embermedia/creatorsite/internal/db"
	"github.com/embermedia/creatorsite/internal/models"
	"github.com/embermedia/creatorsite/internal/storage"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// AdminAPI serves the write paths behind the admin console.
//
// Every save follows the same two-step contract: upsert on the record's
// natural key, then invalidate the client cache. A failed upsert skips
// invalidation entirely so the stale cache stays intentionally valid.
type AdminAPI struct {
	stats    *db.StatsRepository
	audience *db.AudienceRepository
	posts    *db.PostRepository
	assets   *db.AssetRepository

	loader *dashboard.Loader
	cache  *cache.Cache
	auth   *auth.Manager
	blobs  storage.Store
	logger *zap.Logger
}

// NewAdminAPI creates the admin API
func NewAdminAPI(
	repo *db.Repository,
	loader *dashboard.Loader,
	redisCache *cache.Cache,
	manager *auth.Manager,
	blobs storage.Store,
) *AdminAPI {
	return &AdminAPI{
		stats:    db.NewStatsRepository(repo),
		audience: db.NewAudienceRepository(repo),
		posts:    db.NewPostRepository(repo),
		assets:   db.NewAssetRepository(repo),
		loader:   loader,
		cache:    redisCache,
		auth:     manager,
		blobs:    blobs,
		logger:   logging.GetLogger().With(zap.String("component", "admin-api")),
	}
}

// invalidate discards every cached copy of the aggregated payload so
// the next public read re-aggregates
func (a *AdminAPI) invalidate() {
	a.loader.Invalidate()
	if a.cache != nil {
		if err := a.cache.Delete(payloadCacheKey); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("failed to drop cached payload", zap.Error(err))
		}
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/api/login
func (a *AdminAPI) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, err := a.auth.SignIn(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			a.logger.Error("sign-in failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout handles POST /admin/api/logout. Sessions are stateless; the
// client discards the token.
func (a *AdminAPI) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// GetSession handles GET /admin/api/session
func (a *AdminAPI) GetSession(c *gin.Context) {
	session := SessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":      session.Email,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

type statsRequest struct {
	Followers    int64   `json:"followers"`
	MonthlyViews int64   `json:"monthly_views"`
	Engagement   float64 `json:"engagement"`

	FollowersDelta    *float64 `json:"followers_delta"`
	MonthlyViewsDelta *float64 `json:"monthly_views_delta"`
	EngagementDelta   *float64 `json:"engagement_delta"`
}

// GetStats handles GET /admin/api/stats
func (a *AdminAPI) GetStats(c *gin.Context) {
	stat, err := a.stats.GetByPlatform(c.Request.Context(), models.DefaultPlatform)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stat)
}

// SaveStats handles PUT /admin/api/stats
func (a *AdminAPI) SaveStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stat := &models.PlatformStat{
		Platform:          models.DefaultPlatform,
		Followers:         req.Followers,
		MonthlyViews:      req.MonthlyViews,
		Engagement:        req.Engagement,
		FollowersDelta:    nullFloat(req.FollowersDelta),
		MonthlyViewsDelta: nullFloat(req.MonthlyViewsDelta),
		EngagementDelta:   nullFloat(req.EngagementDelta),
		UpdatedAt:         time.Now().UTC(),
	}

	if err := a.stats.Upsert(c.Request.Context(), stat); err != nil {
		a.logger.Error("stats save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	a.invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type rankedEntryRequest struct {
	Label string   `json:"label"`
	Pct   *float64 `json:"pct"`
}

type audienceRequest struct {
	Gender    map[string]float64   `json:"gender"`
	AgeGroups map[string]float64   `json:"age_groups"`
	Countries []rankedEntryRequest `json:"countries"`
	Cities    []rankedEntryRequest `json:"cities"`
}

// GetAudience handles GET /admin/api/audience
func (a *AdminAPI) GetAudience(c *gin.Context) {
	audience, err := a.audience.GetByPlatform(c.Request.Context(), models.DefaultPlatform)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, audience)
}

// SaveAudience handles PUT /admin/api/audience. Percent sums are not
// validated; partial survey data is stored as submitted.
func (a *AdminAPI) SaveAudience(c *gin.Context) {
	var req audienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	countries, err := json.Marshal(req.Countries)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cities, err := json.Marshal(req.Cities)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audience := &models.PlatformAudience{
		Platform:  models.DefaultPlatform,
		Gender:    toJSONMap(req.Gender),
		AgeGroups: toJSONMap(req.AgeGroups),
		Countries: datatypes.JSON(countries),
		Cities:    datatypes.JSON(cities),
		UpdatedAt: time.Now().UTC(),
	}

	if err := a.audience.Upsert(c.Request.Context(), audience); err != nil {
		a.logger.Error("audience save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	a.invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type postRequest struct {
	Rank     int    `json:"rank" binding:"required,min=1,max=4"`
	URL      string `json:"url"`
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`

	Likes    *int64 `json:"likes"`
	Comments *int64 `json:"comments"`
	Shares   *int64 `json:"shares"`
	Saves    *int64 `json:"saves"`

	Reach       *int64 `json:"reach"`
	Impressions *int64 `json:"impressions"`
}

type postsRequest struct {
	Posts []postRequest `json:"posts" binding:"required,dive"`
}

// GetPosts handles GET /admin/api/posts
func (a *AdminAPI) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListByPlatform(c.Request.Context(), models.DefaultPlatform)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SavePosts handles PUT /admin/api/posts. Rows with a URL upsert their
// rank slot; rows with an empty URL clear it.
func (a *AdminAPI) SavePosts(c *gin.Context) {
	var req postsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	for _, row := range req.Posts {
		if row.URL == "" {
			if err := a.posts.DeleteByRank(ctx, models.DefaultPlatform, row.Rank); err != nil {
				a.logger.Error("post slot clear failed", zap.Int("rank", row.Rank), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			continue
		}

		post := &models.TopPost{
			Platform:    models.DefaultPlatform,
			Rank:        row.Rank,
			URL:         row.URL,
			Caption:     nullString(row.Caption),
			ImageURL:    nullString(row.ImageURL),
			Likes:       nullInt(row.Likes),
			Comments:    nullInt(row.Comments),
			Shares:      nullInt(row.Shares),
			Saves:       nullInt(row.Saves),
			Reach:       nullInt(row.Reach),
			Impressions: nullInt(row.Impressions),
			UpdatedAt:   now,
		}
		if err := a.posts.Upsert(ctx, post); err != nil {
			a.logger.Error("post save failed", zap.Int("rank", row.Rank), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	a.invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

type assetsRequest struct {
	Assets map[string]string `json:"assets" binding:"required"`
}

// GetAssets handles GET /admin/api/assets
func (a *AdminAPI) GetAssets(c *gin.Context) {
	assets, err := a.assets.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// SaveAssets handles PUT /admin/api/assets
func (a *AdminAPI) SaveAssets(c *gin.Context) {
	var req assetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for key := range req.Assets {
		if !models.ValidAssetKey(key) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown asset key: " + key})
			return
		}
	}

	ctx := c.Request.Context()
	for key, value := range req.Assets {
		if err := a.assets.Upsert(ctx, &models.BrandAsset{Key: key, Value: value}); err != nil {
			a.logger.Error("asset save failed", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	a.invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// uploadPrefixes maps the admin console's upload kinds to blob path
// prefixes
var uploadPrefixes = map[string]string{
	"hero":      storage.PrefixHero,
	"profile":   storage.PrefixProfile,
	"thumbnail": storage.PrefixThumbnails,
}

// Upload handles POST /admin/api/uploads. The stored blob's public URL
// comes back to the console, which saves it as an asset or post image;
// uploading alone does not invalidate the cache.
func (a *AdminAPI) Upload(c *gin.Context) {
	prefix, ok := uploadPrefixes[c.Query("kind")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of hero, profile, thumbnail"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	url, err := a.blobs.Save(c.Request.Context(), storage.GeneratePath(prefix, file.Filename), src)
	if err != nil {
		a.logger.Error("upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func toJSONMap(m map[string]float64) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
