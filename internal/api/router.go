package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/internal/auth"
	"github.com/embermedia/creatorsite/internal/cache"
	"github.com/embermedia/creatorsite/internal/dashboard"
	"github.com/embermedia/creatorsite/internal/db"
	"github.com/embermedia/creatorsite/internal/storage"
	"github.com/embermedia/creatorsite/pkg/config"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// Router sets up API routes
type Router struct {
	dashboard *DashboardAPI
	admin     *AdminAPI
	auth      *auth.Manager
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates a new API router and wires the full read/write
// stack: repositories, aggregation service, fallback resolver and the
// client-side loader
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) (*Router, error) {
	repo := db.NewRepository(database.DB)
	store := db.NewDashboardStore(repo)

	service := dashboard.NewService(store)
	resolver := dashboard.NewResolver(store)

	// The loader fetches through HTTP when an external aggregation
	// endpoint is configured, otherwise it aggregates in-process. The
	// direct-read fallback path is the same either way.
	var fetcher dashboard.Fetcher = service
	if cfg.Dashboard.EndpointURL != "" {
		fetcher = dashboard.NewClient(cfg.Dashboard.EndpointURL)
	}
	loader := dashboard.NewLoader(fetcher, resolver, cfg.Dashboard.CacheTTL)

	manager := auth.NewManager(&cfg.Auth)

	blobs, err := storage.NewDiskStore(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &Router{
		dashboard: NewDashboardAPI(service, loader, redisCache, cfg.Dashboard.RedisTTL),
		admin:     NewAdminAPI(repo, loader, redisCache, manager, blobs),
		auth:      manager,
		cfg:       cfg,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}, nil
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Public aggregation endpoint, CORS-open for the static site
	readCORS := CORS("GET, OPTIONS")
	engine.GET("/functions/public-dashboard", readCORS, r.dashboard.GetAggregate)
	engine.OPTIONS("/functions/public-dashboard", Preflight("GET, OPTIONS"))

	// Normalized view the site renders
	engine.GET("/api/dashboard", readCORS, r.dashboard.GetView)
	engine.OPTIONS("/api/dashboard", Preflight("GET, OPTIONS"))

	// Uploaded media
	if strings.HasPrefix(r.cfg.Storage.BaseURL, "/") {
		engine.Static(r.cfg.Storage.BaseURL, r.cfg.Storage.Root)
	}

	// Admin console API; writes sit behind a session
	adminCORS := CORS("GET, POST, PUT, OPTIONS")
	admin := engine.Group("/admin/api", adminCORS)
	admin.OPTIONS("/*path", Preflight("GET, POST, PUT, OPTIONS"))

	admin.POST("/login", r.admin.Login)

	gated := admin.Group("", RequireSession(r.auth))
	gated.POST("/logout", r.admin.Logout)
	gated.GET("/session", r.admin.GetSession)

	gated.GET("/stats", r.admin.GetStats)
	gated.PUT("/stats", r.admin.SaveStats)
	gated.GET("/audience", r.admin.GetAudience)
	gated.PUT("/audience", r.admin.SaveAudience)
	gated.GET("/posts", r.admin.GetPosts)
	gated.PUT("/posts", r.admin.SavePosts)
	gated.GET("/assets", r.admin.GetAssets)
	gated.PUT("/assets", r.admin.SaveAssets)

	gated.POST("/uploads", r.admin.Upload)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "creatorsite-api",
	})
}
