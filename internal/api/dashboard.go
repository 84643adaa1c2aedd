package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/embermedia/creatorsite/internal/cache"
	"github.com/embermedia/creatorsite/internal/dashboard"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// payloadCacheKey is the redis key the marshaled aggregation payload
// lives under; admin writes delete it
const payloadCacheKey = "dashboard:payload"

// DashboardAPI serves the public read paths
type DashboardAPI struct {
	service  *dashboard.Service
	loader   *dashboard.Loader
	cache    *cache.Cache
	redisTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardAPI creates the public dashboard API
func NewDashboardAPI(service *dashboard.Service, loader *dashboard.Loader, redisCache *cache.Cache, redisTTL time.Duration) *DashboardAPI {
	return &DashboardAPI{
		service:  service,
		loader:   loader,
		cache:    redisCache,
		redisTTL: redisTTL,
		logger:   logging.GetLogger().With(zap.String("component", "dashboard-api")),
	}
}

// GetAggregate handles GET /functions/public-dashboard. The response
// envelope is {success, data|error}; any backing query failure turns
// the whole request into a single tagged error, never a partial body.
func (a *DashboardAPI) GetAggregate(c *gin.Context) {
	if a.cache != nil {
		var cached dashboard.Payload
		if err := a.cache.GetJSON(payloadCacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached})
			return
		}
	}

	payload, err := a.service.Aggregate(c.Request.Context())
	if err != nil {
		a.logger.Error("aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if a.cache != nil {
		if err := a.cache.SetJSON(payloadCacheKey, payload, a.redisTTL); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("failed to cache payload", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
}

// viewResponse decorates the resolved dashboard with the display
// strings the site renders for the headline counters
type viewResponse struct {
	*dashboard.Dashboard
	Display struct {
		Followers    string `json:"followers"`
		MonthlyViews string `json:"monthly_views"`
	} `json:"display"`
}

// GetView handles GET /api/dashboard: the cached, fallback-resolved,
// normalized view. This path never fails; entities degrade to empty
// values and the UI shows its empty states.
func (a *DashboardAPI) GetView(c *gin.Context) {
	d := a.loader.Get(c.Request.Context())

	resp := viewResponse{Dashboard: d}
	resp.Display.Followers = dashboard.FormatCount(d.Stats.Followers)
	resp.Display.MonthlyViews = dashboard.FormatCount(d.Stats.MonthlyViews)

	c.JSON(http.StatusOK, resp)
}
