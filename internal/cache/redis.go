package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/embermedia/creatorsite/pkg/config"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// Cache wraps Redis client
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// namespaceKey prefixes keys with the application namespace
func (c *Cache) namespaceKey(key string) string {
	return "creatorsite:" + key
}

// HashKey builds a short deterministic cache key from its parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a value from cache
func (c *Cache) Get(key string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrCacheDisabled
	}
	return c.client.Get(c.ctx, c.namespaceKey(key)).Result()
}

// Set sets a value in cache with TTL
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Set(c.ctx, c.namespaceKey(key), value, ttl).Err()
}

// GetJSON retrieves a value from cache and unmarshals it into dest
func (c *Cache) GetJSON(key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	raw, err := c.client.Get(c.ctx, c.namespaceKey(key)).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// SetJSON marshals value and stores it in cache with TTL
func (c *Cache) SetJSON(key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.client.Set(c.ctx, c.namespaceKey(key), raw, ttl).Err()
}

// Delete removes a key from cache
func (c *Cache) Delete(key string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(c.ctx, c.namespaceKey(key)).Err()
}

// Exists checks if a key exists
func (c *Cache) Exists(key string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrCacheDisabled
	}
	count, err := c.client.Exists(c.ctx, c.namespaceKey(key)).Result()
	return count > 0, err
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

var (
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = fmt.Errorf("cache is disabled")
)
