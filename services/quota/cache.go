package quota

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RequestCache is a time-windowed result cache for one expensive API. It
// keeps a process-local tier (go-cache) in front of an optional Redis tier
// so identical requests survive restarts without a billed call. Storage
// failures are logged and treated as misses; a cold cache is always safe.
type RequestCache struct {
	name   string
	ttl    time.Duration
	bucket time.Duration
	prefix string

	mem    *gocache.Cache
	client *redis.Client
	logger *zap.Logger

	now func() time.Time
}

// NewRequestCache creates a cache named after the API it shields. client may
// be nil for a purely in-memory cache. bucket is the coarse time window
// folded into every key so identical requests within the same bucket share
// an entry and naturally expire into a new one.
func NewRequestCache(name string, ttl, bucket time.Duration, client *redis.Client, prefix string, logger *zap.Logger) *RequestCache {
	return &RequestCache{
		name:   name,
		ttl:    ttl,
		bucket: bucket,
		prefix: prefix,
		mem:    gocache.New(ttl, 2*ttl),
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Key derives a deterministic cache key from the request's semantic
// parameters plus the current time bucket.
func (c *RequestCache) Key(parts ...string) string {
	joined := strings.Join(parts, "|")
	if c.bucket > 0 {
		joined = fmt.Sprintf("%s|b%d", joined, c.now().Unix()/int64(c.bucket.Seconds()))
	}
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, or a miss when absent or stale.
func (c *RequestCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := c.mem.Get(key); ok {
		return v.([]byte), true
	}
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss",
			zap.String("cache", c.name), zap.Error(err))
		return nil, false
	}
	// Refill the memory tier so repeat hits skip Redis.
	c.mem.Set(key, data, gocache.DefaultExpiration)
	return data, true
}

// Set stores value under key with the current timestamp, unconditionally
// overwriting any prior entry.
func (c *RequestCache) Set(ctx context.Context, key string, value []byte) {
	c.mem.Set(key, value, gocache.DefaultExpiration)
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed",
			zap.String("cache", c.name), zap.Error(err))
	}
}

// Clear drops every entry in both tiers.
func (c *RequestCache) Clear(ctx context.Context) error {
	c.mem.Flush()
	if c.client == nil {
		return nil
	}
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to list %s cache keys: %w", c.name, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear %s cache: %w", c.name, err)
	}
	return nil
}
