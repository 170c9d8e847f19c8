// internal/connectors/cache.go
package connectors

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"fraudscan-workers/internal/common/database"
	"fraudscan-workers/internal/common/logger"
)

// responseCache is a cache-aside layer over Redis for raw source responses.
// Cache failures are logged and otherwise invisible: a broken cache degrades
// to direct fetches, never to a failed analysis.
type responseCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func newResponseCache(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *responseCache {
	return &responseCache{redis: redis, ttl: ttl, logger: log}
}

// lookup fills v from the cache and reports whether it was found.
func (c *responseCache) lookup(ctx context.Context, key string, v interface{}) bool {
	if c.redis == nil {
		return false
	}
	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		if err != goredis.Nil {
			c.logger.WithError(err).Debug("Source cache read failed", map[string]interface{}{"key": key})
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		c.logger.WithError(err).Warn("Dropping undecodable cache entry", map[string]interface{}{"key": key})
		return false
	}
	return true
}

// store writes v to the cache with the configured TTL.
func (c *responseCache) store(ctx context.Context, key string, v interface{}) {
	if c.redis == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
		c.logger.WithError(err).Debug("Source cache write failed", map[string]interface{}{"key": key})
	}
}
