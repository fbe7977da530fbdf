package services

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mufattish/backend/internal/logger"
)

// IndicatorCache keeps computed dashboards keyed by record id so repeated
// dashboard views do not re-run the indicator engine. A nil cache is valid
// and turns every operation into a no-op, which is how deployments without
// Redis run.
type IndicatorCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewIndicatorCache connects to REDIS_ADDR. When the variable is unset it
// returns nil without error; callers treat that as "cache disabled".
func NewIndicatorCache(log *logger.Logger, ttl time.Duration) (*IndicatorCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &IndicatorCache{
		log: log.With("service", "IndicatorCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// Get unmarshals a cached dashboard into dest. A miss, a decode failure or a
// disabled cache all report false.
func (c *IndicatorCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *IndicatorCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to marshal cache value", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}

func (c *IndicatorCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Failed to invalidate cache entries", "keys", keys, "error", err)
	}
}
