package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

// RedisStatsCache wraps a StatsRepository with a Redis-backed TTL cache.
// Dashboard counters tolerate short staleness, so reads hit Redis first and
// fall back to the underlying aggregation on a miss.
type RedisStatsCache struct {
	base   repositories.StatsRepository
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache connects to Redis at url and caches stats lookups for
// the provided TTL.
func NewRedisStatsCache(url string, base repositories.StatsRepository, ttl time.Duration) (*RedisStatsCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisStatsCache{
		base:   base,
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

// ChannelStats returns cached counters when fresh, otherwise recomputes and
// stores the result. Cache failures degrade to the underlying repository
// rather than failing the request.
func (c *RedisStatsCache) ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	key := "stats:channel:" + channelID

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var stats models.ChannelStats
		if err := json.Unmarshal(payload, &stats); err == nil {
			return stats, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logging.FromContext(ctx).Warn("stats cache read failed", "key", key, "error", err)
	}

	stats, err := c.base.ChannelStats(ctx, channelID)
	if err != nil {
		return models.ChannelStats{}, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logging.FromContext(ctx).Warn("stats cache write failed", "key", key, "error", err)
		}
	}

	return stats, nil
}

// Close releases the Redis connection.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

var _ repositories.StatsRepository = (*RedisStatsCache)(nil)
