package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sneezelog/internal/dto"
)

// NewRedisClient connects to Redis from a redis:// URL. An empty URL yields a
// nil client, which disables caching throughout.
func NewRedisClient(redisURL, password string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// StatsCache keeps per-user sneeze statistics in Redis so the dashboard does
// not rescan the user's rows on every view. The stats carry "today" counts,
// so entries are short-lived and invalidated on every mutation.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(userID uint) string {
	return fmt.Sprintf("sneezes:stats:user:%d", userID)
}

// Get returns the cached stats for a user, or false on miss or any failure.
func (c *StatsCache) Get(ctx context.Context, userID uint) (*dto.SneezeStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var stats dto.SneezeStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores the stats for a user; failures are swallowed, the cache is
// best-effort
func (c *StatsCache) Set(ctx context.Context, userID uint, stats *dto.SneezeStats) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsKey(userID), data, c.ttl)
}

// Invalidate drops the cached stats after any mutation of the user's sneezes.
func (c *StatsCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, statsKey(userID))
}
