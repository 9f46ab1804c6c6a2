// Package cache provides the redis-backed statistics cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bitbank/ledger/internal/application/usecase/statistics"
)

const keyPrefix = "ledger:stats"

// StatisticsCache implements statistics.StatisticsCache on redis.
type StatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ statistics.StatisticsCache = (*StatisticsCache)(nil)

// NewStatisticsCache creates a new StatisticsCache. Entries expire after ttl.
func NewStatisticsCache(client *redis.Client, ttl time.Duration) *StatisticsCache {
	return &StatisticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the redis key of a cached month, e.g. ledger:stats:7:income:2024-04.
func Key(key statistics.CacheKey) string {
	return fmt.Sprintf("%s:%d:%s:%04d-%02d", keyPrefix, key.MemberID, key.Kind, key.Year, key.Month)
}

// Get returns the cached statistics, or false on a miss.
func (c *StatisticsCache) Get(ctx context.Context, key statistics.CacheKey) (*statistics.Statistics, bool, error) {
	raw, err := c.client.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var stats statistics.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached statistics: %w", err)
	}
	return &stats, true, nil
}

// Set stores the statistics with the configured TTL.
func (c *StatisticsCache) Set(ctx context.Context, key statistics.CacheKey, stats *statistics.Statistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, Key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops the cached month.
func (c *StatisticsCache) Invalidate(ctx context.Context, key statistics.CacheKey) error {
	if err := c.client.Del(ctx, Key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
