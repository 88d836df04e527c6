package cache

import (
	"context"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLegCache stores travel seconds per leg key in Redis with a TTL.
type RedisLegCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.LegDurationCache = (*RedisLegCache)(nil)

func NewRedisLegCache(rdb redis.UniversalClient, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{rdb: rdb, prefix: "leg:", ttl: ttl}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// Fetch cached durations for the given leg keys.
func (c *RedisLegCache) GetMany(ctx context.Context, keys []string) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "leg.cache.GetMany")(&err)

	if c.rdb == nil {
		return nil, errors.New("leg cache: redis client is nil")
	}

	if len(keys) == 0 {
		return map[string]float64{}, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}

	vals, err := c.rdb.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("get leg cache: mget: %w", err)
	}

	out := make(map[string]float64, len(keys))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		seconds, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("get leg cache: parse %q: %w", keys[i], err)
		}
		out[keys[i]] = seconds
	}

	return out, nil
}

// Store many leg durations in one pipeline.
func (c *RedisLegCache) PutMany(ctx context.Context, durations map[string]float64) error {
	if c.rdb == nil {
		return errors.New("leg cache: redis client is nil")
	}

	if len(durations) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for k, seconds := range durations {
		if k == "" {
			return errors.New("insert leg cache: empty leg key")
		}
		pipe.Set(ctx, c.prefix+k, strconv.FormatFloat(seconds, 'f', -1, 64), c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert leg cache: exec pipeline: %w", err)
	}

	return nil
}
