// Package cache stores computed reports in Redis. A nil *Client is valid and
// behaves as a cache that always misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or the cache is disabled.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "seodash:report:"

// Client holds the Redis client.
type Client struct {
	Redis *redis.Client
	ttl   time.Duration
}

// NewClient connects to redisURL and checks the connection.
func NewClient(redisURL string, ttl time.Duration) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed connecting to redis: %w", err)
	}

	return New(client, ttl), nil
}

// New wraps an existing Redis client.
func New(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{Redis: rdb, ttl: ttl}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.Redis.Close()
}

// ReportKey is the cache key of a report kind for a site.
func ReportKey(site, kind string) string {
	return keyPrefix + site + ":" + kind
}

// GetJSON decodes the value under key into dst.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) error {
	if c == nil {
		return ErrCacheMiss
	}
	data, err := c.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v under key with the client TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.Redis.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops every cached report for site.
func (c *Client) Invalidate(ctx context.Context, site string) error {
	if c == nil {
		return nil
	}
	return c.deletePattern(ctx, keyPrefix+site+":*")
}

// InvalidateAll drops every cached report.
func (c *Client) InvalidateAll(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.deletePattern(ctx, keyPrefix+"*")
}

// deletePattern uses SCAN rather than KEYS so large keyspaces don't block Redis.
func (c *Client) deletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	var deleted int

	for {
		keys, next, err := c.Redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	slog.Debug("cache invalidated", "pattern", pattern, "keys", deleted)
	return nil
}

// Remember returns the cached value under key, computing and storing it on a
// miss. Cache failures are logged and fall through to compute.
func Remember[T any](ctx context.Context, c *Client, key string, compute func(context.Context) (T, error)) (T, error) {
	var v T
	err := c.GetJSON(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	v, err = compute(ctx)
	if err != nil {
		return v, err
	}
	if err := c.SetJSON(ctx, key, v); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}
