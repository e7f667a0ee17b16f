// Package cache keeps computed dashboard figures in Redis between stock
// changes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"inventory-tracker/internal/config"
	"inventory-tracker/internal/events"
)

const KeyDashboardStats = "inventory:dashboard:stats"

// Client is the subset of redis.Cmdable used here.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// JSONCache stores a single JSON value of type T under one key.
type JSONCache[T any] struct {
	rdb Client
	key string
	ttl time.Duration
}

func NewJSONCache[T any](rdb Client, key string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{rdb: rdb, key: key, ttl: ttl}
}

// Get reports false on a miss.
func (c *JSONCache[T]) Get(ctx context.Context) (T, bool, error) {
	var v T
	b, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("redis get %s: %w", c.key, err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return v, true, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.rdb.Set(ctx, c.key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

func (c *JSONCache[T]) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.key, err)
	}
	return nil
}

// Publish implements events.Publisher: any stock change drops the cached value.
func (c *JSONCache[T]) Publish(ctx context.Context, evt events.Event) error {
	if !evt.Type.AffectsStock() {
		return nil
	}
	return c.Invalidate(ctx)
}

// Noop never hits and never stores. It stands in when Redis is not configured.
type Noop[T any] struct{}

func (Noop[T]) Get(context.Context) (T, bool, error) {
	var v T
	return v, false, nil
}

func (Noop[T]) Set(context.Context, T) error { return nil }

func (Noop[T]) Invalidate(context.Context) error { return nil }
