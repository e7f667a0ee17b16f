package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/cache"
	"inventory-tracker/internal/events"
)

type memClient struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newMemClient() *memClient {
	return &memClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memClient) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memClient) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (m *memClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type stats struct {
	Total int    `json:"total"`
	Value string `json:"value"`
}

func TestJSONCache(t *testing.T) {
	ctx := context.Background()
	rdb := newMemClient()
	c := cache.NewJSONCache[stats](rdb, cache.KeyDashboardStats, 30*time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, stats{Total: 4, Value: "10.00"}))
	assert.Equal(t, 30*time.Second, rdb.ttl[cache.KeyDashboardStats])

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stats{Total: 4, Value: "10.00"}, got)

	t.Run("Rejected stock does not invalidate", func(t *testing.T) {
		require.NoError(t, c.Publish(ctx, events.New(events.StockRejected, uuid.New(), "", 0)))
		_, ok, _ := c.Get(ctx)
		assert.True(t, ok)
	})

	t.Run("Stock change invalidates", func(t *testing.T) {
		require.NoError(t, c.Publish(ctx, events.New(events.IssuanceCreated, uuid.New(), "", 0)))
		_, ok, _ := c.Get(ctx)
		assert.False(t, ok)
	})
}

func TestJSONCacheError(t *testing.T) {
	rdb := newMemClient()
	rdb.err = errors.New("connection refused")
	c := cache.NewJSONCache[stats](rdb, "k", time.Second)

	_, ok, err := c.Get(context.Background())
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")
}
