package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/instadish/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-redis-url", "instadish:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", "instadish:")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewRedisCacheFromClient(client, "instadish:")
	defer c.Close()

	assert.Equal(t, "instadish:nutrition:egg", c.key("nutrition:egg"))
}

func TestRedisCache_OperationsFailWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client, "")
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	assert.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), domain.ErrCacheUnavailable)
	assert.ErrorIs(t, c.Delete(ctx, "k"), domain.ErrCacheUnavailable)

	_, err = c.Exists(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_SetRejectsUnencodableValues(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	defer c.Close()

	err := c.Set(context.Background(), "k", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode")
}

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+server.Addr()+"/0", "instadish:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, server
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	facts := &domain.NutritionFacts{FoodID: "1641", FoodName: "Chicken Breast", Calories: 165, Protein: 31.02, Sodium: 74}
	require.NoError(t, c.Set(ctx, "nutrition:chicken", facts, time.Hour))
	assert.True(t, server.Exists("instadish:nutrition:chicken"), "keys carry the prefix")

	value, err := c.Get(ctx, "nutrition:chicken")
	require.NoError(t, err)

	m, ok := value.(map[string]interface{})
	require.True(t, ok, "values come back as decoded JSON maps, got %T", value)
	assert.Equal(t, 165.0, m["calories"])
	assert.Equal(t, "Chicken Breast", m["foodName"])

	raw, err := json.Marshal(value)
	require.NoError(t, err)
	var decoded domain.NutritionFacts
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *facts, decoded)

	exists, err := c.Exists(ctx, "nutrition:chicken")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_MissExpiryAndDelete(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "short", "v", time.Minute))
	server.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "gone", 42, time.Minute))
	require.NoError(t, c.Delete(ctx, "gone"))
	exists, err := c.Exists(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, server := newTestRedisCache(t)

	require.NoError(t, server.Set("instadish:bad", "{not json"))
	_, err := c.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode cached value")
}
