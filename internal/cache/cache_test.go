package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sgp/internal/cache"
	"sgp/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

func setupRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedisCache(client)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func caches(t *testing.T) map[string]cache.Cache {
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	rc, _ := setupRedis(t)
	return map[string]cache.Cache{"memory": mem, "redis": rc}
}

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			var got item
			assert.ErrorIs(t, c.Get(ctx, "usuario:1", &got), cache.ErrCacheMiss)

			require.NoError(t, c.Set(ctx, "usuario:1", item{ID: 1, Nome: "Ana"}, time.Minute))
			require.NoError(t, c.Get(ctx, "usuario:1", &got))
			assert.Equal(t, item{ID: 1, Nome: "Ana"}, got)

			require.NoError(t, c.Delete(ctx, "usuario:1", "usuario:2"))
			assert.ErrorIs(t, c.Get(ctx, "usuario:1", &got), cache.ErrCacheMiss)
			assert.NoError(t, c.Health(ctx))
		})
	}
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", item{ID: 1}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrCacheMiss)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	defer c.Close()

	original := &item{ID: 1, Nome: "Ana"}
	require.NoError(t, c.Set(ctx, "k", original, time.Minute))
	original.Nome = "changed"

	var got item
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "Ana", got.Nome)
}

func TestRedisCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t)

	require.NoError(t, c.Set(ctx, "k", item{ID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrCacheMiss)
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	defer c.Close()

	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{ID: 7, Nome: "SGP"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrLoad(ctx, c, cache.Key("projeto", 7), time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "SGP", got.Nome)
	}
	assert.Equal(t, 1, calls, "loader runs only on a miss")

	cache.Invalidate(ctx, c, cache.Key("projeto", 7))
	_, err := cache.GetOrLoad(ctx, c, cache.Key("projeto", 7), time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_PropagatesLoaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := cache.GetOrLoad(context.Background(), cache.Noop{}, "k", time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGetOrLoad_SurvivesRedisOutage(t *testing.T) {
	c, mr := setupRedis(t)
	mr.Close()

	got, err := cache.GetOrLoad(context.Background(), c, "k", time.Minute, func(context.Context) (*item, error) {
		return &item{ID: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"none", config.Config{CacheDriver: config.CacheNone}, false},
		{"memory", config.Config{CacheDriver: config.CacheMemory}, false},
		{"redis", config.Config{CacheDriver: config.CacheRedis, RedisAddr: mr.Addr()}, false},
		{"unknown", config.Config{CacheDriver: "memcached"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cache.New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, c.Close())
		})
	}
}
