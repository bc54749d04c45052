package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sgp/internal/config"
	"sgp/pkg/logutils"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encodable values by key.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Health(ctx context.Context) error
	Close() error
}

// Key builds the cache key of one entity row.
func Key(entity string, id uint) string {
	return fmt.Sprintf("%s:%d", entity, id)
}

// New builds the cache selected by CACHE_DRIVER.
func New(cfg *config.Config) (Cache, error) {
	switch cfg.CacheDriver {
	case config.CacheNone:
		return Noop{}, nil
	case config.CacheMemory:
		return NewMemoryCache(), nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logutils.Log.WithFields(logutils.Fields{"addr": cfg.RedisAddr}).Info("Redis connected")
		return NewRedisCache(client), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.CacheDriver)
	}
}

// GetOrLoad returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never fail the lookup.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (*T, error)) (*T, error) {
	var cached T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logutils.Log.WithError(err).WithField("key", key).Warn("Cache read failed")
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logutils.Log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return value, nil
}

// Invalidate deletes keys, logging failures.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logutils.Log.WithError(err).WithField("keys", keys).Warn("Cache invalidation failed")
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) error {
	return ErrCacheMiss
}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (Noop) Delete(context.Context, ...string) error {
	return nil
}

func (Noop) Health(context.Context) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
