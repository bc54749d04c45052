package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryCache is a process-local cache. Values are stored JSON-encoded so
// callers never share mutable state with the cache.
type MemoryCache struct {
	store sync.Map
	done  chan struct{}
	once  sync.Once
}

type cacheItem struct {
	value      []byte
	expiration time.Time
}

func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{done: make(chan struct{})}
	go c.cleanup(time.Minute)
	return c
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store.Store(key, &cacheItem{value: data, expiration: time.Now().Add(ttl)})
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	item, ok := c.store.Load(key)
	if !ok {
		return ErrCacheMiss
	}
	ci := item.(*cacheItem)
	if time.Now().After(ci.expiration) {
		c.store.Delete(key)
		return ErrCacheMiss
	}
	return json.Unmarshal(ci.value, dest)
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.store.Delete(key)
	}
	return nil
}

func (c *MemoryCache) Health(context.Context) error { return nil }

// Len counts stored entries, expired ones included until the next sweep.
func (c *MemoryCache) Len() int {
	n := 0
	c.store.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.store.Range(func(key, value interface{}) bool {
				if now.After(value.(*cacheItem).expiration) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
