package secret

import (
	"context"
	"time"

	expirablelru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 5 * time.Minute
)

// Cache fronts a Provider with an expiring LRU. Get fills the cache on
// miss; GetCached answers from memory alone.
type Cache struct {
	backend Provider
	lru     *expirablelru.LRU[string, string]
}

func NewCache(backend Provider, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		backend: backend,
		lru:     expirablelru.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}

	v, err := c.backend.Get(ctx, key)
	if err != nil {
		return "", err
	}

	c.lru.Add(key, v)
	return v, nil
}

// GetCached is the synchronous path: it never touches the backend. A miss
// means the key was never fetched through Get, or its entry expired.
func (c *Cache) GetCached(key string) (string, bool) {
	return c.lru.Get(key)
}

// Forget drops the cached entry so the next Get refetches.
func (c *Cache) Forget(key string) {
	c.lru.Remove(key)
}
