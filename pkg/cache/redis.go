package cache

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by a shared Redis instance, for setups where
// multiple invocations (e.g. CI runners) share one cache tier instead of
// each paying for a cold FileCache. The CLI never opens one.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache opens a RedisCache against addr (host:port), namespacing
// every key under prefix so one Redis instance can host caches for several
// workspaces without collision.
func NewRedisCache(addr, prefix string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (c *RedisCache) redisKey(key CacheKey) string {
	return c.prefix + hex.EncodeToString(key[:])
}

// PutBytes stores data under key with no expiration; cache entries are
// content-addressed and never go stale on their own, so eviction is left to
// Redis's own memory policy or an explicit Delete/clean.
func (c *RedisCache) PutBytes(ctx context.Context, key CacheKey, data []byte) error {
	return c.client.Set(ctx, c.redisKey(key), data, 0).Err()
}

// GetBytes retrieves the bytes stored under key.
func (c *RedisCache) GetBytes(ctx context.Context, key CacheKey) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put encodes v and stores it via PutBytes.
func (c *RedisCache) Put(ctx context.Context, key CacheKey, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return c.PutBytes(ctx, key, data)
}

// Get retrieves and decodes the value stored under key into v.
func (c *RedisCache) Get(ctx context.Context, key CacheKey, v any) (bool, error) {
	data, ok, err := c.GetBytes(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := decode(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Require is Get, but a miss is reported as ErrMissingRequiredValue.
func (c *RedisCache) Require(ctx context.Context, key CacheKey, v any) error {
	ok, err := c.Get(ctx, key, v)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingRequiredValue
	}
	return nil
}

// Delete removes key, if present.
func (c *RedisCache) Delete(ctx context.Context, key CacheKey) error {
	return c.client.Del(ctx, c.redisKey(key)).Err()
}

// ContainsKey reports whether key is present without reading its value.
func (c *RedisCache) ContainsKey(ctx context.Context, key CacheKey) (bool, error) {
	n, err := c.client.Exists(ctx, c.redisKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
