package cache

import "context"

// NullCache is a no-op Cache that never stores anything; every Get/ContainsKey
// reports a miss and every Put/Delete succeeds without effect. It gives a
// real Cache value that never touches disk; the CLI never opens one.
type NullCache struct{}

// NewNullCache returns a cache that discards everything written to it.
func NewNullCache() *NullCache { return &NullCache{} }

// PutBytes discards data.
func (c *NullCache) PutBytes(context.Context, CacheKey, []byte) error { return nil }

// GetBytes always reports a miss.
func (c *NullCache) GetBytes(context.Context, CacheKey) ([]byte, bool, error) {
	return nil, false, nil
}

// Put discards v.
func (c *NullCache) Put(context.Context, CacheKey, any) error { return nil }

// Get always reports a miss, leaving v untouched.
func (c *NullCache) Get(context.Context, CacheKey, any) (bool, error) { return false, nil }

// Require always fails with ErrMissingRequiredValue, since nothing is ever
// stored.
func (c *NullCache) Require(context.Context, CacheKey, any) error { return ErrMissingRequiredValue }

// Delete is a no-op.
func (c *NullCache) Delete(context.Context, CacheKey) error { return nil }

// ContainsKey always reports false.
func (c *NullCache) ContainsKey(context.Context, CacheKey) (bool, error) { return false, nil }

// Close is a no-op.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
