package cache

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrMissingRequiredValue is returned by Require when the key is absent.
var ErrMissingRequiredValue = errors.New("cache: missing required value")

// Encodable is implemented by values that know how to serialize themselves
// for storage via Cache.Put. Most callers can instead rely on the default
// JSON encoding performed by Put/Get for any value, and only implement this
// for types that need a custom wire form.
type Encodable interface {
	EncodeCache() ([]byte, error)
}

// Decodable is the Get-side counterpart of Encodable.
type Decodable interface {
	DecodeCache([]byte) error
}

// Cache is a process-wide, durable, transactional key-value store rooted at
// a configured directory or connection. Each operation is an atomic
// transaction; concurrent readers observe a consistent snapshot (spec §4.3).
//
// Implementations: FileCache (embedded on-disk store, the one the CLI
// opens), RedisCache and MongoCache (shared/distributed tiers, not
// selectable from the CLI), and NullCache.
type Cache interface {
	// PutBytes stores raw bytes under key, replacing any previous value.
	PutBytes(ctx context.Context, key CacheKey, data []byte) error

	// GetBytes retrieves raw bytes for key. ok is false on a cache miss.
	GetBytes(ctx context.Context, key CacheKey) (data []byte, ok bool, err error)

	// Put encodes v (via Encodable, falling back to JSON) and stores it.
	Put(ctx context.Context, key CacheKey, v any) error

	// Get decodes a stored value into v (via Decodable, falling back to
	// JSON). ok is false on a cache miss; v is left untouched.
	Get(ctx context.Context, key CacheKey, v any) (ok bool, err error)

	// Require is like Get but returns ErrMissingRequiredValue on a miss
	// instead of ok=false, for callers that treat a miss as fatal.
	Require(ctx context.Context, key CacheKey, v any) error

	// Delete removes key if present. Deleting an absent key is not an error.
	Delete(ctx context.Context, key CacheKey) error

	// ContainsKey reports whether key is present without reading its value.
	ContainsKey(ctx context.Context, key CacheKey) (bool, error)

	// Close releases any resources (file handles, connections) held by the
	// cache. Safe to call multiple times.
	Close() error
}

// encode serializes v using Encodable if implemented, otherwise JSON.
func encode(v any) ([]byte, error) {
	if e, ok := v.(Encodable); ok {
		return e.EncodeCache()
	}
	return json.Marshal(v)
}

// decode deserializes data into v using Decodable if implemented, otherwise
// JSON.
func decode(data []byte, v any) error {
	if d, ok := v.(Decodable); ok {
		return d.DecodeCache(data)
	}
	return json.Unmarshal(data, v)
}
