package cache

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// FileCache is the default Cache implementation: an embedded, file-based
// store rooted at a cache directory. Entries are distributed across
// two-character subdirectories (taken from the key's hex encoding) to avoid
// too many files in one directory, and are gzip-compressed on disk via
// klauspost/compress (stored node indexes and downloaded image bytes
// compress well).
//
// FileCache serializes writers with an internal mutex so that concurrent
// readers observe a consistent snapshot, matching the "each operation is an
// atomic transaction" contract of spec §4.3: writers hold the mutex
// exclusively, readers share its read lock, and each write lands by an
// atomic rename on POSIX filesystems.
type FileCache struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCache creates (if necessary) and opens a file-based cache rooted
// at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) path(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, hexKey[:2], hexKey[2:]+".bin")
}

// PutBytes stores data atomically: it is gzip-compressed, written to a
// uuid-suffixed temp file in the same directory, then renamed into place so
// concurrent readers never observe a partial write.
func (c *FileCache) PutBytes(_ context.Context, key CacheKey, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// GetBytes retrieves and decompresses the bytes stored under key.
func (c *FileCache) GetBytes(_ context.Context, key CacheKey) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		// Corrupt entry: treat as a miss rather than propagating a parse
		// error up through unrelated cache reads.
		return nil, false, nil
	}
	defer gz.Close()
	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, false, nil
	}
	return data, true, nil
}

// Put encodes v and stores it via PutBytes.
func (c *FileCache) Put(ctx context.Context, key CacheKey, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return c.PutBytes(ctx, key, data)
}

// Get retrieves and decodes the value stored under key into v.
func (c *FileCache) Get(ctx context.Context, key CacheKey, v any) (bool, error) {
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
func (c *FileCache) Require(ctx context.Context, key CacheKey, v any) error {
	ok, err := c.Get(ctx, key, v)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingRequiredValue
	}
	return nil
}

// Delete removes the file backing key, if present.
func (c *FileCache) Delete(_ context.Context, key CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ContainsKey reports whether key's backing file exists.
func (c *FileCache) ContainsKey(_ context.Context, key CacheKey) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := os.Stat(c.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close is a no-op for FileCache: there are no open handles to release
// between operations.
func (c *FileCache) Close() error { return nil }

// Clean removes every entry under the cache directory (spec §6, `clean --all`).
func (c *FileCache) Clean() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// CleanTag removes every entry whose key begins with the given tag byte.
func (c *FileCache) CleanTag(tag byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := hex.EncodeToString([]byte{tag})
	sub := filepath.Join(c.dir, prefix)
	if _, err := os.Stat(sub); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	return os.RemoveAll(sub)
}

var _ Cache = (*FileCache)(nil)
