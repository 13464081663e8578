package cache

import (
	"context"
	"errors"
	"testing"
)

type sampleValue struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestFileCachePutGetRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := NewBuilder().SetTag(1).WriteStr("foo").Build()

	in := sampleValue{Name: "a", N: 1}
	if err := c.Put(ctx, key, in); err != nil {
		t.Fatal(err)
	}

	var out sampleValue
	ok, err := c.Get(ctx, key, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := NewBuilder().SetTag(1).WriteStr("missing").Build()

	var out sampleValue
	ok, err := c.Get(ctx, key, &out)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected a miss")
	}

	if err := c.Require(ctx, key, &out); err != ErrMissingRequiredValue {
		t.Fatalf("got %v, want ErrMissingRequiredValue", err)
	}
}

func TestFileCacheDeleteAndContainsKey(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := NewBuilder().SetTag(2).WriteU64(7).Build()

	if err := c.PutBytes(ctx, key, []byte("hello")); err != nil {
		t.Fatal(err)
	}

	ok, err := c.ContainsKey(ctx, key)
	if err != nil || !ok {
		t.Fatalf("ContainsKey = %v, %v; want true, nil", ok, err)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}

	ok, err = c.ContainsKey(ctx, key)
	if err != nil || ok {
		t.Fatalf("ContainsKey after delete = %v, %v; want false, nil", ok, err)
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
}

func TestFileCacheCleanTag(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	keyA := NewBuilder().SetTag(0xAA).WriteStr("one").Build()
	keyB := NewBuilder().SetTag(0xBB).WriteStr("two").Build()

	if err := c.PutBytes(ctx, keyA, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := c.PutBytes(ctx, keyB, []byte("b")); err != nil {
		t.Fatal(err)
	}

	if err := c.CleanTag(0xAA); err != nil {
		t.Fatal(err)
	}

	if ok, _ := c.ContainsKey(ctx, keyA); ok {
		t.Fatal("expected tag 0xAA entries to be cleaned")
	}
	if ok, _ := c.ContainsKey(ctx, keyB); !ok {
		t.Fatal("expected tag 0xBB entries to survive")
	}
}

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	key := NewBuilder().SetTag(1).WriteStr("x").Build()

	if err := c.Put(ctx, key, sampleValue{Name: "a"}); err != nil {
		t.Fatal(err)
	}

	var out sampleValue
	ok, err := c.Get(ctx, key, &out)
	if err != nil || ok {
		t.Fatalf("Get = %v, %v; want false, nil", ok, err)
	}

	if err := c.Require(ctx, key, &out); err != ErrMissingRequiredValue {
		t.Fatalf("got %v, want ErrMissingRequiredValue", err)
	}
}

var errBoom = errors.New("boom")

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errBoom)
	if err == nil {
		t.Fatal("Retryable should return a wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for a wrapped error")
	}
	if err.Error() != errBoom.Error() {
		t.Errorf("error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errBoom) {
		t.Error("IsRetryable should return false for an unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	}); err != nil {
		t.Errorf("should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("should call once, got %d", calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errBoom
	})
	if err != errBoom {
		t.Errorf("should return the non-retryable error unchanged: %v", err)
	}
	if calls != 1 {
		t.Errorf("should not retry a non-retryable error, got %d calls", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errBoom)
		}
		return nil
	})
	if err != nil {
		t.Errorf("should succeed after a retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("should have retried once, got %d calls", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errBoom)
	})
	if err != context.Canceled {
		t.Errorf("should return the context error: %v", err)
	}
}
