package actions

import (
	"context"

	"github.com/matzehuels/figx/pkg/cache"
)

// volatileLink is stored under an action's stable key, pointing at the
// volatile key its last run produced. Every action in this package follows
// the same two-key shape (spec §4.3): a stable key derived from inputs and
// parameters alone, and a volatile key that also folds in content learned
// during execution (a remote's node hashes, a found node's id). Looking the
// link up lets an action skip recomputation when its stable key is
// unchanged, without needing to know anything about the volatile key's
// shape in advance.
type volatileLink struct {
	Volatile cache.CacheKey `json:"volatile"`
}

// lookupVolatile returns the volatile key previously linked from stable, if
// any.
func lookupVolatile(ctx context.Context, c cache.Cache, stable cache.CacheKey) (cache.CacheKey, bool, error) {
	var link volatileLink
	ok, err := c.Get(ctx, stable, &link)
	if err != nil || !ok {
		return cache.CacheKey{}, false, err
	}
	return link.Volatile, true, nil
}

// storeVolatileLink records that stable's most recent execution produced
// volatile.
func storeVolatileLink(ctx context.Context, c cache.Cache, stable, volatile cache.CacheKey) error {
	return c.Put(ctx, stable, volatileLink{Volatile: volatile})
}
