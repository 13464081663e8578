package actions

import (
	"context"
	"sort"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// FetchRemoteAction is the root of every pipeline (spec §4.5): it fetches
// every configured container node's tree from the remote and flattens it
// into a name-keyed index, memoised under a volatile key that folds in
// every node's content hash so a re-run whose remote content is unchanged
// is a pure cache hit.
type FetchRemoteAction struct {
	RemoteName   string
	FileKey      string
	AccessToken  string
	ContainerIDs []string
	ForceRefetch bool
}

func (a *FetchRemoteAction) stableKey() cache.CacheKey {
	ids := append([]string(nil), a.ContainerIDs...)
	sort.Strings(ids)
	return cache.NewBuilder().
		SetTag(TagFetchRemote).
		WriteStr(a.RemoteName).
		WriteStr(a.FileKey).
		WriteStrings(ids).
		Build()
}

// Execute implements graph.Action.
func (a *FetchRemoteAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "fetch-remote: missing evaluation state")
	}
	stable := a.stableKey()

	if !a.ForceRefetch {
		if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
			return cache.CacheKey{}, wrapCacheErr(err)
		} else if hit {
			return volatile, nil
		}
	}

	idx, err := state.Figma.FetchNodes(ctx, a.FileKey, a.AccessToken, a.ContainerIDs)
	if err != nil {
		return cache.CacheKey{}, wrapFigmaErr(err)
	}

	combined := figma.CombineHashes(idx)
	volatile := cache.NewBuilder().
		SetTag(TagFetchRemote).
		WriteBytes(stable.Bytes()).
		WriteU64(combined).
		Build()

	if err := state.Cache.Put(ctx, volatile, idx); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

// DiagnosticsInfo implements graph.Action.
func (a *FetchRemoteAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name: "FetchRemote",
		Params: []graph.Param{
			{Key: "remote", Value: a.RemoteName},
			{Key: "file_key", Value: a.FileKey},
		},
	}
}
