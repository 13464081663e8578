package actions

import (
	"context"
	"strconv"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/graph"
)

// TransformWebpAction re-encodes PNG bytes to WEBP at Quality (0-100);
// quality 100 requests lossless encoding (spec §4.5).
type TransformWebpAction struct {
	Quality int
}

func (a *TransformWebpAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "transform-webp: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, newEvalError(KindWebpCreate, "no upstream image dependency")
	}
	inputKey := ec.Inputs[0]

	stable := cache.NewBuilder().
		SetTag(TagTransformWebp).
		WriteBytes(inputKey.Bytes()).
		WriteU32(uint32(a.Quality)).
		Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	png, hit, err := state.Cache.GetBytes(ctx, inputKey)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "transform-webp: input bytes missing from cache")
	}

	webp, err := state.Images.EncodeWebp(ctx, png, a.Quality)
	if err != nil {
		return cache.CacheKey{}, newEvalError(KindWebpCreate, "%s", err.Error())
	}

	digest := contentDigest(webp)
	volatile := cache.NewBuilder().SetTag(TagTransformWebp).WriteBytes(stable.Bytes()).WriteU64(digest).Build()

	if err := state.Cache.PutBytes(ctx, volatile, webp); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *TransformWebpAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name:   "TransformWebp",
		Params: []graph.Param{{Key: "quality", Value: strconv.Itoa(a.Quality)}},
	}
}
