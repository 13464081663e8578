package actions

import (
	"context"
	"strconv"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// ExportImageAction requests a rendered-image URL for the node a
// FindNodeAction resolved, at a given format and scale (spec §4.5:
// "png/svg/pdf at a scale").
type ExportImageAction struct {
	FileKey     string
	AccessToken string
	Format      string
	Scale       float64
}

func (a *ExportImageAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "export-image: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, newEvalError(KindExportImage, "no find-node dependency")
	}
	findKey := ec.Inputs[0]

	stable := cache.NewBuilder().
		SetTag(TagExportImage).
		WriteBytes(findKey.Bytes()).
		WriteStr(a.Format).
		WriteStr(strconv.FormatFloat(a.Scale, 'f', -1, 64)).
		Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	var found FoundNode
	hit, err := state.Cache.Get(ctx, findKey, &found)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "export-image: find-node result missing from cache")
	}

	urls, err := state.Figma.ExportImages(ctx, a.FileKey, a.AccessToken, []string{found.ID}, a.Scale, a.Format)
	if err != nil {
		if _, ok := err.(*figma.NullExportError); ok {
			return cache.CacheKey{}, newEvalError(KindExportImage, "%s", err.Error())
		}
		return cache.CacheKey{}, wrapFigmaErr(err)
	}
	url, ok := urls[found.ID]
	if !ok {
		return cache.CacheKey{}, newEvalError(KindExportImage, "no export url returned for node %s", found.ID)
	}

	volatile := cache.NewBuilder().
		SetTag(TagExportImage).
		WriteBytes(stable.Bytes()).
		WriteStr(url).
		Build()

	if err := state.Cache.Put(ctx, volatile, url); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *ExportImageAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name: "ExportImage",
		Params: []graph.Param{
			{Key: "format", Value: a.Format},
			{Key: "scale", Value: strconv.FormatFloat(a.Scale, 'f', -1, 64)},
		},
	}
}
