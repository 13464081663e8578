package actions

import (
	"context"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/graph"
	"github.com/matzehuels/figx/pkg/svg2drawable"
)

// TransformSvgToDrawableAction renders downloaded SVG bytes as an Android
// vector drawable XML document.
type TransformSvgToDrawableAction struct {
	XMLDeclaration bool
}

func (a *TransformSvgToDrawableAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "svg-to-drawable: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, newEvalError(KindIO, "svg-to-drawable: no svg dependency")
	}
	svgKey := ec.Inputs[0]

	stable := cache.NewBuilder().
		SetTag(TagTransformSvgToDrawable).
		WriteBytes(svgKey.Bytes()).
		WriteBool(a.XMLDeclaration).
		Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	svg, hit, err := state.Cache.GetBytes(ctx, svgKey)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "svg-to-drawable: svg bytes missing from cache")
	}

	xml, err := svg2drawable.Generate(svg, svg2drawable.Options{XMLDeclaration: a.XMLDeclaration})
	if err != nil {
		return cache.CacheKey{}, newEvalError(KindSvgToDrawable, "%s", err.Error())
	}

	digest := contentDigest(xml)
	volatile := cache.NewBuilder().SetTag(TagTransformSvgToDrawable).WriteBytes(stable.Bytes()).WriteU64(digest).Build()

	if err := state.Cache.PutBytes(ctx, volatile, xml); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *TransformSvgToDrawableAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{Name: "TransformSvgToDrawable"}
}
