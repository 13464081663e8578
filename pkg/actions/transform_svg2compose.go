package actions

import (
	"context"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/graph"
	"github.com/matzehuels/figx/pkg/svg2compose"
)

// TransformSvgToComposeAction renders downloaded SVG bytes as Kotlin source
// declaring a Compose ImageVector property (spec §4.5/§6). It depends on
// both a DownloadImgAction (for the SVG bytes) and a GetKotlinPackageAction
// (for the target package), distinguished by cache-key tag since both
// arrive positionally unordered in ExecContext.Inputs.
type TransformSvgToComposeAction struct {
	ImageName         string
	KotlinExplicitAPI bool
	ExtensionTarget   string
	FileSuppressLint  []string
	ColorMappings     []svg2compose.ColorMapping
	Preview           *svg2compose.Preview
	SkipPreview       bool
	ComposableGet     bool
}

func (a *TransformSvgToComposeAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "svg-to-compose: missing evaluation state")
	}

	svgKey, pkgKey, err := splitTaggedInputs(ec.Inputs, TagDownloadImg, TagGetKotlinPackage)
	if err != nil {
		return cache.CacheKey{}, newEvalError(KindSvgToCompose, "%s", err.Error())
	}

	kb := cache.NewBuilder().
		SetTag(TagTransformSvgToCompose).
		WriteBytes(svgKey.Bytes()).
		WriteBytes(pkgKey.Bytes()).
		WriteStr(a.ImageName).
		WriteBool(a.KotlinExplicitAPI).
		WriteStr(a.ExtensionTarget).
		WriteBool(a.SkipPreview).
		WriteBool(a.ComposableGet).
		WriteStrings(a.FileSuppressLint).
		WriteUsize(uint64(len(a.ColorMappings)))
	for _, m := range a.ColorMappings {
		kb.WriteStr(m.From).WriteStr(m.To)
	}
	kb.WriteBool(a.Preview != nil)
	if a.Preview != nil {
		kb.WriteStr(a.Preview.Code).WriteStrings(a.Preview.Imports)
	}
	stable := kb.Build()

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
		return cache.CacheKey{}, newEvalError(KindCache, "svg-to-compose: svg bytes missing from cache")
	}

	var pkg string
	hit, err = state.Cache.Get(ctx, pkgKey, &pkg)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "svg-to-compose: kotlin package missing from cache")
	}

	kt, err := svg2compose.Generate(svg, svg2compose.Options{
		ImageName:         a.ImageName,
		Package:           pkg,
		KotlinExplicitAPI: a.KotlinExplicitAPI,
		ExtensionTarget:   a.ExtensionTarget,
		FileSuppressLint:  a.FileSuppressLint,
		ColorMappings:     a.ColorMappings,
		Preview:           a.Preview,
		SkipPreview:       a.SkipPreview,
		ComposableGet:     a.ComposableGet,
	})
	if err != nil {
		return cache.CacheKey{}, newEvalError(KindSvgToCompose, "%s", err.Error())
	}

	digest := contentDigest(kt)
	volatile := cache.NewBuilder().SetTag(TagTransformSvgToCompose).WriteBytes(stable.Bytes()).WriteU64(digest).Build()

	if err := state.Cache.PutBytes(ctx, volatile, kt); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *TransformSvgToComposeAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name:   "TransformSvgToCompose",
		Params: []graph.Param{{Key: "image_name", Value: a.ImageName}},
	}
}

// splitTaggedInputs finds, among ec.Inputs, exactly one key tagged with
// each of wantA/wantB, regardless of order.
func splitTaggedInputs(inputs []cache.CacheKey, wantA, wantB byte) (a, b cache.CacheKey, err error) {
	var foundA, foundB bool
	for _, k := range inputs {
		switch k.Tag() {
		case wantA:
			a, foundA = k, true
		case wantB:
			b, foundB = k, true
		}
	}
	if !foundA || !foundB {
		return cache.CacheKey{}, cache.CacheKey{}, errMissingTaggedInput
	}
	return a, b, nil
}
