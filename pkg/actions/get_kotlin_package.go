package actions

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/graph"
)

// kotlinSourceRoots are the directory suffixes recognised as Kotlin/KMP
// source roots (spec §4.5 GetKotlinPackage).
var kotlinSourceRoots = []string{
	"src/main/kotlin",
	"src/main/java",
	"src/commonMain/kotlin",
	"src/androidMain/kotlin",
	"src/jvmMain/kotlin",
}

// GetKotlinPackageAction resolves the Kotlin package a Compose output file
// belongs in by walking OutputDir's ancestors for a recognised source
// root; Default is used verbatim when non-empty, or as a fallback when no
// root is found.
type GetKotlinPackageAction struct {
	OutputDir string
	Default   string
}

func (a *GetKotlinPackageAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "get-kotlin-package: missing evaluation state")
	}

	stable := cache.NewBuilder().
		SetTag(TagGetKotlinPackage).
		WriteStr(a.OutputDir).
		WriteStr(a.Default).
		Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	pkg := a.Default
	if pkg == "" {
		pkg = resolveKotlinPackage(a.OutputDir, a.Default)
	}

	volatile := cache.NewBuilder().SetTag(TagGetKotlinPackage).WriteBytes(stable.Bytes()).WriteStr(pkg).Build()
	if err := state.Cache.Put(ctx, volatile, pkg); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *GetKotlinPackageAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name:   "GetKotlinPackage",
		Params: []graph.Param{{Key: "output_dir", Value: a.OutputDir}},
	}
}

// resolveKotlinPackage walks ancestors of outputDir looking for a directory
// whose path ends in a recognised Kotlin source root; the package is the
// dot-joined path of outputDir relative to that root. def is returned
// unchanged when no root is found.
func resolveKotlinPackage(outputDir, def string) string {
	clean := filepath.ToSlash(filepath.Clean(outputDir))
	segs := strings.Split(clean, "/")
	for i := len(segs); i >= 1; i-- {
		ancestor := strings.Join(segs[:i], "/")
		for _, root := range kotlinSourceRoots {
			if !strings.HasSuffix(ancestor, root) {
				continue
			}
			rel := strings.TrimPrefix(clean, ancestor)
			rel = strings.Trim(rel, "/")
			if rel == "" {
				return def
			}
			return strings.ReplaceAll(rel, "/", ".")
		}
	}
	return def
}
