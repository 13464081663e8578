package actions

import (
	"context"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// FoundNode is the result FindNodeAction stores under its volatile key: the
// remote id of the located node plus enough of its content to let
// downstream actions (ExportImage) act on it without re-reading the whole
// index.
type FoundNode struct {
	ID               string `json:"id"`
	Hash             uint64 `json:"hash"`
	UsesRasterPaints bool   `json:"uses_raster_paints"`
}

// FindNodeAction resolves a configured node name against the index a
// FetchRemoteAction produced. In --strict mode, a vector-profile resource
// whose node uses raster paints is a hard error (spec §9's raster-in-vector
// open question); outside strict mode such a node is accepted and no
// warning is emitted.
type FindNodeAction struct {
	NodeName      string
	Span          config.Span
	VectorProfile bool
}

func (a *FindNodeAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "find-node: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, &EvaluationError{Kind: KindFindNode, NodeName: a.NodeName, File: a.Span.File, Span: a.Span, Message: "no fetch-remote dependency"}
	}
	fetchKey := ec.Inputs[0]

	stable := cache.NewBuilder().
		SetTag(TagFindNode).
		WriteBytes(fetchKey.Bytes()).
		WriteStr(a.NodeName).
		Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	var idx figma.NodeIndex
	hit, err := state.Cache.Get(ctx, fetchKey, &idx)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, &EvaluationError{Kind: KindCache, Message: "find-node: fetch-remote index missing from cache"}
	}

	entry, found := idx.Entries[a.NodeName]
	if !found {
		return cache.CacheKey{}, &EvaluationError{
			Kind: KindFindNode, NodeName: a.NodeName, File: a.Span.File, Span: a.Span,
			Message: "node not found in fetched containers",
		}
	}
	if a.VectorProfile && entry.UsesRasterPaints && state.Strict {
		return cache.CacheKey{}, &EvaluationError{
			Kind: KindFindNode, NodeName: a.NodeName, File: a.Span.File, Span: a.Span,
			Message: "node uses raster paints; refusing vector export in strict mode",
		}
	}

	volatile := cache.NewBuilder().
		SetTag(TagFindNode).
		WriteBytes(stable.Bytes()).
		WriteStr(entry.ID).
		WriteU64(entry.Hash).
		Build()

	result := FoundNode{ID: entry.ID, Hash: entry.Hash, UsesRasterPaints: entry.UsesRasterPaints}
	if err := state.Cache.Put(ctx, volatile, result); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *FindNodeAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name:   "FindNode",
		Params: []graph.Param{{Key: "node_name", Value: a.NodeName}},
	}
}
