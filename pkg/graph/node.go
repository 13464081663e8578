// Package graph implements the action dependency graph (ADG): a typed DAG
// builder and parallel executor with per-node inputs/outputs, topological
// scheduling, fail-fast semantics, and deterministic node ordering.
//
// A graph is built from Action payloads connected by depends-on edges, then
// configured once via Builder.Build into an immutable Configured graph, and
// finally run by Execute, which respects dependency order while running
// independent nodes concurrently.
package graph

import (
	"context"

	"github.com/matzehuels/figx/pkg/cache"
)

// NodeID is the opaque identity of a node within a single graph: the index
// at which its Action was added via Builder.AddNode.
type NodeID int

// Param is one (key, value) pair in a DiagnosticsInfo descriptor.
type Param struct {
	Key   string
	Value string
}

// DiagnosticsInfo describes an action for the explain/aquery surfaces: a
// human-readable name plus an ordered list of parameters that produced it.
type DiagnosticsInfo struct {
	Name   string
	Params []Param
}

// ExecContext is handed to an Action's Execute method. Inputs holds the
// CacheKey outputs of the node's dependencies, in the order the
// corresponding edges were added via Builder.AddEdge — callers with more
// than one distinct predecessor should not rely on this position alone but
// should tag their own cache keys (spec's "tagged input lookup") when more
// than one predecessor kind is possible. State is a cheap, shared handle
// (e.g. the evaluator's run state bundling a Cache and an HTTP client) that
// every action in the run shares.
type ExecContext struct {
	Inputs []cache.CacheKey
	State  any
}

// Action is one node's payload: a unit of work that consumes its
// predecessors' outputs and produces its own.
type Action interface {
	// Execute runs the action and returns the CacheKey under which its
	// result is stored. ctx is cancelled once the executor has recorded a
	// first error from any node in the run.
	Execute(ctx context.Context, ec *ExecContext) (cache.CacheKey, error)

	// DiagnosticsInfo describes this action for explain/aquery output.
	DiagnosticsInfo() DiagnosticsInfo
}
