package graph

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/figx/pkg/cache"
)

// Execute runs a Configured graph to completion: it seeds a ready queue
// with every in-degree-0 node, then drains it with a pool of worker
// goroutines bounded by parallelism (0 means unbounded, left to errgroup's
// default of no limit — callers pass runtime.NumCPU() or the CLI's -j flag).
//
// On the first node error, Execute cancels ctx so no further node starts;
// nodes already dispatched complete naturally and their results are
// discarded. Execute returns that first error, wrapped with the failing
// node's id.
func Execute(ctx context.Context, conf *Configured, state any, parallelism int, progress Progress) error {
	n := conf.NodeCount()
	if n == 0 {
		return nil
	}
	if progress == nil {
		progress = NoProgress{}
	}

	remaining := make([]int32, n)
	for i, d := range conf.inDegree {
		remaining[i] = int32(d)
	}

	inputs := make([][]cache.CacheKey, n)
	for i, deps := range conf.deps {
		inputs[i] = make([]cache.CacheKey, len(deps))
	}

	ready := make(chan NodeID, n)
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			ready <- NodeID(i)
		}
	}

	exec := &execState{
		conf:      conf,
		state:     state,
		progress:  progress,
		inputs:    inputs,
		remaining: remaining,
		ready:     ready,
	}

	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	dispatched := 0
dispatchLoop:
	for dispatched < n {
		select {
		case id := <-ready:
			dispatched++
			g.Go(func() error { return exec.run(gctx, id) })
		case <-gctx.Done():
			break dispatchLoop
		}
	}

	return g.Wait()
}

// execState holds the mutable bookkeeping shared by every worker goroutine
// in one Execute call: the per-node collected inputs, the remaining
// in-degree counters, and the shared ready queue. mu serializes the
// read-modify-write on remaining/inputs that happens when a node completes
// and its dependents' counters are decremented.
type execState struct {
	conf      *Configured
	state     any
	progress  Progress
	inputs    [][]cache.CacheKey
	remaining []int32
	ready     chan NodeID

	mu sync.Mutex
}

func (e *execState) run(ctx context.Context, id NodeID) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	info := e.conf.Diagnostics(id)
	h := e.progress.Start(id, info)
	defer e.progress.Done(h)

	out, err := e.conf.nodes[id].Execute(ctx, &ExecContext{Inputs: e.inputs[id], State: e.state})
	if err != nil {
		return fmt.Errorf("node %d (%s): %w", id, info.Name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, sl := range e.conf.dependentSlots[id] {
		e.inputs[sl.consumer][sl.pos] = out
		e.remaining[sl.consumer]--
		if e.remaining[sl.consumer] == 0 {
			e.ready <- sl.consumer
		}
	}
	return nil
}
