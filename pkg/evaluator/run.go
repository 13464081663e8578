package evaluator

import (
	"context"
	"runtime"

	"github.com/matzehuels/figx/pkg/actions"
	"github.com/matzehuels/figx/pkg/graph"
)

// Run drives a graph Build produced to completion, using state as the
// shared EvalState every action's Execute call receives. parallelism <= 0
// falls back to runtime.NumCPU(), so unlike graph.Execute, Run never runs
// with an unbounded pool.
func Run(ctx context.Context, conf *graph.Configured, state *actions.EvalState, parallelism int, progress graph.Progress) error {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return graph.Execute(ctx, conf, state, parallelism, progress)
}
