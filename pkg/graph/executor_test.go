package graph

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/matzehuels/figx/pkg/cache"
)

// orderedAction appends its name to a shared, mutex-protected log when run,
// verifies it received the expected number of inputs, and returns a key
// derived from its name so dependents can check what they received.
type orderedAction struct {
	name      string
	wantIns   int
	mu        *sync.Mutex
	log       *[]string
	failAfter bool
}

func (a *orderedAction) Execute(_ context.Context, ec *ExecContext) (cache.CacheKey, error) {
	if len(ec.Inputs) != a.wantIns {
		return cache.CacheKey{}, errors.New("unexpected input count")
	}
	a.mu.Lock()
	*a.log = append(*a.log, a.name)
	a.mu.Unlock()
	if a.failAfter {
		return cache.CacheKey{}, errors.New("boom")
	}
	return cache.NewBuilder().SetTag(1).WriteStr(a.name).Build(), nil
}

func (a *orderedAction) DiagnosticsInfo() DiagnosticsInfo {
	return DiagnosticsInfo{Name: a.name}
}

func TestExecuteRespectsDependencyOrder(t *testing.T) {
	var mu sync.Mutex
	var log []string

	b := NewBuilder()
	a := b.AddNode(&orderedAction{name: "A", wantIns: 1, mu: &mu, log: &log})
	bb := b.AddNode(&orderedAction{name: "B", wantIns: 1, mu: &mu, log: &log})
	c := b.AddNode(&orderedAction{name: "C", wantIns: 1, mu: &mu, log: &log})
	d := b.AddNode(&orderedAction{name: "D", wantIns: 0, mu: &mu, log: &log})

	must(t, b.AddEdge(a, bb))
	must(t, b.AddEdge(bb, c))
	must(t, b.AddEdge(c, d))

	conf, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := Execute(context.Background(), conf, nil, 4, nil); err != nil {
		t.Fatal(err)
	}

	// D has no predecessors so it must run before anything that (directly
	// or transitively) depends on it; with a single chain the full order is
	// forced regardless of available parallelism.
	want := []string{"D", "C", "B", "A"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestExecuteFanOutRunsIndependentNodesWithoutOrderConstraint(t *testing.T) {
	var mu sync.Mutex
	var log []string

	b := NewBuilder()
	root := b.AddNode(&orderedAction{name: "root", wantIns: 0, mu: &mu, log: &log})
	leafA := b.AddNode(&orderedAction{name: "leafA", wantIns: 1, mu: &mu, log: &log})
	leafB := b.AddNode(&orderedAction{name: "leafB", wantIns: 1, mu: &mu, log: &log})

	must(t, b.AddEdge(leafA, root))
	must(t, b.AddEdge(leafB, root))

	conf, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := Execute(context.Background(), conf, nil, 4, nil); err != nil {
		t.Fatal(err)
	}

	if len(log) != 3 || log[0] != "root" {
		t.Fatalf("got %v, want root first then both leaves", log)
	}
}

func TestExecuteFailFastStopsNewNodes(t *testing.T) {
	var mu sync.Mutex
	var log []string

	b := NewBuilder()
	root := b.AddNode(&orderedAction{name: "root", wantIns: 0, mu: &mu, log: &log, failAfter: true})
	dependent := b.AddNode(&orderedAction{name: "dependent", wantIns: 1, mu: &mu, log: &log})

	must(t, b.AddEdge(dependent, root))

	conf, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	err = Execute(context.Background(), conf, nil, 2, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, name := range log {
		if name == "dependent" {
			t.Fatal("dependent should never have run after root failed")
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
