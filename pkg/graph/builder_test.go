package graph

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/figx/pkg/cache"
)

// recordingAction appends its own name to a shared log when executed and
// returns a fixed output key.
type recordingAction struct {
	name string
	log  *[]string
}

func (a *recordingAction) Execute(context.Context, *ExecContext) (cache.CacheKey, error) {
	*a.log = append(*a.log, a.name)
	return cache.NewBuilder().SetTag(0).WriteStr(a.name).Build(), nil
}

func (a *recordingAction) DiagnosticsInfo() DiagnosticsInfo {
	return DiagnosticsInfo{Name: a.name}
}

func TestBuilderTopoOrderChain(t *testing.T) {
	// Scenario 4: A, B, C, D with edges A→B→C→D (depends-on); topological
	// order must be D, C, B, A.
	var log []string
	b := NewBuilder()
	a := b.AddNode(&recordingAction{name: "A", log: &log})
	bb := b.AddNode(&recordingAction{name: "B", log: &log})
	c := b.AddNode(&recordingAction{name: "C", log: &log})
	d := b.AddNode(&recordingAction{name: "D", log: &log})

	if err := b.AddEdge(a, bb); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge(bb, c); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge(c, d); err != nil {
		t.Fatal(err)
	}

	conf, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	want := []NodeID{d, c, bb, a}
	if got := conf.TopoOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderCycleDetection(t *testing.T) {
	// Scenario 5: n0→n1→n2→n0 must fail with GraphHasCycle{[n0,n1,n2]}.
	var log []string
	b := NewBuilder()
	n0 := b.AddNode(&recordingAction{name: "n0", log: &log})
	n1 := b.AddNode(&recordingAction{name: "n1", log: &log})
	n2 := b.AddNode(&recordingAction{name: "n2", log: &log})

	if err := b.AddEdge(n0, n1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge(n1, n2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge(n2, n0); err != nil {
		t.Fatal(err)
	}

	_, err := b.Build()
	cycleErr, ok := err.(*GraphHasCycle)
	if !ok {
		t.Fatalf("expected *GraphHasCycle, got %T (%v)", err, err)
	}
	want := []NodeID{n0, n1, n2}
	if !reflect.DeepEqual(cycleErr.Nodes, want) {
		t.Fatalf("got cycle nodes %v, want %v", cycleErr.Nodes, want)
	}
}

func TestBuilderAddEdgeRejectsUnknownNode(t *testing.T) {
	b := NewBuilder()
	a := b.AddNode(&recordingAction{name: "A"})
	if err := b.AddEdge(a, NodeID(99)); err != ErrUnknownNode {
		t.Fatalf("got %v, want ErrUnknownNode", err)
	}
}
