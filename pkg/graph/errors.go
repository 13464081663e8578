package graph

import "fmt"

// GraphHasCycle is returned by Builder.Build when the accumulated edges do
// not form a DAG. Nodes lists exactly the node ids still holding a non-zero
// in-degree once Kahn's algorithm stalls — i.e. the offending cycle (and
// anything only reachable through it).
type GraphHasCycle struct {
	Nodes []NodeID
}

func (e *GraphHasCycle) Error() string {
	return fmt.Sprintf("graph has a cycle among nodes %v", e.Nodes)
}
