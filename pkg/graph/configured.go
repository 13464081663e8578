package graph

// Configured is the immutable result of Builder.Build: a sorted node table,
// per-node dependency counts, and the adjacency needed to drive Execute
// without touching the original Builder.
type Configured struct {
	nodes          []Action
	deps           [][]NodeID
	inDegree       []int
	dependentSlots [][]slot
	order          []NodeID
}

// NodeCount returns the number of nodes in the graph.
func (c *Configured) NodeCount() int { return len(c.nodes) }

// TopoOrder returns the topological order computed at Build time, used by
// the explain surface to print a deterministic node listing.
func (c *Configured) TopoOrder() []NodeID {
	out := make([]NodeID, len(c.order))
	copy(out, c.order)
	return out
}

// Diagnostics returns the DiagnosticsInfo for a node, for explain/aquery
// rendering.
func (c *Configured) Diagnostics(id NodeID) DiagnosticsInfo {
	return c.nodes[id].DiagnosticsInfo()
}

// Dependencies returns the node ids that id depends on, in the order their
// edges were added.
func (c *Configured) Dependencies(id NodeID) []NodeID {
	out := make([]NodeID, len(c.deps[id]))
	copy(out, c.deps[id])
	return out
}
