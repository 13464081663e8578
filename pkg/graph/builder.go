package graph

import "errors"

// ErrUnknownNode is returned by Builder.AddEdge when either endpoint was not
// previously returned by AddNode on the same builder.
var ErrUnknownNode = errors.New("graph: unknown node id")

// slot records where a producer's output lands among a consumer's Inputs:
// consumer's ExecContext.Inputs[pos] receives the producer's CacheKey.
type slot struct {
	consumer NodeID
	pos      int
}

// Builder accumulates nodes and depends-on edges before being configured
// into an immutable, executable graph via Build.
type Builder struct {
	nodes []Action
	deps  [][]NodeID // deps[n] = nodes that n depends on, in AddEdge insertion order
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddNode registers a new action and returns its id.
func (b *Builder) AddNode(a Action) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, a)
	b.deps = append(b.deps, nil)
	return id
}

// AddEdge records that node depends on dependsOn: dependsOn must complete
// before node runs, and its output becomes one of node's inputs. Both ids
// must have been returned by AddNode on this builder.
func (b *Builder) AddEdge(node, dependsOn NodeID) error {
	if !b.valid(node) || !b.valid(dependsOn) {
		return ErrUnknownNode
	}
	b.deps[node] = append(b.deps[node], dependsOn)
	return nil
}

func (b *Builder) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(b.nodes)
}

// Build topologically sorts the accumulated graph via Kahn's algorithm,
// iterating node ids in insertion order so that ties between simultaneously
// ready nodes break deterministically (spec §4.4). If any node remains with
// a non-zero in-degree once the algorithm stalls, Build fails with
// GraphHasCycle listing exactly those node ids.
func (b *Builder) Build() (*Configured, error) {
	n := len(b.nodes)
	inDegree := make([]int, n)
	dependentSlots := make([][]slot, n)

	for node, deps := range b.deps {
		inDegree[node] = len(deps)
		for pos, dep := range deps {
			dependentSlots[dep] = append(dependentSlots[dep], slot{consumer: NodeID(node), pos: pos})
		}
	}

	remaining := make([]int, n)
	copy(remaining, inDegree)

	queue := make([]NodeID, 0, n)
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			queue = append(queue, NodeID(i))
		}
	}

	order := make([]NodeID, 0, n)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, sl := range dependentSlots[id] {
			remaining[sl.consumer]--
			if remaining[sl.consumer] == 0 {
				queue = append(queue, sl.consumer)
			}
		}
	}

	if len(order) != n {
		var cyclic []NodeID
		for i := 0; i < n; i++ {
			if remaining[i] > 0 {
				cyclic = append(cyclic, NodeID(i))
			}
		}
		return nil, &GraphHasCycle{Nodes: cyclic}
	}

	return &Configured{
		nodes:          b.nodes,
		deps:           b.deps,
		inDegree:       inDegree,
		dependentSlots: dependentSlots,
		order:          order,
	}, nil
}
