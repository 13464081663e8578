package evaluator

import (
	"sync"

	"github.com/matzehuels/figx/pkg/graph"
)

// Event is one progress notification Reporter emits: a node starting or
// finishing. The CLI's bubbletea dashboard consumes a channel of these to
// render one row per in-flight action without pkg/graph or pkg/evaluator
// needing to know anything about terminal rendering.
type Event struct {
	Handle graph.Handle
	Info   graph.DiagnosticsInfo
	Done   bool
}

// Reporter implements graph.Progress by emitting Events onto a channel,
// keeping pkg/graph and pkg/evaluator free of any UI library dependency
// (spec's Progress interface is deliberately narrow for this reason).
// Construct with NewReporter; call Close once Run returns to release the
// channel.
type Reporter struct {
	events chan Event

	mu      sync.Mutex
	nextSeq int64
}

// NewReporter creates a Reporter whose Events channel has the given
// buffer size (0 is a valid, if slow, choice for a headless caller that
// drains synchronously).
func NewReporter(buffer int) *Reporter {
	return &Reporter{events: make(chan Event, buffer)}
}

// Events returns the channel the dashboard should range over. It is
// closed by Close.
func (r *Reporter) Events() <-chan Event { return r.events }

// Start implements graph.Progress.
func (r *Reporter) Start(id graph.NodeID, info graph.DiagnosticsInfo) graph.Handle {
	r.mu.Lock()
	r.nextSeq++
	h := graph.Handle(r.nextSeq)
	r.mu.Unlock()

	r.events <- Event{Handle: h, Info: info}
	return h
}

// Done implements graph.Progress.
func (r *Reporter) Done(h graph.Handle) {
	r.events <- Event{Handle: h, Done: true}
}

// Close releases the Events channel. Call after Run returns.
func (r *Reporter) Close() { close(r.events) }
