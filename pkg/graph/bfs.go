package graph

import "context"

// contextCheckInterval is how many dequeues happen between ctx checks.
const contextCheckInterval = 1024

// unreached marks a node the expansion has not discovered.
const unreached int32 = -1

// Expansion configures one breadth-first frontier expansion. Every traversal
// in this package (shortest path, components, eccentricity, sampling) is an
// Expansion with a different stop condition.
type Expansion struct {
	// Seeds are the depth-0 nodes. Duplicates are ignored.
	Seeds []NodeID

	// Target stops the expansion as soon as it is dequeued.
	Target    NodeID
	HasTarget bool

	// Within restricts the expansion to nodes whose entry is true.
	// nil means the whole graph. Seeds outside Within are still expanded.
	Within []bool

	// Parents records the discovering predecessor of every reached node.
	Parents bool

	// Visit, when set, is called for each dequeued node with its depth.
	// Returning false stops the expansion.
	Visit func(id NodeID, depth int) bool
}

// Sweep is the result of an Expansion. It is owned by the caller.
type Sweep struct {
	// Dist holds the depth of each node, or -1 where unreached.
	Dist []int32
	// Parent holds the predecessor of each reached non-seed node, or -1.
	// Nil unless Expansion.Parents was set.
	Parent []int32
	// Order lists reached nodes in discovery order.
	Order []NodeID
	// Found is true if the Target was dequeued.
	Found bool
	// Stopped is true if Visit ended the expansion early.
	Stopped bool
}

// Farthest returns the last node discovered and its depth. For a completed
// sweep this is a node of maximum distance from the seeds.
func (s *Sweep) Farthest() (NodeID, int) {
	if len(s.Order) == 0 {
		return 0, 0
	}
	last := s.Order[len(s.Order)-1]
	return last, int(s.Dist[last])
}

// Reached reports whether id was discovered.
func (s *Sweep) Reached(id NodeID) bool {
	return int(id) < len(s.Dist) && s.Dist[id] != unreached
}

// Run performs the expansion over s. It returns ctx.Err() if the context is
// cancelled mid-sweep; the partial Sweep is discarded.
func (e Expansion) Run(ctx context.Context, s Store) (*Sweep, error) {
	sw := NewSweep(s.NodeCount(), e.Parents)
	if err := e.Continue(ctx, s, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

// NewSweep allocates an empty sweep for a graph of n nodes.
func NewSweep(n int, parents bool) *Sweep {
	sw := &Sweep{
		Dist:  make([]int32, n),
		Order: make([]NodeID, 0, min(n, 1024)),
	}
	for i := range sw.Dist {
		sw.Dist[i] = unreached
	}
	if parents {
		sw.Parent = make([]int32, n)
		for i := range sw.Parent {
			sw.Parent[i] = unreached
		}
	}
	return sw
}

// Continue expands e's seeds into an existing sweep. Nodes already reached by
// earlier expansions are treated as visited, and newly reached nodes are
// appended to sw.Order. Depths are relative to e's own seeds.
func (e Expansion) Continue(ctx context.Context, s Store, sw *Sweep) error {
	n := s.NodeCount()
	sw.Found, sw.Stopped = false, false
	start := len(sw.Order)

	for _, seed := range e.Seeds {
		if int(seed) >= n {
			panic("graph: expansion seed out of range")
		}
		if sw.Dist[seed] != unreached {
			continue
		}
		sw.Dist[seed] = 0
		sw.Order = append(sw.Order, seed)
	}

	// Order doubles as the FIFO queue; head is the dequeue cursor.
	for head := start; head < len(sw.Order); head++ {
		if (head-start)%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		cur := sw.Order[head]
		depth := sw.Dist[cur]

		if e.Visit != nil && !e.Visit(cur, int(depth)) {
			sw.Stopped = true
			return nil
		}
		if e.HasTarget && cur == e.Target {
			sw.Found = true
			return nil
		}

		for _, next := range s.Neighbors(cur) {
			if sw.Dist[next] != unreached {
				continue
			}
			if e.Within != nil && !e.Within[next] {
				continue
			}
			sw.Dist[next] = depth + 1
			if sw.Parent != nil {
				sw.Parent[next] = int32(cur)
			}
			sw.Order = append(sw.Order, next)
		}
	}
	return nil
}

// mask builds a membership slice for Expansion.Within.
func mask(n int, nodes []NodeID) []bool {
	m := make([]bool, n)
	for _, id := range nodes {
		m[id] = true
	}
	return m
}
