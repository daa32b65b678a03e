package graph

import (
	"context"
	"slices"
	"sort"
)

// Component is a maximal connected node set. Nodes are sorted ascending, so
// Nodes[0] is the smallest id in the component.
type Component struct {
	Nodes []NodeID
}

// Size returns the number of nodes.
func (c Component) Size() int { return len(c.Nodes) }

// Min returns the smallest node id.
func (c Component) Min() NodeID { return c.Nodes[0] }

// Contains reports whether id is in the component.
func (c Component) Contains(id NodeID) bool {
	_, ok := slices.BinarySearch(c.Nodes, id)
	return ok
}

// Partition is the component decomposition of a graph. Components are ordered
// by their smallest node id.
type Partition struct {
	Components []Component
	// label[v] is the index into Components of v's component.
	label []int32
}

// Components partitions every node of s into connected components by running
// one expansion from each not-yet-labelled node in increasing id order.
// Isolated nodes form singleton components.
func Components(ctx context.Context, s Store) (*Partition, error) {
	n := s.NodeCount()
	p := &Partition{label: make([]int32, n)}

	// One sweep is shared across all component expansions so the whole
	// decomposition is O(N + E).
	sw := NewSweep(n, false)
	for v := 0; v < n; v++ {
		if sw.Reached(NodeID(v)) {
			continue
		}
		idx := int32(len(p.Components))
		start := len(sw.Order)
		if err := (Expansion{Seeds: []NodeID{NodeID(v)}}).Continue(ctx, s, sw); err != nil {
			return nil, err
		}
		nodes := slices.Clone(sw.Order[start:])
		for _, id := range nodes {
			p.label[id] = idx
		}
		slices.Sort(nodes)
		p.Components = append(p.Components, Component{Nodes: nodes})
	}
	return p, nil
}

// Count returns the number of components.
func (p *Partition) Count() int { return len(p.Components) }

// Of returns the component containing id.
func (p *Partition) Of(id NodeID) Component {
	return p.Components[p.label[id]]
}

// Same reports whether u and v are in the same component.
func (p *Partition) Same(u, v NodeID) bool {
	return p.label[u] == p.label[v]
}

// Largest returns the component with the most nodes. Ties go to the component
// with the lowest minimum node id. The zero Component is returned for an empty
// partition.
func (p *Partition) Largest() Component {
	var best Component
	for _, c := range p.Components {
		if c.Size() > best.Size() || (c.Size() == best.Size() && c.Size() > 0 && c.Min() < best.Min()) {
			best = c
		}
	}
	return best
}

// SizeDistribution maps component size to how many components have it.
func (p *Partition) SizeDistribution() map[int]int {
	dist := make(map[int]int)
	for _, c := range p.Components {
		dist[c.Size()]++
	}
	return dist
}

// SizeRank is one row of the ranked size distribution.
type SizeRank struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// Ranked returns the size distribution ordered by size, largest first.
func (p *Partition) Ranked() []SizeRank {
	dist := p.SizeDistribution()
	out := make([]SizeRank, 0, len(dist))
	for size, count := range dist {
		out = append(out, SizeRank{Size: size, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}
