package graph

import (
	"fmt"
	"slices"
)

// Builder accumulates nodes and edges for a single Graph.
// It is not safe for concurrent use; the load path is single-threaded.
type Builder struct {
	titles []string
	idMap  map[string]NodeID
	adj    [][]NodeID
	built  bool
}

// NewBuilder returns a builder with room for capacity nodes.
func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{
		titles: make([]string, 0, capacity),
		idMap:  make(map[string]NodeID, capacity),
		adj:    make([][]NodeID, 0, capacity),
	}
}

// AddNode appends a node and returns its id, which is its position in the
// titles sequence. Only the first occurrence of a duplicated title is
// registered for IDOf; later duplicates still get their own id.
func (b *Builder) AddNode(title string) NodeID {
	id := NodeID(len(b.titles))
	b.titles = append(b.titles, title)
	b.adj = append(b.adj, nil)
	if _, ok := b.idMap[title]; !ok {
		b.idMap[title] = id
	}
	return id
}

// NodeCount returns the number of nodes added so far.
func (b *Builder) NodeCount() int {
	return len(b.titles)
}

// AddEdge records the undirected edge {u, v}. Self-loops are ignored and
// duplicates are collapsed at Build time. Endpoints must already exist.
func (b *Builder) AddEdge(u, v int) error {
	n := len(b.titles)
	if u < 0 || u >= n || v < 0 || v >= n {
		return &MalformedInputError{Reason: fmt.Sprintf("edge (%d, %d) references a node outside [0, %d)", u, v, n)}
	}
	if u == v {
		return nil
	}
	b.adj[u] = append(b.adj[u], NodeID(v))
	b.adj[v] = append(b.adj[v], NodeID(u))
	return nil
}

// Build freezes the accumulated data into a Graph. The builder must not be
// used afterwards.
func (b *Builder) Build() *Graph {
	if b.built {
		panic("graph: Builder.Build called twice")
	}
	b.built = true

	n := len(b.titles)
	firstOut := make([]uint32, n+1)
	total := 0
	for i, list := range b.adj {
		slices.Sort(list)
		list = slices.Compact(list)
		b.adj[i] = list
		total += len(list)
	}

	head := make([]NodeID, 0, total)
	for i, list := range b.adj {
		firstOut[i] = uint32(len(head))
		head = append(head, list...)
		b.adj[i] = nil
	}
	firstOut[n] = uint32(len(head))

	return &Graph{
		titles:   b.titles,
		idMap:    b.idMap,
		firstOut: firstOut,
		head:     head,
		edges:    total / 2,
	}
}

// Load builds a graph from in-memory titles and edge pairs.
// It fails with ErrMalformedInput if any endpoint is outside [0, len(titles)).
func Load(titles []string, edges [][2]int) (*Graph, error) {
	b := NewBuilder(len(titles))
	for _, t := range titles {
		b.AddNode(t)
	}
	for i, e := range edges {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			if me, ok := err.(*MalformedInputError); ok {
				me.Line = i + 1
			}
			return nil, err
		}
	}
	return b.Build(), nil
}
