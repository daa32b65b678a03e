// Package graph holds the immutable article link graph and the traversal
// algorithms that run over it: single-pair shortest paths, connected
// components, diameter estimation and randomized path-length sampling.
//
// # Lifecycle
//
// A Graph is produced once by a Builder (or Load) and is never mutated after
// Build returns. Every exported read method is safe for concurrent use without
// locking. Algorithms allocate their own working memory per call, so any number
// of queries may run in parallel over one shared *Graph.
package graph

import (
	"fmt"
	"iter"
)

// NodeID is a dense node identifier in [0, NodeCount()).
type NodeID uint32

// Graph is a simple undirected graph in CSR layout.
// Neighbors of node i live in head[firstOut[i]:firstOut[i+1]].
type Graph struct {
	titles   []string
	idMap    map[string]NodeID
	firstOut []uint32
	head     []NodeID
	edges    int
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.titles)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// IDOf resolves an exact, case-sensitive title. Duplicate titles resolve to
// their first occurrence in the load order.
func (g *Graph) IDOf(title string) (NodeID, bool) {
	id, ok := g.idMap[title]
	return id, ok
}

// TitleOf returns the title for id. It panics if id is out of range.
func (g *Graph) TitleOf(id NodeID) string {
	g.mustValid(id)
	return g.titles[id]
}

// Neighbors returns the adjacency list of id. The slice is shared with the
// graph and must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	g.mustValid(id)
	return g.head[g.firstOut[id]:g.firstOut[id+1]]
}

// Degree returns the number of neighbors of id.
func (g *Graph) Degree(id NodeID) int {
	g.mustValid(id)
	return int(g.firstOut[id+1] - g.firstOut[id])
}

// IsIsolated reports whether id has no incident edges.
func (g *Graph) IsIsolated(id NodeID) bool {
	return g.Degree(id) == 0
}

// HasEdge reports whether u and v are adjacent.
// Adjacency lists are sorted, so this is a binary search.
func (g *Graph) HasEdge(u, v NodeID) bool {
	adj := g.Neighbors(u)
	lo, hi := 0, len(adj)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if adj[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(adj) && adj[lo] == v
}

// Valid reports whether id is in range.
func (g *Graph) Valid(id NodeID) bool {
	return int(id) < len(g.titles)
}

// Titles iterates (id, title) pairs in id order.
func (g *Graph) Titles() iter.Seq2[NodeID, string] {
	return func(yield func(NodeID, string) bool) {
		for i, t := range g.titles {
			if !yield(NodeID(i), t) {
				return
			}
		}
	}
}

// AverageDegree returns 2E/N, or 0 for an empty graph.
func (g *Graph) AverageDegree() float64 {
	if len(g.titles) == 0 {
		return 0
	}
	return 2 * float64(g.edges) / float64(len(g.titles))
}

func (g *Graph) mustValid(id NodeID) {
	if int(id) >= len(g.titles) {
		panic(fmt.Sprintf("graph: node id %d out of range [0, %d)", id, len(g.titles)))
	}
}
