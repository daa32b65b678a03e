package graph

import (
	"sync"
)

// UnionFind implements concurrent DSU.
// Supports amortized O(1) checks.
type UnionFind struct {
	parent []int
	rank   []int
	sets   int
	mu     sync.Mutex
}

// NewUnionFind initializes DSU with n singleton sets.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	rank := make([]int, n)
	for i := 0; i < n; i++ {
		parent[i] = i
	}
	return &UnionFind{parent: parent, rank: rank, sets: n}
}

// Find returns set representative.
func (uf *UnionFind) Find(i int) int {
	uf.mu.Lock() // Lock for path compression
	defer uf.mu.Unlock()
	return uf.findInternal(i)
}

func (uf *UnionFind) findInternal(i int) int {
	if i < 0 || i >= len(uf.parent) {
		return -1
	}
	// Iterative two-pass compression; recursion depth is unbounded on
	// adversarial union orders before the first compression.
	root := i
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[i] != root {
		next := uf.parent[i]
		uf.parent[i] = root
		i = next
	}
	return root
}

// Union merges sets. It reports whether two distinct sets were merged.
func (uf *UnionFind) Union(i, j int) bool {
	uf.mu.Lock()
	defer uf.mu.Unlock()

	rootI := uf.findInternal(i)
	rootJ := uf.findInternal(j)

	if rootI == -1 || rootJ == -1 || rootI == rootJ {
		return false
	}

	// Union by rank
	if uf.rank[rootI] < uf.rank[rootJ] {
		uf.parent[rootI] = rootJ
	} else if uf.rank[rootI] > uf.rank[rootJ] {
		uf.parent[rootJ] = rootI
	} else {
		uf.parent[rootJ] = rootI
		uf.rank[rootI]++
	}
	uf.sets--
	return true
}

// Connected checks connectivity.
func (uf *UnionFind) Connected(i, j int) bool {
	return uf.Find(i) == uf.Find(j)
}

// Sets returns the number of disjoint sets.
func (uf *UnionFind) Sets() int {
	uf.mu.Lock()
	defer uf.mu.Unlock()
	return uf.sets
}

// ConnectivityIndex answers "are u and v connected?" in O(1) over a frozen
// graph. It is built once from a union-find pass over every edge and then
// flattened, so reads take no locks.
type ConnectivityIndex struct {
	root  []uint32
	count int
}

// NewConnectivityIndex builds the index for s.
func NewConnectivityIndex(s Store) *ConnectivityIndex {
	n := s.NodeCount()
	uf := NewUnionFind(n)
	for u := 0; u < n; u++ {
		for _, v := range s.Neighbors(NodeID(u)) {
			if int(v) > u {
				uf.Union(u, int(v))
			}
		}
	}

	root := make([]uint32, n)
	for i := range root {
		root[i] = uint32(uf.findInternal(i))
	}
	return &ConnectivityIndex{root: root, count: uf.sets}
}

// Connected reports whether u and v lie in the same component.
func (c *ConnectivityIndex) Connected(u, v NodeID) bool {
	return c.root[u] == c.root[v]
}

// Components returns the number of connected components.
func (c *ConnectivityIndex) Components() int {
	return c.count
}
