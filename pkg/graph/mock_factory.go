package graph

import (
	"fmt"
	"math/rand"
)

// MockFactory constructs graph scenarios for tests in this and dependent
// packages. Titles are "N<id>" unless given explicitly.
type MockFactory struct {
	b *Builder
}

func NewMockFactory() *MockFactory {
	return &MockFactory{b: NewBuilder(0)}
}

// Nodes adds titled nodes and returns their ids.
func (m *MockFactory) Nodes(titles ...string) []NodeID {
	ids := make([]NodeID, len(titles))
	for i, t := range titles {
		ids[i] = m.b.AddNode(t)
	}
	return ids
}

// Anonymous adds n nodes titled by id.
func (m *MockFactory) Anonymous(n int) []NodeID {
	ids := make([]NodeID, n)
	for i := range ids {
		ids[i] = m.b.AddNode(fmt.Sprintf("N%d", m.b.NodeCount()))
	}
	return ids
}

// Edge links u and v. It panics on out-of-range ids; fixtures are static.
func (m *MockFactory) Edge(u, v NodeID) *MockFactory {
	if err := m.b.AddEdge(int(u), int(v)); err != nil {
		panic(err)
	}
	return m
}

// Chain links ids in sequence: ids[0]-ids[1]-...-ids[k].
func (m *MockFactory) Chain(ids ...NodeID) *MockFactory {
	for i := 1; i < len(ids); i++ {
		m.Edge(ids[i-1], ids[i])
	}
	return m
}

// Clique links every pair in ids.
func (m *MockFactory) Clique(ids ...NodeID) *MockFactory {
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			m.Edge(ids[i], ids[j])
		}
	}
	return m
}

// Random adds n nodes and edges random edges between them (self-loops and
// repeats collapse, so the final edge count may be lower).
func (m *MockFactory) Random(rng *rand.Rand, n, edges int) []NodeID {
	ids := m.Anonymous(n)
	if n < 2 {
		return ids
	}
	for i := 0; i < edges; i++ {
		m.Edge(ids[rng.Intn(n)], ids[rng.Intn(n)])
	}
	return ids
}

// Build freezes the scenario.
func (m *MockFactory) Build() *Graph {
	return m.b.Build()
}
