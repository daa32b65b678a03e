package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario is the four-node fixture: A-B-C plus isolated D.
func scenario(t *testing.T) *Graph {
	t.Helper()
	g, err := Load([]string{"A", "B", "C", "D"}, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	return g
}

func TestLoad_Scenario(t *testing.T) {
	g := scenario(t)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []NodeID{0, 2}, g.Neighbors(1))
	assert.True(t, g.IsIsolated(3))
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 0))
	assert.False(t, g.HasEdge(0, 2))
	assert.InDelta(t, 1.0, g.AverageDegree(), 1e-9)

	id, ok := g.IDOf("C")
	require.True(t, ok)
	assert.Equal(t, NodeID(2), id)
	assert.Equal(t, "C", g.TitleOf(id))

	_, ok = g.IDOf("c")
	assert.False(t, ok, "lookup must be case-sensitive")
}

func TestLoad_DeduplicatesEdgesAndDropsSelfLoops(t *testing.T) {
	g, err := Load([]string{"A", "B", "C"}, [][2]int{
		{0, 1}, {1, 0}, {0, 1}, {2, 2}, {1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []NodeID{1}, g.Neighbors(0))
	assert.Equal(t, []NodeID{0, 2}, g.Neighbors(1))
	assert.Equal(t, []NodeID{1}, g.Neighbors(2))
}

func TestLoad_DuplicateTitlesResolveToFirstOccurrence(t *testing.T) {
	g, err := Load([]string{"Paris", "Texas", "Paris"}, nil)
	require.NoError(t, err)

	id, ok := g.IDOf("Paris")
	require.True(t, ok)
	assert.Equal(t, NodeID(0), id)

	// The later duplicate is still a node with its own title.
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, "Paris", g.TitleOf(2))
}

func TestLoad_RejectsOutOfRangeEndpoints(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]int
		line  int
	}{
		{"source too large", [][2]int{{0, 1}, {3, 0}}, 2},
		{"target too large", [][2]int{{0, 3}}, 1},
		{"negative", [][2]int{{0, 1}, {1, 2}, {-1, 0}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load([]string{"A", "B", "C"}, tt.edges)
			assert.Nil(t, g, "no partial graph on failure")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var me *MalformedInputError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.line, me.Line)
		})
	}
}

func TestTitleOf_PanicsOnInvalidID(t *testing.T) {
	g := scenario(t)
	assert.Panics(t, func() { g.TitleOf(4) })
	assert.Panics(t, func() { g.Neighbors(99) })
	assert.False(t, g.Valid(4))
	assert.True(t, g.Valid(3))
}

func TestTitles_IteratesInIDOrder(t *testing.T) {
	g := scenario(t)

	var got []string
	for id, title := range g.Titles() {
		assert.Equal(t, g.TitleOf(id), title)
		got = append(got, title)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestBuilder_BuildTwicePanics(t *testing.T) {
	b := NewBuilder(1)
	b.AddNode("A")
	b.Build()
	assert.Panics(t, func() { b.Build() })
}

func TestEmptyGraph(t *testing.T) {
	g, err := Load(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0.0, g.AverageDegree())
}
