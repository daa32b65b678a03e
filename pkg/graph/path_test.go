package graph

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

func TestFindPath_Scenario(t *testing.T) {
	g := scenario(t)
	ctx := context.Background()

	res, err := FindPath(ctx, g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, 2, res.Distance)

	_, err = FindPath(ctx, g, "A", "D")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPath))

	var np *NoPathError
	require.True(t, errors.As(err, &np))
	assert.Equal(t, NodeID(0), np.From)
	assert.Equal(t, NodeID(3), np.To)
}

func TestFindPath_SameTitle(t *testing.T) {
	g := scenario(t)
	for _, title := range []string{"A", "B", "C", "D"} {
		res, err := FindPath(context.Background(), g, title, title)
		require.NoError(t, err)
		assert.Equal(t, []string{title}, res.Path)
		assert.Equal(t, 0, res.Distance)
	}
}

func TestFindPath_ArticleNotFound(t *testing.T) {
	g := scenario(t)

	tests := []struct {
		name     string
		src, dst string
		missing  []string
	}{
		{"source missing", "Z", "A", []string{"Z"}},
		{"destination missing", "A", "Z", []string{"Z"}},
		{"both missing", "Y", "Z", []string{"Y", "Z"}},
		{"same missing title", "Z", "Z", []string{"Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindPath(context.Background(), g, tt.src, tt.dst)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrArticleNotFound))

			var nf *ArticleNotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tt.missing, nf.Titles)
			for _, title := range nf.Titles {
				_, ok := g.IDOf(title)
				assert.False(t, ok)
			}
		})
	}
}

func TestShortestPath_CancelledContext(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(10)
	g := f.Chain(ids...).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ShortestPath(ctx, g, ids[0], ids[9])
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShortestPath_PrefersFirstDiscovery(t *testing.T) {
	// 0 reaches 3 via 1 or 2; 1 is discovered first.
	f := NewMockFactory()
	ids := f.Anonymous(4)
	g := f.Edge(ids[0], ids[1]).Edge(ids[0], ids[2]).Edge(ids[1], ids[3]).Edge(ids[2], ids[3]).Build()

	p, err := ShortestPath(context.Background(), g, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{0, 1, 3}, p.Nodes)
}

// toGonum mirrors g as a gonum undirected graph for cross-checks.
func toGonum(g *Graph) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for i := 0; i < g.NodeCount(); i++ {
		ug.AddNode(simple.Node(i))
	}
	for u := 0; u < g.NodeCount(); u++ {
		for _, v := range g.Neighbors(NodeID(u)) {
			if int(v) > u {
				ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node(int(v))))
			}
		}
	}
	return ug
}

func TestShortestPath_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		f := NewMockFactory()
		f.Random(rng, 40, 45)
		g := f.Build()
		ug := toGonum(g)
		parts, err := Components(ctx, g)
		require.NoError(t, err)

		for q := 0; q < 30; q++ {
			src := NodeID(rng.Intn(g.NodeCount()))
			dst := NodeID(rng.Intn(g.NodeCount()))
			want := path.DijkstraFrom(ug.Node(int64(src)), ug).WeightTo(int64(dst))

			p, err := ShortestPath(ctx, g, src, dst)
			if math.IsInf(want, 1) {
				require.ErrorIs(t, err, ErrNoPath)
				assert.False(t, parts.Same(src, dst), "NoPath must mean different components")
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, int(want), p.Distance())
			assertValidPath(t, g, p, src, dst)
		}
	}
}

func assertValidPath(t *testing.T, g *Graph, p Path, src, dst NodeID) {
	t.Helper()
	require.NotEmpty(t, p.Nodes)
	assert.Equal(t, src, p.Nodes[0])
	assert.Equal(t, dst, p.Nodes[len(p.Nodes)-1])
	assert.Equal(t, len(p.Nodes)-1, p.Distance())
	for i := 1; i < len(p.Nodes); i++ {
		assert.True(t, g.HasEdge(p.Nodes[i-1], p.Nodes[i]), "step %d is not an edge", i)
	}
}
