package graph

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePathLengths_ZeroSampleSizeDrawsNothing(t *testing.T) {
	g := scenario(t)
	rng := rand.New(rand.NewSource(1))
	before := rand.New(rand.NewSource(1)).Int63()

	s, err := SamplePathLengths(context.Background(), g, rng, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, s.Lengths)
	assert.Equal(t, 0, s.Unreachable)
	assert.Equal(t, 0, s.Attempts)
	assert.Equal(t, before, rng.Int63(), "rng must be untouched")
}

func TestSamplePathLengths_Deterministic(t *testing.T) {
	f := NewMockFactory()
	f.Random(rand.New(rand.NewSource(3)), 200, 300)
	g := f.Build()
	ctx := context.Background()

	a, err := SamplePathLengths(ctx, g, rand.New(rand.NewSource(11)), 50, 1000)
	require.NoError(t, err)
	b, err := SamplePathLengths(ctx, g, rand.New(rand.NewSource(11)), 50, 1000)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Attempts, len(a.Lengths)+a.Unreachable)
}

func TestSamplePathLengths_BoundedByAttempts(t *testing.T) {
	// No edges: every pair is unreachable and the loop must stop at the budget.
	f := NewMockFactory()
	f.Anonymous(5)
	g := f.Build()

	s, err := SamplePathLengths(context.Background(), g, rand.New(rand.NewSource(5)), 10, 37)
	require.NoError(t, err)
	assert.Empty(t, s.Lengths)
	assert.Equal(t, 37, s.Unreachable)
	assert.Equal(t, 37, s.Attempts)
}

func TestSamplePathLengths_TooFewNodes(t *testing.T) {
	f := NewMockFactory()
	f.Anonymous(1)
	g := f.Build()

	s, err := SamplePathLengths(context.Background(), g, rand.New(rand.NewSource(5)), 10, 100)
	require.NoError(t, err)
	assert.Empty(t, s.Lengths)
	assert.Equal(t, 0, s.Attempts)
}

func TestSamplePathLengths_CompleteGraph(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(6)
	g := f.Clique(ids...).Build()

	s, err := SamplePathLengths(context.Background(), g, rand.New(rand.NewSource(8)), 25, DefaultMaxAttempts(g.NodeCount()))
	require.NoError(t, err)
	require.Len(t, s.Lengths, 25)
	for _, l := range s.Lengths {
		assert.Equal(t, 1, l)
	}
	assert.Equal(t, 25, s.Attempts)
}

func TestDefaultMaxAttempts(t *testing.T) {
	assert.Equal(t, 0, DefaultMaxAttempts(0))
	assert.Equal(t, 0, DefaultMaxAttempts(1))
	assert.Equal(t, 60, DefaultMaxAttempts(4))
	assert.Equal(t, 10_000_000, DefaultMaxAttempts(5000))
	assert.Equal(t, 10_000_000, DefaultMaxAttempts(10_000_000))
}

func TestPathLengthDistribution_CompleteGraph(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(4)
	g := f.Clique(ids...).Build()

	d, err := PathLengthDistribution(context.Background(), g, rand.New(rand.NewSource(2)), ids, 0)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 12}, d.Histogram)
	assert.Equal(t, 12, d.Pairs)
	assert.ElementsMatch(t, ids, d.Sample)
}

func TestPathLengthDistribution_SampleIsCapped(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(300)
	g := f.Chain(ids...).Build()
	subset := append([]NodeID(nil), ids...)

	d, err := PathLengthDistribution(context.Background(), g, rand.New(rand.NewSource(4)), subset, 20)
	require.NoError(t, err)
	assert.Len(t, d.Sample, 20)
	assert.Equal(t, 20*19, d.Pairs)
	assert.Equal(t, ids, subset, "caller subset is not reordered")

	total := 0
	for dist, count := range d.Histogram {
		assert.Greater(t, dist, 0)
		total += count
	}
	assert.Equal(t, d.Pairs, total)
}

func TestPathLengthDistribution_Chain(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(3)
	g := f.Chain(ids...).Build()

	d, err := PathLengthDistribution(context.Background(), g, rand.New(rand.NewSource(1)), ids, 100)
	require.NoError(t, err)
	// Ordered pairs: 0-1, 1-2 (and reverse) at 1; 0-2 (and reverse) at 2.
	assert.Equal(t, map[int]int{1: 4, 2: 2}, d.Histogram)
}

func TestPathLengthDistribution_Empty(t *testing.T) {
	g := scenario(t)
	d, err := PathLengthDistribution(context.Background(), g, rand.New(rand.NewSource(1)), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, d.Histogram)
	assert.Equal(t, 0, d.Pairs)
}
