package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansion_DistancesAndParents(t *testing.T) {
	g := scenario(t)

	sw, err := Expansion{Seeds: []NodeID{0}, Parents: true}.Run(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, []int32{0, 1, 2, -1}, sw.Dist)
	assert.Equal(t, []int32{-1, 0, 1, -1}, sw.Parent)
	assert.Equal(t, []NodeID{0, 1, 2}, sw.Order)
	assert.False(t, sw.Reached(3))

	far, d := sw.Farthest()
	assert.Equal(t, NodeID(2), far)
	assert.Equal(t, 2, d)
}

func TestExpansion_TargetStopsOnDequeue(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(5)
	g := f.Chain(ids...).Build()

	sw, err := Expansion{Seeds: []NodeID{0}, Target: 1, HasTarget: true}.Run(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, sw.Found)
	// The target is not expanded once dequeued.
	assert.Equal(t, []NodeID{0, 1}, sw.Order)
	assert.False(t, sw.Reached(2))
}

func TestExpansion_WithinRestrictsFrontier(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(4)
	// Square 0-1-2-3-0; excluding 1 forces the long way round.
	g := f.Chain(ids...).Edge(ids[3], ids[0]).Build()

	within := mask(g.NodeCount(), []NodeID{0, 2, 3})
	sw, err := Expansion{Seeds: []NodeID{0}, Within: within}.Run(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, sw.Reached(1))
	assert.Equal(t, int32(2), sw.Dist[2])
}

func TestExpansion_VisitCanStop(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(10)
	g := f.Chain(ids...).Build()

	var seen []NodeID
	sw, err := Expansion{
		Seeds: []NodeID{0},
		Visit: func(id NodeID, depth int) bool {
			seen = append(seen, id)
			return depth < 3
		},
	}.Run(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, sw.Stopped)
	assert.Equal(t, []NodeID{0, 1, 2, 3}, seen)
}

func TestExpansion_ContinueSharesVisitedSet(t *testing.T) {
	g := scenario(t)
	ctx := context.Background()
	sw := NewSweep(g.NodeCount(), false)

	require.NoError(t, Expansion{Seeds: []NodeID{1}}.Continue(ctx, g, sw))
	assert.Len(t, sw.Order, 3)

	// Seeding an already reached node is a no-op.
	require.NoError(t, Expansion{Seeds: []NodeID{2}}.Continue(ctx, g, sw))
	assert.Len(t, sw.Order, 3)

	require.NoError(t, Expansion{Seeds: []NodeID{3}}.Continue(ctx, g, sw))
	assert.Equal(t, []NodeID{1, 0, 2, 3}, sw.Order)
	assert.Equal(t, int32(0), sw.Dist[3])
}

func TestExpansion_SeedOutOfRangePanics(t *testing.T) {
	g := scenario(t)
	assert.Panics(t, func() {
		_, _ = Expansion{Seeds: []NodeID{42}}.Run(context.Background(), g)
	})
}
