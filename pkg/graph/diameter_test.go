package graph

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiameter_Scenario(t *testing.T) {
	g := scenario(t)
	ctx := context.Background()
	p, err := Components(ctx, g)
	require.NoError(t, err)
	largest := p.Largest().Nodes

	exact, err := ExactDiameter(ctx, g, largest, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, exact.Value)
	assert.True(t, exact.Exact)

	approx, err := ApproxDiameter(ctx, g, largest)
	require.NoError(t, err)
	assert.Equal(t, 2, approx.Value)
	assert.False(t, approx.Exact)
	assert.False(t, approx.BudgetExceeded)
}

func TestApproxDiameter_IsLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ctx := context.Background()

	for round := 0; round < 30; round++ {
		f := NewMockFactory()
		f.Random(rng, 30, 20+rng.Intn(40))
		g := f.Build()

		p, err := Components(ctx, g)
		require.NoError(t, err)
		subset := p.Largest().Nodes

		exact, err := ExactDiameter(ctx, g, subset, 0)
		require.NoError(t, err)
		approx, err := ApproxDiameter(ctx, g, subset)
		require.NoError(t, err)

		assert.LessOrEqual(t, approx.Value, exact.Value)
		d, err := Distance(ctx, g, exact.From, exact.To)
		require.NoError(t, err)
		assert.Equal(t, exact.Value, d, "endpoints realise the diameter")
	}
}

func TestExactDiameter_WorkerCountDoesNotMatter(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(12)
	g := f.Chain(ids...).Build()
	ctx := context.Background()

	for _, workers := range []int{1, 3, 12, 50} {
		d, err := ExactDiameter(ctx, g, ids, workers)
		require.NoError(t, err)
		assert.Equal(t, 11, d.Value, "workers=%d", workers)
	}
}

func TestDiameter_InducedSubsetOnly(t *testing.T) {
	// Ring of 6 has diameter 3. Restricted to {0,1,2} the ring is cut and
	// only the chain 0-1-2 remains.
	f := NewMockFactory()
	ids := f.Anonymous(6)
	g := f.Chain(ids...).Edge(ids[5], ids[0]).Build()
	ctx := context.Background()

	full, err := ExactDiameter(ctx, g, ids, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, full.Value)

	sub, err := ExactDiameter(ctx, g, ids[:3], 1)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Value)
}

func TestEstimateDiameter_Modes(t *testing.T) {
	f := NewMockFactory()
	ids := f.Anonymous(2000)
	g := f.Chain(ids...).Build()
	ctx := context.Background()

	t.Run("approximate", func(t *testing.T) {
		d, err := EstimateDiameter(ctx, g, ids, DiameterOptions{Mode: DiameterApproximate})
		require.NoError(t, err)
		assert.Equal(t, 1999, d.Value)
		assert.False(t, d.Exact)
		assert.False(t, d.BudgetExceeded)
	})

	t.Run("exact within budget", func(t *testing.T) {
		d, err := EstimateDiameter(ctx, g, ids[:50], DiameterOptions{Mode: DiameterExact, MaxNodes: 100})
		require.NoError(t, err)
		assert.Equal(t, 49, d.Value)
		assert.True(t, d.Exact)
		assert.False(t, d.BudgetExceeded)
	})

	t.Run("size budget exceeded", func(t *testing.T) {
		d, err := EstimateDiameter(ctx, g, ids, DiameterOptions{Mode: DiameterExact, MaxNodes: 100})
		require.NoError(t, err)
		assert.Equal(t, 1999, d.Value)
		assert.False(t, d.Exact)
		assert.True(t, d.BudgetExceeded)
	})

	t.Run("time budget exceeded", func(t *testing.T) {
		d, err := EstimateDiameter(ctx, g, ids, DiameterOptions{Mode: DiameterExact, Timeout: time.Nanosecond})
		require.NoError(t, err)
		assert.False(t, d.Exact)
		assert.True(t, d.BudgetExceeded)
		assert.Equal(t, 1999, d.Value)
	})

	t.Run("caller cancellation is an error", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := EstimateDiameter(cctx, g, ids, DiameterOptions{Mode: DiameterExact})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseDiameterMode(t *testing.T) {
	tests := []struct {
		in      string
		want    DiameterMode
		wantErr bool
	}{
		{"exact", DiameterExact, false},
		{"EXACT", DiameterExact, false},
		{"approx", DiameterApproximate, false},
		{"approximate", DiameterApproximate, false},
		{"", DiameterApproximate, false},
		{"fast", DiameterApproximate, true},
	}
	for _, tt := range tests {
		got, err := ParseDiameterMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDiameter_EmptySubset(t *testing.T) {
	g := scenario(t)
	d, err := EstimateDiameter(context.Background(), g, nil, DiameterOptions{Mode: DiameterExact})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Value)
	assert.True(t, d.Exact)
}
