package graph

import (
	"context"
	"errors"
	"math/rand"
)

// Sampling limits.
const (
	// DefaultDistributionSample caps the node sample used by
	// PathLengthDistribution, independent of subset size.
	DefaultDistributionSample = 100

	// maxSampledPairs bounds the pair space used to derive the default
	// attempt budget.
	maxSampledPairs = 1_000_000

	// attemptsPerPair scales the pair bound into an attempt budget.
	attemptsPerPair = 10
)

// PathSample is the outcome of SamplePathLengths.
type PathSample struct {
	// Lengths holds one shortest-path length per connected sampled pair.
	Lengths []int
	// Unreachable counts sampled pairs with no path.
	Unreachable int
	// Attempts counts pairs drawn with distinct endpoints.
	Attempts int
}

// DefaultMaxAttempts is min(1e6, n(n-1)/2) * 10, the attempt budget used when
// the caller does not set one.
func DefaultMaxAttempts(n int) int {
	pairs := n * (n - 1) / 2
	if n > 1<<16 || pairs > maxSampledPairs {
		pairs = maxSampledPairs
	}
	return pairs * attemptsPerPair
}

// SamplePathLengths draws uniformly random node pairs (i, j), i != j, and
// records their shortest-path length until sampleSize lengths are collected
// or maxAttempts distinct pairs have been tried. Unreachable pairs count as
// attempts but not as samples. The result is shorter than sampleSize when the
// budget runs out; that is not an error.
//
// Draws with i == j are rejected and redrawn. With fewer than two nodes no
// pair exists and an empty sample is returned.
func SamplePathLengths(ctx context.Context, s Store, rng *rand.Rand, sampleSize, maxAttempts int) (PathSample, error) {
	var out PathSample
	n := s.NodeCount()
	if sampleSize <= 0 || maxAttempts <= 0 || n < 2 {
		return out, nil
	}
	out.Lengths = make([]int, 0, sampleSize)

	for len(out.Lengths) < sampleSize && out.Attempts < maxAttempts {
		i := NodeID(rng.Intn(n))
		j := NodeID(rng.Intn(n))
		if i == j {
			continue
		}
		out.Attempts++

		d, err := Distance(ctx, s, i, j)
		switch {
		case err == nil:
			out.Lengths = append(out.Lengths, d)
		case errors.Is(err, ErrNoPath):
			out.Unreachable++
		default:
			return out, err
		}
	}
	return out, nil
}

// LengthDistribution is a histogram of shortest-path lengths over the ordered
// pairs of a node sample.
type LengthDistribution struct {
	// Histogram maps distance to the number of ordered pairs at that distance.
	Histogram map[int]int
	// Sample is the set of nodes the histogram was computed over.
	Sample []NodeID
	// Pairs is the total number of counted ordered pairs.
	Pairs int
}

// PathLengthDistribution samples min(maxSample, len(subset)) nodes from subset
// without replacement and runs a full BFS from each, counting distances to the
// other sampled nodes only. Cost is quadratic in the sample, not the graph.
// maxSample <= 0 uses DefaultDistributionSample.
func PathLengthDistribution(ctx context.Context, s Store, rng *rand.Rand, subset []NodeID, maxSample int) (LengthDistribution, error) {
	if maxSample <= 0 {
		maxSample = DefaultDistributionSample
	}
	k := min(maxSample, len(subset))
	out := LengthDistribution{Histogram: make(map[int]int)}
	if k == 0 {
		return out, nil
	}

	// Partial Fisher-Yates over a copy leaves the caller's subset untouched.
	pool := make([]NodeID, len(subset))
	copy(pool, subset)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out.Sample = pool[:k]
	if k < 2 {
		return out, nil
	}
	inSample := mask(s.NodeCount(), out.Sample)

	for _, src := range out.Sample {
		remaining := k - 1
		_, err := Expansion{
			Seeds: []NodeID{src},
			Visit: func(id NodeID, depth int) bool {
				if id == src || !inSample[id] {
					return true
				}
				out.Histogram[depth]++
				out.Pairs++
				remaining--
				return remaining > 0
			},
		}.Run(ctx, s)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
