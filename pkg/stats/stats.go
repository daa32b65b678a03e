// Package stats runs the offline statistics job: components, then sampled
// path lengths, the in-component distance histogram, and the diameter of the
// largest component.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// DefaultSampleSize is the number of random pairs sampled when unset.
const DefaultSampleSize = 5000

var (
	tracer = otel.Tracer("wikipath/stats")
	meter  = otel.Meter("wikipath/stats")
)

// Options configures Compute. The zero value is usable.
type Options struct {
	// SampleSize is the number of connected pairs to sample.
	SampleSize int
	// MaxAttempts bounds the pair draws; 0 uses graph.DefaultMaxAttempts.
	MaxAttempts int
	// DistributionSample caps the node sample for the in-component histogram.
	DistributionSample int
	// Seed drives every random choice. Equal seeds give equal reports.
	Seed     int64
	Diameter graph.DiameterOptions
	Logger   *slog.Logger
}

func (o Options) withDefaults(n int) Options {
	if o.SampleSize == 0 {
		o.SampleSize = DefaultSampleSize
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = graph.DefaultMaxAttempts(n)
	}
	if o.DistributionSample == 0 {
		o.DistributionSample = graph.DefaultDistributionSample
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Compute builds the statistics report for g. The components pass runs first
// because the diameter and histogram stages need the largest component; the
// three later stages only read g and run concurrently, each with its own
// random source derived from Seed.
func Compute(ctx context.Context, g graph.Store, opts Options) (*Report, error) {
	opts = opts.withDefaults(g.NodeCount())
	logger := opts.Logger

	ctx, span := tracer.Start(ctx, "stats.Compute")
	defer span.End()
	span.SetAttributes(
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
		attribute.Int64("stats.seed", opts.Seed),
	)

	stageDuration, _ := meter.Float64Histogram("wikipath.stats.stage.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of each statistics stage"),
	)
	timed := func(ctx context.Context, name string, fn func(context.Context) error) error {
		ctx, s := tracer.Start(ctx, "stats."+name)
		defer s.End()
		start := time.Now()
		err := fn(ctx)
		elapsed := time.Since(start)
		stageDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("stage", name)))
		if err != nil {
			s.RecordError(err)
			s.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Info("Stage complete", "stage", name, "duration", elapsed.String())
		return nil
	}

	r := &Report{
		GraphInfo: GraphInfo{
			NumNodes:  g.NodeCount(),
			NumEdges:  g.EdgeCount(),
			AvgDegree: avgDegree(g),
		},
		Seed: opts.Seed,
	}

	var parts *graph.Partition
	err := timed(ctx, "components", func(ctx context.Context) error {
		var err error
		parts, err = graph.Components(ctx, g)
		return err
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	largest := parts.Largest()
	r.ComponentStats = ComponentStats{
		NumComponents:             parts.Count(),
		LargestComponentSize:      largest.Size(),
		ComponentSizeDistribution: parts.SizeDistribution(),
		SizeRanking:               parts.Ranked(),
	}
	logger.Info("Components found", "components", parts.Count(), "largest", largest.Size())

	var (
		sample   graph.PathSample
		dist     graph.LengthDistribution
		diameter graph.Diameter
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return timed(egCtx, "sample_paths", func(ctx context.Context) error {
			var err error
			rng := rand.New(rand.NewSource(opts.Seed))
			sample, err = graph.SamplePathLengths(ctx, g, rng, opts.SampleSize, opts.MaxAttempts)
			return err
		})
	})
	eg.Go(func() error {
		return timed(egCtx, "component_distribution", func(ctx context.Context) error {
			var err error
			rng := rand.New(rand.NewSource(opts.Seed + 1))
			dist, err = graph.PathLengthDistribution(ctx, g, rng, largest.Nodes, opts.DistributionSample)
			return err
		})
	})
	eg.Go(func() error {
		return timed(egCtx, "diameter", func(ctx context.Context) error {
			var err error
			diameter, err = graph.EstimateDiameter(ctx, g, largest.Nodes, opts.Diameter)
			return err
		})
	})
	if err := eg.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if sample.Attempts > 0 && len(sample.Lengths) < opts.SampleSize {
		logger.Warn("Sample budget exhausted before reaching the requested size",
			"requested", opts.SampleSize,
			"sampled", len(sample.Lengths),
			"attempts", sample.Attempts,
		)
	}
	if diameter.BudgetExceeded {
		logger.Warn("Exact diameter over budget, reporting approximation", "value", diameter.Value)
	}

	r.PathStats = summarize(sample)
	r.PathStats.ComponentPathDistribution = dist.Histogram
	r.PathStats.ComponentSampleSize = len(dist.Sample)
	r.PathStats.Diameter = diameter

	span.SetAttributes(
		attribute.Int("stats.diameter", diameter.Value),
		attribute.Bool("stats.diameter.exact", diameter.Exact),
	)
	return r, nil
}

func summarize(s graph.PathSample) PathStats {
	ps := PathStats{
		SampledPaths:           len(s.Lengths),
		UnreachablePairs:       s.Unreachable,
		Attempts:               s.Attempts,
		PathLengths:            s.Lengths,
		PathLengthDistribution: make(map[int]int),
	}
	if ps.PathLengths == nil {
		ps.PathLengths = []int{}
	}
	if len(s.Lengths) == 0 {
		return ps
	}

	sum := 0
	ps.MinPathLength = s.Lengths[0]
	for _, l := range s.Lengths {
		sum += l
		ps.MinPathLength = min(ps.MinPathLength, l)
		ps.MaxPathLength = max(ps.MaxPathLength, l)
		ps.PathLengthDistribution[l]++
	}
	ps.AvgPathLength = float64(sum) / float64(len(s.Lengths))
	return ps
}

func avgDegree(g graph.Store) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / float64(g.NodeCount())
}
