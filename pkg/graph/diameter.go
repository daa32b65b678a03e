package graph

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DiameterMode selects how the diameter of a node subset is computed.
type DiameterMode int

const (
	// DiameterApproximate runs the double-sweep lower bound: two BFS passes.
	DiameterApproximate DiameterMode = iota
	// DiameterExact runs one BFS per subset node. Quadratic; budgeted.
	DiameterExact
)

func (m DiameterMode) String() string {
	switch m {
	case DiameterExact:
		return "exact"
	default:
		return "approximate"
	}
}

// ParseDiameterMode accepts "exact", "approximate" or "approx".
func ParseDiameterMode(s string) (DiameterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return DiameterExact, nil
	case "approximate", "approx", "":
		return DiameterApproximate, nil
	}
	return DiameterApproximate, fmt.Errorf("graph: unknown diameter mode %q", s)
}

// Diameter is a diameter value tagged with how it was obtained.
type Diameter struct {
	Value int `json:"value"`
	// Exact is false when Value is a double-sweep lower bound.
	Exact bool `json:"exact"`
	// BudgetExceeded is true when exact mode was requested but the size or
	// time budget forced the approximate fallback.
	BudgetExceeded bool `json:"budget_exceeded"`
	// From and To are a pair of subset nodes at distance Value.
	From NodeID `json:"-"`
	To   NodeID `json:"-"`
}

// DiameterOptions configures EstimateDiameter.
type DiameterOptions struct {
	Mode DiameterMode
	// MaxNodes caps the subset size for exact mode. 0 means no cap.
	MaxNodes int
	// Timeout caps the wall time of exact mode. 0 means no cap beyond ctx.
	Timeout time.Duration
	// Workers is the number of concurrent BFS sweeps in exact mode.
	// 0 means runtime.GOMAXPROCS(0).
	Workers int
}

// EstimateDiameter computes the diameter of the subgraph induced by subset.
//
// In exact mode a subset larger than MaxNodes, or a run that outlives
// Timeout, falls back to the double-sweep estimate with BudgetExceeded set.
// Cancellation of ctx itself is returned as an error, never as a fallback.
func EstimateDiameter(ctx context.Context, s Store, subset []NodeID, opts DiameterOptions) (Diameter, error) {
	if opts.Mode != DiameterExact {
		return ApproxDiameter(ctx, s, subset)
	}

	if opts.MaxNodes > 0 && len(subset) > opts.MaxNodes {
		return approxFallback(ctx, s, subset)
	}

	exactCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		exactCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	d, err := ExactDiameter(exactCtx, s, subset, opts.Workers)
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return Diameter{}, ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return approxFallback(ctx, s, subset)
	}
	return Diameter{}, err
}

func approxFallback(ctx context.Context, s Store, subset []NodeID) (Diameter, error) {
	d, err := ApproxDiameter(ctx, s, subset)
	if err != nil {
		return Diameter{}, err
	}
	d.BudgetExceeded = true
	return d, nil
}

// ApproxDiameter runs the double-sweep heuristic inside subset: BFS from
// subset[0] to its farthest node a, then BFS from a. The eccentricity of a is
// returned as a lower bound on the diameter.
func ApproxDiameter(ctx context.Context, s Store, subset []NodeID) (Diameter, error) {
	if len(subset) == 0 {
		return Diameter{}, nil
	}
	within := mask(s.NodeCount(), subset)

	first, err := Expansion{Seeds: subset[:1], Within: within}.Run(ctx, s)
	if err != nil {
		return Diameter{}, err
	}
	a, _ := first.Farthest()

	second, err := Expansion{Seeds: []NodeID{a}, Within: within}.Run(ctx, s)
	if err != nil {
		return Diameter{}, err
	}
	b, ecc := second.Farthest()
	return Diameter{Value: ecc, From: a, To: b}, nil
}

// ExactDiameter returns the maximum eccentricity over subset, computed with
// one BFS per node spread over workers goroutines. Pairs that are not
// connected inside subset are ignored.
func ExactDiameter(ctx context.Context, s Store, subset []NodeID, workers int) (Diameter, error) {
	if len(subset) == 0 {
		return Diameter{Exact: true}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(subset))
	within := mask(s.NodeCount(), subset)

	best := make([]Diameter, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := Diameter{Exact: true, From: subset[0], To: subset[0]}
			for i := w; i < len(subset); i += workers {
				src := subset[i]
				sw, err := Expansion{Seeds: []NodeID{src}, Within: within}.Run(gctx, s)
				if err != nil {
					return err
				}
				far, ecc := sw.Farthest()
				if ecc > local.Value {
					local.Value, local.From, local.To = ecc, src, far
				}
			}
			best[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Diameter{}, err
	}

	out := best[0]
	for _, d := range best[1:] {
		if d.Value > out.Value {
			out = d
		}
	}
	return out, nil
}
