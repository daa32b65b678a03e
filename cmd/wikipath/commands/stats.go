package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrSkyle/wikipath/pkg/config"
	"github.com/DrSkyle/wikipath/pkg/stats"
	"github.com/DrSkyle/wikipath/pkg/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute and persist link-graph statistics",
	Long: `Compute components, sampled path lengths and the diameter of the largest
component, then write the report to the configured store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runStats(ctx)
	},
}

func init() {
	d := config.Default()
	f := statsCmd.Flags()
	f.Int("sample-size", d.SampleSize, "Random pairs to sample")
	f.Int("max-attempts", d.MaxAttempts, "Pair draw budget (0 = min(1e6, n(n-1)/2) * 10)")
	f.Int("distribution-sample", d.DistributionSample, "Nodes sampled for the in-component histogram")
	f.Int64("seed", d.Seed, "Random seed")
	f.String("diameter-mode", d.DiameterMode, "Diameter mode (approximate, exact)")
	f.Int("exact-max-nodes", d.ExactMaxNodes, "Largest component size allowed for exact mode (0 = unlimited)")
	f.Duration("exact-timeout", d.ExactTimeout, "Time budget for exact mode (0 = unlimited)")
	f.Int("workers", d.Workers, "Exact-diameter workers (0 = GOMAXPROCS)")
	bindFlags(f)
}

func runStats(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	g, err := e.loadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	r, err := stats.Compute(ctx, g, stats.Options{
		SampleSize:         e.cfg.SampleSize,
		MaxAttempts:        e.cfg.MaxAttempts,
		DistributionSample: e.cfg.DistributionSample,
		Seed:               e.cfg.Seed,
		Diameter:           e.cfg.DiameterOptions(),
		Logger:             e.logger,
	})
	if err != nil {
		return err
	}
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	store, err := storage.Open(ctx, e.cfg.ReportURL)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer storage.Close(store)
	if err := stats.SaveReport(ctx, store, e.cfg.ReportKey, r); err != nil {
		return err
	}
	e.logger.Info("Statistics saved", "store", e.cfg.ReportURL, "key", e.cfg.ReportKey)

	fmt.Println(renderSummary(r))
	return nil
}

func renderSummary(r *stats.Report) string {
	row := func(label string, value any) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
	}
	d := r.PathStats.Diameter
	diameter := fmt.Sprintf("%d (approximate)", d.Value)
	switch {
	case d.Exact:
		diameter = fmt.Sprintf("%d (exact)", d.Value)
	case d.BudgetExceeded:
		diameter = fmt.Sprintf("%d (approximate, exact budget exceeded)", d.Value)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("PATH STATISTICS"),
		row("Nodes", r.GraphInfo.NumNodes),
		row("Edges", r.GraphInfo.NumEdges),
		row("Average degree", fmt.Sprintf("%.2f", r.GraphInfo.AvgDegree)),
		row("Components", r.ComponentStats.NumComponents),
		row("Largest component", r.ComponentStats.LargestComponentSize),
		row("Sampled paths", r.PathStats.SampledPaths),
		row("Unreachable pairs", r.PathStats.UnreachablePairs),
		row("Average path length", fmt.Sprintf("%.2f", r.PathStats.AvgPathLength)),
		row("Min / max path length", fmt.Sprintf("%d / %d", r.PathStats.MinPathLength, r.PathStats.MaxPathLength)),
		row("Diameter", diameter),
	)
}
