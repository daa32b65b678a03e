package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/DrSkyle/wikipath/internal/server"
	"github.com/DrSkyle/wikipath/pkg/config"
	"github.com/DrSkyle/wikipath/pkg/query"
	"github.com/DrSkyle/wikipath/pkg/storage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve path queries and statistics over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	d := config.Default()
	f := serveCmd.Flags()
	f.String("listen", d.Listen, "HTTP listen address")
	f.Float64("rate-limit", d.RateLimit, "Sustained /find-path requests per second (0 disables)")
	f.Int("rate-burst", d.RateBurst, "Rate limiter burst")
	f.Int("suggest-limit", d.SuggestLimit, "Default number of suggestions")
	bindFlags(f)
}

func runServe(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	g, err := e.loadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	reports, err := storage.Open(ctx, e.cfg.ReportURL)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer storage.Close(reports)

	svc := query.New(g,
		query.WithLogger(e.logger),
		query.WithSuggestLimit(e.cfg.SuggestLimit),
	)
	srv := server.New(server.Config{
		Query:     svc,
		Reports:   reports,
		ReportKey: e.cfg.ReportKey,
		RateLimit: e.cfg.RateLimit,
		RateBurst: e.cfg.RateBurst,
		Logger:    e.logger,
	})
	return srv.Run(ctx, e.cfg.Listen)
}
