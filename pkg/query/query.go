// Package query is the read path used by the HTTP layer: title-to-title
// shortest paths and title suggestions over a loaded graph.
package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Suggest bounds.
const (
	DefaultSuggestLimit = 10
	MinSuggestQuery     = 2
)

var (
	tracer = otel.Tracer("wikipath/query")
	meter  = otel.Meter("wikipath/query")
)

// Service answers queries against one immutable graph. It is safe for
// concurrent use.
type Service struct {
	g            *graph.Graph
	index        *graph.ConnectivityIndex
	lower        []string
	suggestLimit int
	logger       *slog.Logger

	pathQueries metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithSuggestLimit caps Suggest results when the caller passes no limit.
func WithSuggestLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestLimit = n
		}
	}
}

// New indexes g for querying. Building the connectivity index and the
// lowercase title table is linear in the graph size.
func New(g *graph.Graph, opts ...Option) *Service {
	s := &Service{
		g:            g,
		suggestLimit: DefaultSuggestLimit,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	start := time.Now()
	s.index = graph.NewConnectivityIndex(g)
	s.lower = make([]string, g.NodeCount())
	for id, title := range g.Titles() {
		s.lower[id] = strings.ToLower(title)
	}
	s.pathQueries, _ = meter.Int64Counter("wikipath.query.find_path",
		metric.WithDescription("Path queries by outcome"),
	)
	s.logger.Info("Query index ready",
		"components", s.index.Components(),
		"duration", time.Since(start).String(),
	)
	return s
}

// Graph returns the underlying graph.
func (s *Service) Graph() *graph.Graph { return s.g }

// FindPath resolves both titles and returns a shortest path between them.
// Pairs in different components are rejected from the connectivity index
// without a traversal.
func (s *Service) FindPath(ctx context.Context, source, destination string) (graph.TitledPath, error) {
	ctx, span := tracer.Start(ctx, "query.FindPath")
	defer span.End()

	res, err := s.findPath(ctx, source, destination)
	outcome := "found"
	switch {
	case err == nil:
		span.SetAttributes(attribute.Int("path.distance", res.Distance))
	case errors.Is(err, graph.ErrArticleNotFound):
		outcome = "article_not_found"
	case errors.Is(err, graph.ErrNoPath):
		outcome = "no_path"
	default:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.pathQueries.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return res, err
}

func (s *Service) findPath(ctx context.Context, source, destination string) (graph.TitledPath, error) {
	src, dst, err := graph.Resolve(s.g, source, destination)
	if err != nil {
		return graph.TitledPath{}, err
	}
	if !s.index.Connected(src, dst) {
		return graph.TitledPath{}, &graph.NoPathError{From: src, To: dst}
	}
	p, err := graph.ShortestPath(ctx, s.g, src, dst)
	if err != nil {
		return graph.TitledPath{}, err
	}
	return graph.Titled(s.g, p), nil
}

// Suggest returns up to limit titles containing q, case-insensitively, in id
// order. Queries shorter than MinSuggestQuery return nothing. limit <= 0 uses
// the service default.
func (s *Service) Suggest(q string, limit int) []string {
	q = strings.ToLower(q)
	out := []string{}
	if len([]rune(q)) < MinSuggestQuery {
		return out
	}
	if limit <= 0 {
		limit = s.suggestLimit
	}
	for id, title := range s.lower {
		if strings.Contains(title, q) {
			out = append(out, s.g.TitleOf(graph.NodeID(id)))
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
