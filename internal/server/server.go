// Package server is the HTTP front end: path queries, title suggestions and
// the precomputed statistics report.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/DrSkyle/wikipath/pkg/query"
	"github.com/DrSkyle/wikipath/pkg/stats"
	"github.com/DrSkyle/wikipath/pkg/storage"
	"github.com/DrSkyle/wikipath/pkg/version"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

const shutdownGrace = 10 * time.Second

// Config holds server dependencies.
type Config struct {
	Query *query.Service
	// Reports and ReportKey locate the persisted statistics report. A nil
	// store makes /path-statistics answer 404.
	Reports   storage.BlobStore
	ReportKey string
	// RateLimit is the sustained /find-path rate in requests per second.
	// Zero disables limiting.
	RateLimit float64
	RateBurst int
	Logger    *slog.Logger
}

// Server wires the gin engine to the query service.
type Server struct {
	cfg    Config
	logger *slog.Logger
	engine *gin.Engine
}

// FindPathRequest is the body of POST /find-path.
type FindPathRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ReportKey == "" {
		cfg.ReportKey = stats.DefaultReportKey
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(version.AppName))
	r.Use(requestID(), cors(), observe(cfg.Logger))

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)
	r.GET("/suggest", s.suggest)
	r.POST("/find-path", limit(limiter), s.findPath)
	r.GET("/path-statistics", s.pathStatistics)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	})

	s.engine = r
	return s
}

// Handler exposes the router for httptest and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Wikipedia Path Finder API"})
}

func (s *Server) healthz(c *gin.Context) {
	g := s.cfg.Query.Graph()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Current,
		"nodes":   g.NodeCount(),
		"edges":   g.EdgeCount(),
	})
}

func (s *Server) suggest(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, s.cfg.Query.Suggest(c.Query("q"), limit))
}

func (s *Server) findPath(c *gin.Context) {
	var req FindPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pathQueries.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"detail": "source and destination are required"})
		return
	}

	res, err := s.cfg.Query.FindPath(c.Request.Context(), req.Source, req.Destination)
	switch {
	case err == nil:
		pathQueries.WithLabelValues("found").Inc()
		pathDistance.Observe(float64(res.Distance))
		c.JSON(http.StatusOK, res)
	case errors.Is(err, graph.ErrArticleNotFound):
		pathQueries.WithLabelValues("article_not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"detail": "Article not found"})
	case errors.Is(err, graph.ErrNoPath):
		pathQueries.WithLabelValues("no_path").Inc()
		c.JSON(http.StatusNotFound, gin.H{"detail": "No path found between articles"})
	default:
		pathQueries.WithLabelValues("error").Inc()
		s.logger.Error("Path query failed", "error", err, "source", req.Source, "destination", req.Destination)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// pathStatistics serves the stored report bytes as-is.
func (s *Server) pathStatistics(c *gin.Context) {
	notReady := gin.H{"detail": "Statistics not available. Run `wikipath stats` first."}
	if s.cfg.Reports == nil {
		c.JSON(http.StatusNotFound, notReady)
		return
	}
	data, err := s.cfg.Reports.Get(c.Request.Context(), s.cfg.ReportKey)
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, notReady)
	default:
		s.logger.Error("Failed to read statistics report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
