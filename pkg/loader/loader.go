// Package loader turns the titles and edge-list streams into a frozen
// graph.Graph.
//
// The titles stream holds one article title per line; a title's line number
// (0-based) is its node id. The edges stream holds one "u v" pair of node ids
// per line. Blank edge lines are skipped; anything else that is not exactly
// two integers aborts the load with graph.ErrMalformedInput.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/DrSkyle/wikipath/pkg/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Default object keys used when loading from a blob store.
const (
	NodesKey = "nodes.txt"
	EdgesKey = "edges.txt"
)

// maxLineBytes bounds a single title or edge record.
const maxLineBytes = 1 << 20

// progressEvery controls how often edge parsing progress is logged.
const progressEvery = 5_000_000

var tracer = otel.Tracer("wikipath/loader")

type options struct {
	logger *slog.Logger
}

// Option configures a load.
type Option func(*options)

// WithLogger sets the logger used for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func resolve(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Read parses both streams and builds the graph. No partial graph is ever
// returned.
func Read(ctx context.Context, nodes, edges io.Reader, opts ...Option) (*graph.Graph, error) {
	o := resolve(opts)
	ctx, span := tracer.Start(ctx, "loader.Read")
	defer span.End()
	start := time.Now()

	b := graph.NewBuilder(0)
	if err := readTitles(nodes, b); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "titles")
		return nil, err
	}
	o.logger.Info("Titles loaded", "nodes", b.NodeCount())

	lines, err := readEdges(ctx, edges, b, o.logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "edges")
		return nil, err
	}

	g := b.Build()
	span.SetAttributes(
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
	)
	o.logger.Info("Graph loaded",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"edge_records", lines,
		"duration", time.Since(start).String(),
	)
	return g, nil
}

func readTitles(r io.Reader, b *graph.Builder) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		b.AddNode(strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read titles: %w", err)
	}
	return nil
}

// readEdges feeds every record into b and returns the number of records read.
func readEdges(ctx context.Context, r io.Reader, b *graph.Builder, logger *slog.Logger) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		if line%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return line, err
			}
			logger.Debug("Parsing edges", "records", line)
		}

		u, v, ok, err := parseEdge(sc.Text())
		if err != nil {
			return line, &graph.MalformedInputError{Line: line, Reason: err.Error()}
		}
		if !ok {
			continue
		}
		if err := b.AddEdge(u, v); err != nil {
			var me *graph.MalformedInputError
			if errors.As(err, &me) {
				me.Line = line
			}
			return line, err
		}
	}
	if err := sc.Err(); err != nil {
		return line, fmt.Errorf("failed to read edges: %w", err)
	}
	return line, nil
}

// parseEdge splits a "u v" record. ok is false for blank lines.
func parseEdge(s string) (u, v int, ok bool, err error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, 0, false, nil
	}
	if len(fields) != 2 {
		return 0, 0, false, fmt.Errorf("expected two node ids, got %d fields", len(fields))
	}
	u, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("source %q is not an integer", fields[0])
	}
	v, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("target %q is not an integer", fields[1])
	}
	return u, v, true, nil
}

// LoadFiles reads the graph from two local files.
func LoadFiles(ctx context.Context, nodesPath, edgesPath string, opts ...Option) (*graph.Graph, error) {
	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open nodes file: %w", err)
	}
	defer nf.Close()

	ef, err := os.Open(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open edges file: %w", err)
	}
	defer ef.Close()

	return Read(ctx, bufio.NewReaderSize(nf, 1<<20), bufio.NewReaderSize(ef, 1<<20), opts...)
}

// LoadFromStore reads the graph from two objects in a blob store. Empty keys
// default to NodesKey and EdgesKey.
func LoadFromStore(ctx context.Context, store storage.BlobStore, nodesKey, edgesKey string, opts ...Option) (*graph.Graph, error) {
	if nodesKey == "" {
		nodesKey = NodesKey
	}
	if edgesKey == "" {
		edgesKey = EdgesKey
	}

	nodes, err := store.Get(ctx, nodesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", nodesKey, err)
	}
	edges, err := store.Get(ctx, edgesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", edgesKey, err)
	}
	return Read(ctx, bytes.NewReader(nodes), bytes.NewReader(edges), opts...)
}
