package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph loading and queries.
var (
	// ErrMalformedInput is returned when load data cannot be turned into a
	// graph: an unparsable edge record or an endpoint outside [0, N).
	// Loading aborts; no partial graph is ever returned.
	ErrMalformedInput = errors.New("graph: malformed input")

	// ErrArticleNotFound is returned when a title is not in the graph.
	ErrArticleNotFound = errors.New("graph: article not found")

	// ErrNoPath is returned when the destination is unreachable from the source.
	ErrNoPath = errors.New("graph: no path")
)

// MalformedInputError describes which edge record was rejected.
type MalformedInputError struct {
	// Line is the 1-based record number, or 0 when not read from a stream.
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("graph: malformed input at line %d: %s", e.Line, e.Reason)
	}
	return "graph: malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// ArticleNotFoundError lists the titles that could not be resolved.
type ArticleNotFoundError struct {
	Titles []string
}

func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("graph: article not found: %s", strings.Join(quoteAll(e.Titles), ", "))
}

func (e *ArticleNotFoundError) Unwrap() error { return ErrArticleNotFound }

// NoPathError reports a disconnected source/destination pair.
type NoPathError struct {
	From, To NodeID
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("graph: no path from %d to %d", e.From, e.To)
}

func (e *NoPathError) Unwrap() error { return ErrNoPath }

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
