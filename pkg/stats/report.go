package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/DrSkyle/wikipath/pkg/storage"
)

// DefaultReportKey is where the report is stored when no key is configured.
const DefaultReportKey = "path_statistics.json"

// ErrNoReport is returned by LoadReport when nothing has been persisted yet.
var ErrNoReport = errors.New("stats: report not available")

// Report is the persisted output of Compute.
type Report struct {
	GraphInfo      GraphInfo      `json:"graph_info"`
	ComponentStats ComponentStats `json:"component_stats"`
	PathStats      PathStats      `json:"path_stats"`
	Seed           int64          `json:"seed"`
	// GeneratedAt is an RFC 3339 timestamp set by whoever persists the report.
	GeneratedAt string `json:"generated_at,omitempty"`
}

type GraphInfo struct {
	NumNodes  int     `json:"num_nodes"`
	NumEdges  int     `json:"num_edges"`
	AvgDegree float64 `json:"avg_degree"`
}

type ComponentStats struct {
	NumComponents        int `json:"num_components"`
	LargestComponentSize int `json:"largest_component_size"`
	// ComponentSizeDistribution maps component size to how many components
	// have that size.
	ComponentSizeDistribution map[int]int      `json:"component_size_distribution"`
	SizeRanking               []graph.SizeRank `json:"size_ranking"`
}

type PathStats struct {
	SampledPaths     int     `json:"sampled_paths"`
	UnreachablePairs int     `json:"unreachable_pairs"`
	Attempts         int     `json:"attempts"`
	AvgPathLength    float64 `json:"avg_path_length"`
	MaxPathLength    int     `json:"max_path_length"`
	MinPathLength    int     `json:"min_path_length"`
	PathLengths      []int   `json:"path_lengths"`
	// PathLengthDistribution is the histogram of PathLengths.
	PathLengthDistribution map[int]int `json:"path_length_distribution"`
	// ComponentPathDistribution counts ordered pairs of sampled nodes in the
	// largest component by distance.
	ComponentPathDistribution map[int]int    `json:"component_path_distribution"`
	ComponentSampleSize       int            `json:"component_sample_size"`
	Diameter                  graph.Diameter `json:"diameter"`
}

// Encode renders r as indented JSON.
func (r *Report) Encode() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SaveReport writes r to store under key.
func SaveReport(ctx context.Context, store storage.BlobStore, key string, r *Report) error {
	if key == "" {
		key = DefaultReportKey
	}
	data, err := r.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LoadReport reads a report previously written by SaveReport.
func LoadReport(ctx context.Context, store storage.BlobStore, key string) (*Report, error) {
	if key == "" {
		key = DefaultReportKey
	}
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNoReport, err)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return &r, nil
}
