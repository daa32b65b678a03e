package graph

import (
	"context"
	"slices"
)

// Path is a shortest path from Nodes[0] to Nodes[len-1].
type Path struct {
	Nodes []NodeID
}

// Distance is the number of edges on the path.
func (p Path) Distance() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// TitledPath is a Path rendered as article titles.
type TitledPath struct {
	Path     []string `json:"path"`
	Distance int      `json:"distance"`
}

// ShortestPath returns a shortest path between two node ids using BFS with
// early exit when the destination is dequeued. Ties resolve to the
// predecessor that discovered each node first.
//
// Returns *NoPathError (ErrNoPath) if the nodes are disconnected.
func ShortestPath(ctx context.Context, s Store, source, destination NodeID) (Path, error) {
	n := s.NodeCount()
	if int(source) >= n || int(destination) >= n {
		panic("graph: shortest path endpoint out of range")
	}
	if source == destination {
		return Path{Nodes: []NodeID{source}}, nil
	}

	sw, err := Expansion{
		Seeds:     []NodeID{source},
		Target:    destination,
		HasTarget: true,
		Parents:   true,
	}.Run(ctx, s)
	if err != nil {
		return Path{}, err
	}
	if !sw.Found {
		return Path{}, &NoPathError{From: source, To: destination}
	}

	nodes := make([]NodeID, 0, sw.Dist[destination]+1)
	for cur := int32(destination); cur != unreached; cur = sw.Parent[cur] {
		nodes = append(nodes, NodeID(cur))
	}
	slices.Reverse(nodes)
	return Path{Nodes: nodes}, nil
}

// Distance returns the shortest-path length between two nodes.
func Distance(ctx context.Context, s Store, source, destination NodeID) (int, error) {
	if source == destination {
		return 0, nil
	}
	sw, err := Expansion{
		Seeds:     []NodeID{source},
		Target:    destination,
		HasTarget: true,
	}.Run(ctx, s)
	if err != nil {
		return 0, err
	}
	if !sw.Found {
		return 0, &NoPathError{From: source, To: destination}
	}
	return int(sw.Dist[destination]), nil
}

// Resolve maps both titles to ids. Missing titles are reported together in
// one *ArticleNotFoundError.
func Resolve(s Store, sourceTitle, destinationTitle string) (NodeID, NodeID, error) {
	src, okSrc := s.IDOf(sourceTitle)
	dst, okDst := s.IDOf(destinationTitle)
	if okSrc && okDst {
		return src, dst, nil
	}
	var missing []string
	if !okSrc {
		missing = append(missing, sourceTitle)
	}
	if !okDst && (okSrc || destinationTitle != sourceTitle) {
		missing = append(missing, destinationTitle)
	}
	return 0, 0, &ArticleNotFoundError{Titles: missing}
}

// FindPath resolves two titles and returns the shortest path between them as
// titles. Title matching is exact.
func FindPath(ctx context.Context, s Store, sourceTitle, destinationTitle string) (TitledPath, error) {
	src, dst, err := Resolve(s, sourceTitle, destinationTitle)
	if err != nil {
		return TitledPath{}, err
	}
	p, err := ShortestPath(ctx, s, src, dst)
	if err != nil {
		return TitledPath{}, err
	}
	return Titled(s, p), nil
}

// Titled renders p with titles from s.
func Titled(s Store, p Path) TitledPath {
	titles := make([]string, len(p.Nodes))
	for i, id := range p.Nodes {
		titles[i] = s.TitleOf(id)
	}
	return TitledPath{Path: titles, Distance: p.Distance()}
}
