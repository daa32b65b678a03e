package graph

// Store is the read-only view every algorithm in this package works against.
// *Graph is the only production implementation.
type Store interface {
	NodeCount() int
	EdgeCount() int
	Neighbors(id NodeID) []NodeID
	TitleOf(id NodeID) string
	IDOf(title string) (NodeID, bool)
}

var _ Store = (*Graph)(nil)
