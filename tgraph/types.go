// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph, Edge, Stats types, construction options and sentinel errors.

package tgraph

import (
	"errors"
	"sync"
)

// Sentinel errors for temporal graph operations.
var (
	// ErrEmptyVertexID indicates that a vertex ID is the empty string.
	ErrEmptyVertexID = errors.New("tgraph: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("tgraph: vertex not found")

	// ErrEdgeNotFound indicates that no event exists between the ordered pair.
	ErrEdgeNotFound = errors.New("tgraph: edge not found")

	// ErrLoopNotAllowed indicates a self-loop event when loops are disabled.
	ErrLoopNotAllowed = errors.New("tgraph: self-loop not allowed")
)

// Edge is a read-only summary of one structural edge.
// Times is sorted ascending, distinct and never empty.
type Edge struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Times []int64 `json:"times"`
}

// Stats is a snapshot of catalog sizes.
// MinTime/MaxTime are zero when the graph holds no events.
type Stats struct {
	Vertices int   `json:"vertices"`
	Edges    int   `json:"edges"`
	Events   int   `json:"events"`
	MinTime  int64 `json:"min_time"`
	MaxTime  int64 `json:"max_time"`
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loop events (from == to).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is the temporal graph snapshot.
//
// adjacency[from][to] is the sorted, distinct timestamp set of edge from→to.
// mu guards vertices, adjacency and the event counter.
type Graph struct {
	mu sync.RWMutex

	allowLoops bool // permit v→v events

	vertices  map[string]struct{}
	adjacency map[string]map[string][]int64
	events    int // distinct (from, to, t) triples
}

// NewGraph creates an empty Graph. By default self-loops are rejected.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		adjacency: make(map[string]map[string][]int64),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Looped reports whether self-loop events are permitted.
func (g *Graph) Looped() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.allowLoops
}
