// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: external contracts (Graph, Partitioner), cycle records, results and
// sentinel errors for the temporal cycle search.

package tcycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tempocycle/scc"
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to Search or Stream.
	ErrGraphNil = errors.New("tcycle: graph is nil")

	// ErrEmptyGraph indicates a graph without vertices. The whole run fails fast.
	ErrEmptyGraph = errors.New("tcycle: graph is empty")

	// ErrNoTimestamps indicates a structural edge whose timestamp set is empty.
	ErrNoTimestamps = errors.New("tcycle: edge has no timestamps")

	// ErrQuery wraps a failure reported by the external graph engine.
	ErrQuery = errors.New("tcycle: graph query failed")
)

// Graph is the read-only temporal edge index consumed by the search.
// Successors must return distinct IDs; Times must return a sorted, distinct,
// non-empty slice for every edge reported by Successors.
type Graph interface {
	scc.Graph
	Times(ctx context.Context, from, to string) ([]int64, error)
}

// Partitioner splits a graph into strongly connected components.
// Members of a component may come in any order; the search sorts them.
// scc.Tarjan is the default implementation.
type Partitioner interface {
	Components(ctx context.Context, g scc.Graph) ([][]string, error)
}

// Event is one traversed edge of a temporal cycle with its chosen timestamp.
type Event struct {
	From string `json:"from"`
	To   string `json:"to"`
	Time int64  `json:"time"`
}

// Candidate is a structural cycle that has not been validated yet.
// Times[i] is the sorted timestamp set of edge Nodes[i] → Nodes[(i+1)%L].
type Candidate struct {
	Nodes []string
	Times [][]int64
}

// Cycle is a temporal cycle: distinct nodes, root first, whose edges carry
// strictly increasing timestamps. Treat values as immutable.
type Cycle struct {
	Nodes    []string `json:"nodes"`
	Edges    []Event  `json:"edges"`
	Length   int      `json:"length"`
	Duration int64    `json:"duration"`
}

// Root returns the canonical first node.
func (c Cycle) Root() string {
	if len(c.Nodes) == 0 {
		return ""
	}

	return c.Nodes[0]
}

// Timestamps returns the chosen timestamps in edge order.
func (c Cycle) Timestamps() []int64 {
	out := make([]int64, len(c.Edges))
	for i, e := range c.Edges {
		out[i] = e.Time
	}

	return out
}

// Reason explains why a search stopped before exhausting the graph.
type Reason string

// Truncation reasons.
const (
	ReasonNone       Reason = ""
	ReasonDeadline   Reason = "deadline"
	ReasonMaxResults Reason = "max_results"
	ReasonCanceled   Reason = "canceled"
	ReasonStopped    Reason = "stopped"
)

// ComponentError reports an InputError confined to one strongly connected
// component. The search of other components is unaffected.
type ComponentError struct {
	Component []string `json:"component"`
	Err       error    `json:"-"`
}

// Error implements error.
func (e *ComponentError) Error() string {
	return fmt.Sprintf("tcycle: component [%s]: %v", strings.Join(e.Component, ","), e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *ComponentError) Unwrap() error { return e.Err }

// Stats are diagnostic counters of one run.
type Stats struct {
	Components int `json:"components"` // components searched
	Roots      int `json:"roots"`      // root vertices expanded
	Candidates int `json:"candidates"` // structural cycles handed to validation
	Rejected   int `json:"rejected"`   // structural cycles without a valid assignment
	Pruned     int `json:"pruned"`     // extensions discarded by temporal/length pruning
}

// Result is the outcome of a search.
//
// Cycles is populated by Search only. Truncated is true whenever the search
// stopped early; the cycles gathered so far are still valid.
type Result struct {
	Cycles    []Cycle           `json:"cycles"`
	Truncated bool              `json:"truncated"`
	Reason    Reason            `json:"reason,omitempty"`
	Errors    []*ComponentError `json:"errors,omitempty"`
	Stats     Stats             `json:"stats"`
}
