// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Mutators (AddVertex, AddEvent) and read-only queries.
// Determinism:
//   - Vertices(), Successors() and Edges() return lexicographically sorted results.
//   - Times() returns an ascending copy; callers may keep it.
// Concurrency:
//   - Mutators take the write lock; queries take the read lock.

package tgraph

import (
	"context"
	"fmt"
	"sort"
)

// AddVertex inserts id if absent. Adding an existing vertex is a no-op.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//
// Complexity: O(1).
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureVertex(id)

	return nil
}

// AddEvent records an event from→to at time t, creating missing vertices.
// Re-adding an existing (from, to, t) triple is idempotent.
//
// Errors:
//   - ErrEmptyVertexID:  if from or to is "".
//   - ErrLoopNotAllowed: if from == to and the graph was built without WithLoops.
//
// Complexity: O(log k + k) where k is the size of the edge's timestamp set.
func (g *Graph) AddEvent(from, to string, t int64) error {
	// 1) Validate endpoints before touching any state.
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Loop policy is immutable after construction.
	if from == to && !g.allowLoops {
		return fmt.Errorf("tgraph: AddEvent(%q,%q): %w", from, to, ErrLoopNotAllowed)
	}

	// 3) Endpoints exist from here on.
	g.ensureVertex(from)
	g.ensureVertex(to)

	// 4) Insert t into the sorted set; duplicates collapse.
	times := g.adjacency[from][to]
	i := sort.Search(len(times), func(k int) bool { return times[k] >= t })
	if i < len(times) && times[i] == t {
		return nil
	}
	times = append(times, 0)
	copy(times[i+1:], times[i:])
	times[i] = t
	g.adjacency[from][to] = times
	g.events++

	return nil
}

// ensureVertex registers id and its adjacency bucket. Caller holds the write lock.
func (g *Graph) ensureVertex(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.adjacency[id] = make(map[string][]int64)
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// HasEdge reports whether at least one event from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	g.mu.RUnlock()
	sort.Strings(out)

	return out
}

// Successors returns the distinct out-neighbours of id, sorted ascending.
// The context is accepted for contract compatibility with remote engines and
// is checked once before the lookup.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound, or ctx.Err().
//
// Complexity: O(d log d).
func (g *Graph) Successors(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.mu.RLock()
	if _, ok := g.vertices[id]; !ok {
		g.mu.RUnlock()
		return nil, fmt.Errorf("tgraph: Successors(%q): %w", id, ErrVertexNotFound)
	}
	out := make([]string, 0, len(g.adjacency[id]))
	for to := range g.adjacency[id] {
		out = append(out, to)
	}
	g.mu.RUnlock()
	sort.Strings(out)

	return out, nil
}

// Times returns a sorted copy of the timestamp set of edge from→to.
//
// Errors:
//   - ErrEdgeNotFound if no event from→to exists, or ctx.Err().
//
// Complexity: O(k).
func (g *Graph) Times(ctx context.Context, from, to string) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	times := g.adjacency[from][to]
	if len(times) == 0 {
		return nil, fmt.Errorf("tgraph: Times(%q,%q): %w", from, to, ErrEdgeNotFound)
	}

	return append([]int64(nil), times...), nil
}

// Edges returns every structural edge sorted by (From, To).
// Each Edge owns its Times slice.
// Complexity: O(E log E + total events).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	var out []Edge
	for from, row := range g.adjacency {
		for to, times := range row {
			out = append(out, Edge{From: from, To: to, Times: append([]int64(nil), times...)})
		}
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Stats returns vertex, edge and event counts plus the observed time range.
// Complexity: O(E).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := Stats{Vertices: len(g.vertices), Events: g.events}
	first := true
	for _, row := range g.adjacency {
		for _, times := range row {
			st.Edges++
			lo, hi := times[0], times[len(times)-1]
			if first || lo < st.MinTime {
				st.MinTime = lo
			}
			if first || hi > st.MaxTime {
				st.MaxTime = hi
			}
			first = false
		}
	}

	return st
}
