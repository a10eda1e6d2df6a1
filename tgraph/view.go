// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Non-mutating views (time-window copies).

package tgraph

// Window returns a new Graph holding only the events with from <= t < to.
// All vertices are preserved, including those left without edges, and the
// loop policy is inherited. The receiver is not mutated.
//
// Complexity: O(V + total events). Concurrency: read lock on the source.
func (g *Graph) Window(from, to int64) *Graph {
	out := NewGraph()

	g.mu.RLock()
	defer g.mu.RUnlock()

	out.allowLoops = g.allowLoops
	for id := range g.vertices {
		out.ensureVertex(id)
	}
	for src, row := range g.adjacency {
		for dst, times := range row {
			var kept []int64
			for _, t := range times {
				if t >= from && t < to {
					kept = append(kept, t)
				}
			}
			if len(kept) > 0 {
				out.adjacency[src][dst] = kept
				out.events += len(kept)
			}
		}
	}

	return out
}
