// SPDX-License-Identifier: MIT

package tcycle_test

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tempocycle/tcycle"
	"github.com/katalvlaran/tempocycle/tgraph"
)

// ev is a compact event literal for fixtures.
type ev struct {
	from, to string
	t        int64
}

// buildGraph creates a temporal graph from events.
func buildGraph(t *testing.T, events []ev, opts ...tgraph.GraphOption) *tgraph.Graph {
	t.Helper()
	g := tgraph.NewGraph(opts...)
	for _, e := range events {
		require.NoError(t, g.AddEvent(e.from, e.to, e.t))
	}

	return g
}

// randomGraph builds a seeded random temporal graph on n vertices.
// Each ordered pair gets an edge with probability p carrying 1..3 timestamps in [0, span).
func randomGraph(t *testing.T, rng *rand.Rand, n int, p float64, span int64) *tgraph.Graph {
	t.Helper()
	g := tgraph.NewGraph()
	for i := 0; i < n; i++ {
		require.NoError(t, g.AddVertex(fmt.Sprintf("v%d", i)))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || rng.Float64() >= p {
				continue
			}
			k := 1 + rng.Intn(3)
			for x := 0; x < k; x++ {
				require.NoError(t, g.AddEvent(fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", j), rng.Int63n(span)))
			}
		}
	}

	return g
}

// bruteForce enumerates every rooted simple cycle (root = smallest node) and
// checks every timestamp combination. It returns node sequences joined by ",".
func bruteForce(t *testing.T, g *tgraph.Graph, maxLen int, maxDur int64, window *tcycle.Window) map[string]bool {
	t.Helper()
	ctx := context.Background()
	times := func(u, v string) []int64 {
		ts, err := g.Times(ctx, u, v)
		if err != nil {
			return nil
		}
		if window == nil {
			return ts
		}
		var kept []int64
		for _, x := range ts {
			if window.Contains(x) {
				kept = append(kept, x)
			}
		}
		return kept
	}

	out := map[string]bool{}
	verts := g.Vertices()
	for _, root := range verts {
		var path []string
		onPath := map[string]bool{}
		var dfs func(v string)
		dfs = func(v string) {
			path = append(path, v)
			onPath[v] = true
			succs, err := g.Successors(ctx, v)
			require.NoError(t, err)
			for _, w := range succs {
				if len(times(v, w)) == 0 {
					continue
				}
				if w == root && len(path) > 1 && (maxLen < 0 || len(path) <= maxLen) {
					if feasible(path, times, maxDur) {
						out[strings.Join(path, ",")] = true
					}
				}
				if w > root && !onPath[w] && (maxLen < 0 || len(path) < maxLen) {
					dfs(w)
				}
			}
			onPath[v] = false
			path = path[:len(path)-1]
		}
		dfs(root)
	}

	return out
}

// feasible walks the full Cartesian product of timestamp choices.
func feasible(path []string, times func(u, v string) []int64, maxDur int64) bool {
	n := len(path)
	var try func(i int, prev, first int64) bool
	try = func(i int, prev, first int64) bool {
		if i == n {
			return maxDur < 0 || prev-first <= maxDur
		}
		for _, t := range times(path[i], path[(i+1)%n]) {
			if i > 0 && t <= prev {
				continue
			}
			f := first
			if i == 0 {
				f = t
			}
			if try(i+1, t, f) {
				return true
			}
		}
		return false
	}

	return try(0, 0, 0)
}

// keys returns the node-sequence keys of cycles.
func keys(cycles []tcycle.Cycle) map[string]bool {
	out := make(map[string]bool, len(cycles))
	for _, c := range cycles {
		out[strings.Join(c.Nodes, ",")] = true
	}

	return out
}

// sortedKeys renders a key set for readable diffs.
func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// requireValidCycle checks every structural and temporal invariant of c.
func requireValidCycle(t *testing.T, g *tgraph.Graph, c tcycle.Cycle) {
	t.Helper()
	ctx := context.Background()
	require.Equal(t, len(c.Nodes), c.Length)
	require.Len(t, c.Edges, c.Length)

	seen := map[string]bool{}
	for i, v := range c.Nodes {
		require.False(t, seen[v], "node %q repeated in %v", v, c.Nodes)
		seen[v] = true
		require.LessOrEqual(t, c.Nodes[0], v, "root is not the smallest node")

		e := c.Edges[i]
		require.Equal(t, v, e.From)
		require.Equal(t, c.Nodes[(i+1)%c.Length], e.To)
		ts, err := g.Times(ctx, e.From, e.To)
		require.NoError(t, err)
		require.Contains(t, ts, e.Time)
		if i > 0 {
			require.Less(t, c.Edges[i-1].Time, e.Time)
		}
	}
	require.Equal(t, c.Edges[c.Length-1].Time-c.Edges[0].Time, c.Duration)
}
