// SPDX-License-Identifier: MIT

package tcycle_test

import (
	"testing"

	"github.com/katalvlaran/tempocycle/builder"
	"github.com/katalvlaran/tempocycle/tcycle"
	"github.com/katalvlaran/tempocycle/tgraph"
)

// benchGraph builds a seeded sparse digraph with k timestamps per edge in [0, 1000).
func benchGraph(b *testing.B, n int, p float64, k int) *tgraph.Graph {
	b.Helper()
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{
			builder.WithSeed(1),
			builder.WithPaddedIDs("v", 4),
			builder.WithTimeFn(builder.UniformTimeFn(k, 0, 1000)),
		},
		builder.RandomSparse(n, p))
	if err != nil {
		b.Fatal(err)
	}

	return g
}

// BenchmarkSearch_Ring1000 walks one long feasible ring.
func BenchmarkSearch_Ring1000(b *testing.B) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithPaddedIDs("v", 4)}, builder.Cycle(1000))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tcycle.Search(g)
	}
}

// BenchmarkSearch_Sparse200 measures pruning on a random graph with a length cap.
func BenchmarkSearch_Sparse200(b *testing.B) {
	g := benchGraph(b, 200, 0.02, 3)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tcycle.Search(g, tcycle.WithMaxLength(6))
	}
}

// BenchmarkSearch_Sparse200Parallel is the same workload on four workers.
func BenchmarkSearch_Sparse200Parallel(b *testing.B) {
	g := benchGraph(b, 200, 0.02, 3)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tcycle.Search(g, tcycle.WithMaxLength(6), tcycle.WithWorkers(4))
	}
}

// BenchmarkValidate measures the greedy pass with a duration cap.
func BenchmarkValidate(b *testing.B) {
	c := tcycle.Candidate{Nodes: make([]string, 64), Times: make([][]int64, 64)}
	for i := range c.Times {
		c.Times[i] = []int64{int64(i), int64(i + 100), int64(i + 200)}
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tcycle.Validate(c, 150)
	}
}
