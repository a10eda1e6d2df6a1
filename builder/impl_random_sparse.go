// SPDX-License-Identifier: MIT
//
// File: impl_random_sparse.go
// Role: RandomSparse(n, p), an Erdős–Rényi digraph.
//
// Contract:
//   - n ≥ 1, 0 ≤ p ≤ 1.
//   - An RNG is required for 0 < p < 1 (WithSeed / WithRand).
//   - Ordered pairs are tried for i ascending, then j ascending; self-loops
//     are tried only when the graph was built with tgraph.WithLoops().
//
// Complexity: O(n²) Bernoulli trials.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tempocycle/tgraph"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
)

// RandomSparse returns a Constructor sampling each ordered pair with probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(g *tgraph.Graph, cfg builderConfig) error {
		// 1) Validate parameters before any side effect.
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		// 2) Vertices.
		if err := addVertices(g, cfg, n, methodRandomSparse); err != nil {
			return err
		}

		// 3) Trials in stable order.
		loops := g.Looped()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j && !loops {
					continue
				}
				keep := p == 1
				if cfg.rng != nil {
					keep = cfg.rng.Float64() < p
				}
				if !keep {
					continue
				}
				if err := addEdge(g, cfg, cfg.idFn(i), cfg.idFn(j), methodRandomSparse); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
