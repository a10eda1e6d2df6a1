// SPDX-License-Identifier: MIT
//
// File: impl_cycle.go
// Role: Cycle(n) and Path(n).
//
// Contract:
//   - Cycle: n ≥ 2, edges i→(i+1)%n for i = 0..n-1.
//   - Path:  n ≥ 2, edges i→i+1 for i = 0..n-2.
//   - Vertices via cfg.idFn in ascending index order.
//
// Complexity: O(n) vertices + O(n) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tempocycle/tgraph"
)

const (
	methodCycle  = "Cycle"
	methodPath   = "Path"
	minRingNodes = 2
)

// Cycle returns a Constructor for the directed ring on n vertices.
func Cycle(n int) Constructor {
	return func(g *tgraph.Graph, cfg builderConfig) error {
		if n < minRingNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minRingNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, n, methodCycle); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, cfg, cfg.idFn(i), cfg.idFn((i+1)%n), methodCycle); err != nil {
				return err
			}
		}

		return nil
	}
}

// Path returns a Constructor for the directed path on n vertices.
func Path(n int) Constructor {
	return func(g *tgraph.Graph, cfg builderConfig) error {
		if n < minRingNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minRingNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, n, methodPath); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(g, cfg, cfg.idFn(i), cfg.idFn(i+1), methodPath); err != nil {
				return err
			}
		}

		return nil
	}
}
