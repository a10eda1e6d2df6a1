// SPDX-License-Identifier: MIT
//
// File: impl_complete.go
// Role: Complete(n), every ordered pair of distinct vertices.
//
// Edges are emitted for i ascending, then j ascending, skipping i == j.
// Complexity: O(n) vertices + O(n²) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tempocycle/tgraph"
)

const methodComplete = "Complete"

// Complete returns a Constructor for the complete digraph on n vertices.
func Complete(n int) Constructor {
	return func(g *tgraph.Graph, cfg builderConfig) error {
		if n < minRingNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minRingNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, n, methodComplete); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := addEdge(g, cfg, cfg.idFn(i), cfg.idFn(j), methodComplete); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
