// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/tempocycle/tgraph"
)

// addVertices inserts cfg.idFn(0..n-1) in ascending order.
func addVertices(g *tgraph.Graph, cfg builderConfig, n int, method string) error {
	for i := 0; i < n; i++ {
		id := cfg.idFn(i)
		if err := g.AddVertex(id); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w", method, id, err)
		}
	}

	return nil
}

// addEdge stamps u→v through cfg.timeFn and inserts one event per timestamp.
func addEdge(g *tgraph.Graph, cfg builderConfig, u, v string, method string) error {
	ts := cfg.timeFn(cfg.rng, cfg.nextStep())
	if len(ts) == 0 {
		return fmt.Errorf("%s: %s→%s: TimeFn returned no timestamps: %w", method, u, v, ErrConstructFailed)
	}
	for _, t := range ts {
		if err := g.AddEvent(u, v, t); err != nil {
			return fmt.Errorf("%s: AddEvent(%s→%s, t=%d): %w", method, u, v, t, err)
		}
	}

	return nil
}
