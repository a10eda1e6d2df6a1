// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Constructor type and the BuildGraph orchestrator.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tempocycle/tgraph"
)

// Constructor applies a deterministic mutation to g using the resolved
// configuration. Constructors validate their parameters first and return
// sentinel errors; they never panic.
type Constructor func(g *tgraph.Graph, cfg builderConfig) error

// BuildGraph creates a graph with gopts, resolves bopts and applies cons in
// order. The first constructor error is returned wrapped with "BuildGraph: ".
//
// Complexity: O(len(bopts)) plus the cost of every constructor.
func BuildGraph(gopts []tgraph.GraphOption, bopts []BuilderOption, cons ...Constructor) (*tgraph.Graph, error) {
	g := tgraph.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}
