// SPDX-License-Identifier: MIT

// Package tempocycle finds temporal cycles in timestamped directed graphs.
//
// A temporal cycle is a closed path over distinct vertices whose edges can be
// assigned strictly increasing timestamps, starting from the cycle's smallest
// vertex. Money moving through a ring of accounts and an aircraft rotation
// returning to its base are both temporal cycles.
//
// What is inside?
//
//	tgraph/   thread-safe temporal multigraph: vertices, edges, sorted timestamp sets
//	scc/      iterative Tarjan partitioning into strongly connected components
//	tcycle/   the search: Johnson enumeration per component, temporal pruning,
//	          greedy validation, limits, truncation and per-component errors
//	source/   event loaders (YAML, JSON, CSV, CUE) plus sqlitesrc/ and pgsrc/ backends
//	builder/  deterministic schedule generators for tests and benchmarks
//	config/   YAML configuration for searches, sources and the HTTP server
//	report/   text and JSON rendering of a search result
//	server/   HTTP API (POST /v1/cycles)
//	cmd/      the tempocycle CLI: find, serve, generate, version
//
// Quick ASCII example:
//
//	    a ──2──▶ b
//	    ▲        │
//	  2,11       4
//	    │        ▼
//	    d ◀──7── c
//
//	a→b→c→d→a is a temporal cycle with timestamps 2,4,7,11 and duration 9.
//
//	go install github.com/katalvlaran/tempocycle/cmd/tempocycle@latest
package tempocycle
