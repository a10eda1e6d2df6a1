// SPDX-License-Identifier: MIT

// Package tcycle enumerates temporal cycles of a directed temporal graph:
// elementary cycles whose edges admit strictly increasing timestamps.
//
// What:
//
//   - Search / Stream: partition the graph into strongly connected components,
//     enumerate elementary cycles per component (Johnson-style backtracking
//     with an explicit frame stack and temporal pruning), validate each
//     structural cycle, and collect the survivors.
//   - Validate: earliest strictly increasing timestamp assignment in one
//     greedy pass, never walking the Cartesian product of timestamp choices.
//   - Realizations: several distinct assignments per structural cycle.
//
// Pipeline:
//
//	Partitioner ─► component search ─► Validate ─► collector ─► caller
//	  (SCCs)        (candidates)      (greedy)    (dedup, cap)
//
// Guarantees:
//
//   - Every reported cycle has pairwise distinct nodes, starts at its smallest
//     node, uses real edges, and carries t0 < t1 < … < t(L-1).
//   - No cycle is reported twice; Signature identifies cycles up to rotation.
//   - The output equals the brute-force set of temporal cycles (the pruning
//     rules only ever drop branches that cannot validate).
//
// Options:
//
//   - WithContext(ctx), WithDeadline(t)   truncation instead of failure
//   - WithMaxResults(n)                   truncation after n cycles
//   - WithMaxLength(n), WithMaxDuration(d), WithTimeWindow(from, to)
//   - WithSelfLoops()                     report v→v as length-1 cycles
//   - WithWorkers(n)                      components searched concurrently
//   - WithRealizations(n)                 up to n assignments per cycle
//   - WithPartitioner(p), WithLogger(l)
//
// Errors:
//
//   - ErrGraphNil, ErrEmptyGraph          returned by Search/Stream
//   - ErrNoTimestamps, ErrQuery           per component, in Result.Errors
//
// Complexity:
//
//   - Enumeration: O((V + E)·(C + 1)) for C structural cycles when no pruning
//     fires; tainted branches fall back to plain backtracking.
//   - Validation:  O(L log k) per candidate.
package tcycle
