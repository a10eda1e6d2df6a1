// SPDX-License-Identifier: MIT

// Package tgraph provides a thread-safe, in-memory temporal directed graph:
// a snapshot of timestamped events between string-identified vertices.
//
// Every event u→v at time t is folded into one structural edge (u,v) whose
// timestamp set is kept sorted ascending and free of duplicates:
//
//	AddEvent("a", "b", 7)
//	AddEvent("a", "b", 2)
//	AddEvent("a", "b", 7)   // idempotent
//	Times(ctx, "a", "b")    // [2 7]
//
// Directions never merge: u→v and v→u are different structural edges.
//
// Why a dedicated store?
//
//   - Cycle searches query the same edge many times; sorted timestamp slices
//     make min/max O(1) and "first time after t" O(log k).
//   - Deterministic iteration: Vertices(), Successors() and Edges() are sorted.
//   - Read methods take a context.Context so that the same contract can be
//     served by remote engines; the in-memory store never blocks.
//
// Configuration Options (GraphOption):
//
//	– WithLoops()
//	    Permits self-loop events (v→v). Without it AddEvent(v, v, t)
//	    returns ErrLoopNotAllowed.
//
// Concurrency:
//
//	A single sync.RWMutex guards vertices and adjacency. Searches hold only
//	read locks, so a snapshot may be analysed from many goroutines at once.
//
// Complexity:
//
//   - AddEvent:    O(log k + k) for the insertion into a k-element timestamp set
//   - Times:       O(k) (defensive copy)
//   - Successors:  O(d log d)
//   - Vertices:    O(V log V)
package tgraph
