// SPDX-License-Identifier: MIT

// Package scc partitions a directed graph into strongly connected components.
//
// What:
//
//   - Tarjan: single-pass lowlink algorithm, iterative (explicit frame stack),
//     so deep chains never grow the goroutine stack.
//   - HasSelfLoop: helper to recognise one-vertex components that still carry
//     a cycle.
//
// Why:
//
//	Every elementary cycle lies inside exactly one strongly connected
//	component, so cycle searches run per component and skip everything else.
//
// Determinism:
//
//	Members of each component are sorted ascending; components are ordered
//	by their smallest member.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package scc
