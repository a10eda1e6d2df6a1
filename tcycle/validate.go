// SPDX-License-Identifier: MIT
//
// File: validate.go
// Role: temporal validation of structural cycles.
//
// Validate is a single greedy pass: at every edge it takes the smallest
// timestamp strictly greater than the previous choice. Taking the minimum
// leaves every later edge the weakest possible lower bound, so the greedy
// pass fails only when no strictly increasing assignment exists at all.
//
// Complexity:
//
//   - Validate:     O(L log k) without a duration cap, O(k0 · L log k) with one
//   - Realizations: O(L log k) per reported assignment plus dead branches cut
//     by the duration cap

package tcycle

import "sort"

// Validate returns the earliest strictly increasing timestamp assignment of c.
//
// With maxDuration >= 0 the greedy pass is repeated from successive start
// timestamps of edge 0 and the first assignment whose duration fits is
// returned. A later start can only raise every greedy choice, so the scan
// stops at the first start that admits no assignment.
//
// ok is false when c is malformed or temporally infeasible.
func Validate(c Candidate, maxDuration int64) (cycle Cycle, ok bool) {
	// 1) Shape checks: one non-empty timestamp set per edge.
	n := len(c.Nodes)
	if n == 0 || len(c.Times) != n {
		return Cycle{}, false
	}
	for _, ts := range c.Times {
		if len(ts) == 0 {
			return Cycle{}, false
		}
	}

	// 2) Scan start timestamps; the first start is enough without a cap.
	chosen := make([]int64, n)
	for _, t0 := range c.Times[0] {
		if !greedyFrom(c.Times, t0, chosen) {
			return Cycle{}, false
		}
		if maxDuration < 0 || chosen[n-1]-chosen[0] <= maxDuration {
			return buildCycle(c.Nodes, chosen), true
		}
	}

	return Cycle{}, false
}

// greedyFrom fills chosen with the earliest assignment starting at t0.
func greedyFrom(times [][]int64, t0 int64, chosen []int64) bool {
	chosen[0] = t0
	last := t0
	for i := 1; i < len(times); i++ {
		t, ok := firstAfter(times[i], last)
		if !ok {
			return false
		}
		chosen[i] = t
		last = t
	}

	return true
}

// firstAfter returns the smallest element of sorted ts strictly greater than x.
func firstAfter(ts []int64, x int64) (int64, bool) {
	i := sort.Search(len(ts), func(k int) bool { return ts[k] > x })
	if i == len(ts) {
		return 0, false
	}

	return ts[i], true
}

// Realizations returns up to limit distinct strictly increasing assignments
// of c in lexicographic order of their timestamp vectors, each within
// maxDuration when it is non-negative.
//
// Before descending, latest[i] is computed backwards as the largest time on
// edge i that still has a strictly increasing continuation. Only timestamps
// in (previous, latest[i]] are tried, so without a duration cap every branch
// reaches a complete assignment and the Cartesian product is never walked.
func Realizations(c Candidate, maxDuration int64, limit int) []Cycle {
	n := len(c.Nodes)
	if n == 0 || len(c.Times) != n || limit < 1 {
		return nil
	}
	for _, ts := range c.Times {
		if len(ts) == 0 {
			return nil
		}
	}

	// 1) Back-propagate the latest feasible time per edge.
	latest := make([]int64, n)
	last := c.Times[n-1]
	latest[n-1] = last[len(last)-1]
	for i := n - 2; i >= 0; i-- {
		ts := c.Times[i]
		j := sort.Search(len(ts), func(k int) bool { return ts[k] >= latest[i+1] })
		if j == 0 {
			return nil // nothing on edge i precedes the bound of edge i+1
		}
		latest[i] = ts[j-1]
	}

	// 2) Depth-first over bounded ranges.
	var out []Cycle
	chosen := make([]int64, n)
	var walk func(i int, after int64) bool
	walk = func(i int, after int64) bool {
		ts := c.Times[i]
		start := 0
		if i > 0 {
			start = sort.Search(len(ts), func(k int) bool { return ts[k] > after })
		}
		for _, t := range ts[start:] {
			if t > latest[i] {
				break
			}
			if i > 0 && maxDuration >= 0 && t-chosen[0] > maxDuration {
				break
			}
			chosen[i] = t
			if i == n-1 {
				out = append(out, buildCycle(c.Nodes, chosen))
				if len(out) >= limit {
					return false
				}
				continue
			}
			if !walk(i+1, t) {
				return false
			}
		}

		return true
	}
	walk(0, 0)

	return out
}

// buildCycle assembles the immutable record; nodes and chosen are copied.
func buildCycle(nodes []string, chosen []int64) Cycle {
	n := len(nodes)
	c := Cycle{
		Nodes:    append([]string(nil), nodes...),
		Edges:    make([]Event, n),
		Length:   n,
		Duration: chosen[n-1] - chosen[0],
	}
	for i := 0; i < n; i++ {
		c.Edges[i] = Event{From: nodes[i], To: nodes[(i+1)%n], Time: chosen[i]}
	}

	return c
}
