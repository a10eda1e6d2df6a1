// SPDX-License-Identifier: MIT
//
// File: enumerate.go
// Role: structural cycle enumeration inside one strongly connected component.
//
// The search follows Johnson's elementary-circuit algorithm with an explicit
// frame stack instead of recursion:
//
//   - Roots are taken in ascending order; a cycle is always reported from its
//     smallest node, so every elementary cycle appears exactly once.
//   - A vertex is blocked while on the path and stays blocked after an
//     exploration that found no way back to the root; it is released (together
//     with everything its blocking caused) once a cycle through it is found.
//   - After a root is exhausted it is removed and the remainder is re-split
//     into components, since no further cycle can contain it.
//
// Temporal pruning runs at extension time: edge e_next may follow e_prev only
// if min(times(e_prev)) < max(times(e_next)). Pruning, the duration cap and the
// length cap depend on how a vertex was reached, not only on the path's vertex
// set. A frame that skipped an edge for one of these reasons is tainted, and a
// tainted frame is unblocked on exit exactly like one that closed a cycle.
// Blocking therefore only ever records failures that hold in every context.

package tcycle

import "sort"

// frame is one level of the backtracking path.
type frame struct {
	node    string
	succs   []string
	next    int
	found   bool // a cycle closed below this frame
	tainted bool // a context-dependent prune fired below this frame
}

// searcher owns all mutable state of one component search.
type searcher struct {
	e     *engine
	comp  int // bucket index in the collector
	cache *edgeCache

	blocked map[string]bool
	bmap    map[string]map[string]struct{} // Johnson's B lists

	frames []*frame
	path   []string
	spans  []span // spans[i] is the edge path[i] → path[i+1]
}

func newSearcher(e *engine, comp int) *searcher {
	return &searcher{
		e:     e,
		comp:  comp,
		cache: newEdgeCache(e.opts.Ctx, e.graph),
	}
}

// run enumerates every cycle of members. It returns halted=true when the
// engine asked to stop, and a non-nil error for an InputError.
func (s *searcher) run(members []string) (halted bool, err error) {
	work := [][]string{members}
	for len(work) > 0 {
		// 1) Always continue with the component holding the smallest vertex,
		//    keeping roots in ascending order across re-splits.
		sort.Slice(work, func(i, j int) bool { return work[i][0] < work[j][0] })
		comp := work[0]
		work = work[1:]
		if s.e.halted() {
			return true, nil
		}

		keep := make(map[string]bool, len(comp))
		for _, v := range comp {
			keep[v] = true
		}
		root := comp[0]
		s.e.stats.roots.Add(1)

		// 2) All cycles through root.
		if halted, err = s.circuit(root, keep); halted || err != nil {
			return halted, err
		}

		// 3) Drop root and re-split the rest.
		if len(comp) == 1 {
			continue
		}
		delete(keep, root)
		subs, perr := s.e.opts.Partitioner.Components(s.e.opts.Ctx, subsetView{cache: s.cache, keep: keep})
		if perr != nil {
			if s.e.halted() {
				return true, nil
			}
			return false, perr
		}
		for _, sub := range subs {
			sub = sortedMembers(sub)
			ok, serr := s.e.cyclic(s.cache, sub, keep)
			if serr != nil {
				return false, serr
			}
			if ok {
				work = append(work, sub)
			}
		}
	}

	return false, nil
}

// circuit enumerates the elementary cycles through root inside keep.
func (s *searcher) circuit(root string, keep map[string]bool) (bool, error) {
	opts := &s.e.opts
	s.blocked = make(map[string]bool)
	s.bmap = make(map[string]map[string]struct{})
	s.frames = s.frames[:0]
	s.path = s.path[:0]
	s.spans = s.spans[:0]

	succs, err := s.cache.successors(root, keep)
	if err != nil {
		return false, err
	}
	s.push(root, succs, nil)

	for len(s.frames) > 0 {
		f := s.frames[len(s.frames)-1]

		// 1) Frame exhausted: pop and settle its blocking.
		if f.next >= len(f.succs) {
			s.pop()
			continue
		}

		// 2) Deadline / cap / cancellation are checked before every extension.
		if s.e.halted() {
			return true, nil
		}
		w := f.succs[f.next]
		f.next++

		// 3) Self-loops only count at the root, and only when enabled.
		if w == f.node && (w != root || !opts.SelfLoops) {
			continue
		}
		next, err := s.cache.span(f.node, w)
		if err != nil {
			return false, err
		}

		// 4) Context-dependent pruning against the previous and the first edge.
		if n := len(s.spans); n > 0 {
			if s.spans[n-1].min() >= next.max() {
				s.prune(f)
				continue
			}
			if opts.MaxDuration >= 0 && next.min()-s.spans[0].max() > opts.MaxDuration {
				s.prune(f)
				continue
			}
		}

		// 5) Closing edge: hand the candidate to validation.
		if w == root {
			if opts.MaxLength >= 0 && len(s.path) > opts.MaxLength {
				s.prune(f)
				continue
			}
			f.found = true
			if s.emit(next) {
				return true, nil
			}
			continue
		}

		// 6) Extension.
		if s.blocked[w] {
			continue
		}
		if opts.MaxLength >= 0 && len(s.path) >= opts.MaxLength {
			s.prune(f)
			continue
		}
		wsuccs, err := s.cache.successors(w, keep)
		if err != nil {
			return false, err
		}
		s.push(w, wsuccs, next)
	}

	return false, nil
}

// push appends node to the path; in is the edge that reached it (nil at root).
func (s *searcher) push(node string, succs []string, in span) {
	if in != nil {
		s.spans = append(s.spans, in)
	}
	s.blocked[node] = true
	s.path = append(s.path, node)
	s.frames = append(s.frames, &frame{node: node, succs: succs})
}

// pop removes the top frame and applies Johnson's exit rule.
func (s *searcher) pop() {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.path = s.path[:len(s.path)-1]
	if len(s.spans) > 0 {
		s.spans = s.spans[:len(s.spans)-1]
	}

	if f.found || f.tainted {
		s.unblock(f.node)
	} else {
		for _, w := range f.succs {
			set, ok := s.bmap[w]
			if !ok {
				set = make(map[string]struct{})
				s.bmap[w] = set
			}
			set[f.node] = struct{}{}
		}
	}

	if len(s.frames) > 0 {
		parent := s.frames[len(s.frames)-1]
		parent.found = parent.found || f.found
		parent.tainted = parent.tainted || f.tainted
	}
}

// unblock releases u and, transitively, every vertex waiting on it.
func (s *searcher) unblock(u string) {
	stack := []string{u}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !s.blocked[v] {
			continue
		}
		s.blocked[v] = false
		for w := range s.bmap[v] {
			stack = append(stack, w)
		}
		delete(s.bmap, v)
	}
}

func (s *searcher) prune(f *frame) {
	f.tainted = true
	s.e.stats.pruned.Add(1)
}

// emit validates the closed path and forwards survivors. It reports whether
// the search must stop.
func (s *searcher) emit(closing span) bool {
	c := Candidate{
		Nodes: append([]string(nil), s.path...),
		Times: make([][]int64, 0, len(s.path)),
	}
	for _, sp := range s.spans {
		c.Times = append(c.Times, sp)
	}
	c.Times = append(c.Times, closing)

	return s.e.deliver(s.comp, c)
}

// preload fetches every successor list and timestamp set inside members, so
// malformed input fails the component before enumeration starts.
func (s *searcher) preload(members []string) error {
	keep := make(map[string]bool, len(members))
	for _, v := range members {
		keep[v] = true
	}
	for _, v := range members {
		if err := s.e.opts.Ctx.Err(); err != nil {
			return err
		}
		succs, err := s.cache.successors(v, keep)
		if err != nil {
			return err
		}
		for _, w := range succs {
			if _, err = s.cache.span(v, w); err != nil {
				return err
			}
		}
	}

	return nil
}
