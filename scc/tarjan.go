// SPDX-License-Identifier: MIT

package scc

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrGraphNil is returned when a nil Graph is passed to Components.
var ErrGraphNil = errors.New("scc: graph is nil")

// Graph is the read-only view the partitioner needs.
// Successors must return each out-neighbour once.
type Graph interface {
	Vertices() []string
	Successors(ctx context.Context, id string) ([]string, error)
}

// Tarjan computes strongly connected components with Tarjan's algorithm.
// The zero value is ready to use and holds no state between calls.
type Tarjan struct{}

// frame is one explicit recursion level of strongConnect.
type frame struct {
	id    string
	succs []string
	next  int
}

// tarjanState carries the per-call bookkeeping.
type tarjanState struct {
	ctx     context.Context
	graph   Graph
	index   int
	indices map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	comps   [][]string
}

// Components returns every strongly connected component of g, including
// singletons. Each component is sorted; components are ordered by their
// smallest member.
//
// Errors:
//   - ErrGraphNil when g is nil.
//   - wrapped Successors errors, or ctx.Err() when canceled.
func (Tarjan) Components(ctx context.Context, g Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	verts := g.Vertices()
	st := &tarjanState{
		ctx:     ctx,
		graph:   g,
		indices: make(map[string]int, len(verts)),
		lowlink: make(map[string]int, len(verts)),
		onStack: make(map[string]bool, len(verts)),
	}

	for _, v := range verts {
		if _, seen := st.indices[v]; seen {
			continue
		}
		if err := st.strongConnect(v); err != nil {
			return nil, err
		}
	}

	for _, c := range st.comps {
		sort.Strings(c)
	}
	sort.Slice(st.comps, func(i, j int) bool { return st.comps[i][0] < st.comps[j][0] })

	return st.comps, nil
}

// strongConnect runs the lowlink DFS rooted at root with an explicit stack.
func (s *tarjanState) strongConnect(root string) error {
	var frames []*frame
	push := func(v string) error {
		// 1) Cancellation is checked once per discovered vertex.
		if err := s.ctx.Err(); err != nil {
			return err
		}
		succs, err := s.graph.Successors(s.ctx, v)
		if err != nil {
			return fmt.Errorf("scc: Successors(%q): %w", v, err)
		}
		// 2) Assign discovery index and lowlink, push on the component stack.
		s.indices[v] = s.index
		s.lowlink[v] = s.index
		s.index++
		s.stack = append(s.stack, v)
		s.onStack[v] = true
		frames = append(frames, &frame{id: v, succs: succs})

		return nil
	}

	if err := push(root); err != nil {
		return err
	}
	for len(frames) > 0 {
		f := frames[len(frames)-1]

		// 3) Advance to the next successor of the top frame.
		if f.next < len(f.succs) {
			w := f.succs[f.next]
			f.next++
			if _, seen := s.indices[w]; !seen {
				if err := push(w); err != nil {
					return err
				}
			} else if s.onStack[w] && s.indices[w] < s.lowlink[f.id] {
				s.lowlink[f.id] = s.indices[w]
			}
			continue
		}

		// 4) Frame exhausted: pop, emit a component if f is its root,
		//    then fold f's lowlink into the parent.
		frames = frames[:len(frames)-1]
		if s.lowlink[f.id] == s.indices[f.id] {
			var comp []string
			for {
				w := s.stack[len(s.stack)-1]
				s.stack = s.stack[:len(s.stack)-1]
				s.onStack[w] = false
				comp = append(comp, w)
				if w == f.id {
					break
				}
			}
			s.comps = append(s.comps, comp)
		}
		if len(frames) > 0 {
			parent := frames[len(frames)-1]
			if s.lowlink[f.id] < s.lowlink[parent.id] {
				s.lowlink[parent.id] = s.lowlink[f.id]
			}
		}
	}

	return nil
}

// HasSelfLoop reports whether id lists itself among its successors.
func HasSelfLoop(ctx context.Context, g Graph, id string) (bool, error) {
	succs, err := g.Successors(ctx, id)
	if err != nil {
		return false, fmt.Errorf("scc: Successors(%q): %w", id, err)
	}
	for _, w := range succs {
		if w == id {
			return true, nil
		}
	}

	return false, nil
}
