// SPDX-License-Identifier: MIT
//
// File: search.go
// Role: public entry points (Search, Stream), the per-run engine and the
// result collector.

package tcycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tempocycle/scc"
)

// Search enumerates every temporal cycle of g and returns them sorted by root
// node (discovery order within a root). Per-component InputErrors are listed
// in Result.Errors; the returned error is reserved for whole-run failures.
func Search(g Graph, opts ...Option) (*Result, error) {
	return run(g, nil, true, opts)
}

// Stream delivers every temporal cycle to fn as soon as it is validated.
// Returning false from fn stops the search with ReasonStopped. Calls to fn
// are serialized, also with WithWorkers(n > 1). Result.Cycles stays empty.
func Stream(g Graph, fn func(Cycle) bool, opts ...Option) (*Result, error) {
	return run(g, fn, false, opts)
}

// counters are the engine's shared diagnostics.
type counters struct {
	components atomic.Int64
	roots      atomic.Int64
	candidates atomic.Int64
	rejected   atomic.Int64
	pruned     atomic.Int64
}

// engine is the shared, concurrency-safe state of one run. Mutable search
// state (path, blocked set, caches) lives in per-component searchers.
type engine struct {
	graph Graph
	opts  Options
	col   *collector
	stats counters

	stopped atomic.Bool
	mu      sync.Mutex
	reason  Reason
	errs    map[int]*ComponentError
}

func run(g Graph, fn func(Cycle) bool, keep bool, opts []Option) (*Result, error) {
	// 1) Validate input graph.
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2) Apply options.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(g.Vertices()) == 0 {
		return nil, ErrEmptyGraph
	}

	// 3) The window is applied once, before partitioning.
	var view Graph = g
	if o.Window != nil {
		view = windowView{g: g, w: *o.Window}
	}

	e := &engine{graph: view, opts: o, errs: make(map[int]*ComponentError)}
	res := &Result{}

	// 4) Partition the whole graph.
	comps, err := o.Partitioner.Components(o.Ctx, view)
	if err != nil {
		if e.halted() {
			return e.finish(res, 0), nil
		}
		return nil, fmt.Errorf("tcycle: partition: %w: %w", ErrQuery, err)
	}

	// 5) Keep components that can hold a cycle.
	var work [][]string
	probe := newEdgeCache(o.Ctx, view)
	for _, comp := range comps {
		comp = sortedMembers(comp)
		members := make(map[string]bool, len(comp))
		for _, v := range comp {
			members[v] = true
		}
		ok, err := e.cyclic(probe, comp, members)
		if err != nil {
			e.fail(len(work), comp, err)
			work = append(work, nil)
			continue
		}
		if ok {
			work = append(work, comp)
		}
	}
	e.col = newCollector(e, len(work), fn, keep)

	// 6) Search components, sequentially or on a bounded worker pool.
	if o.Workers <= 1 {
		for i, comp := range work {
			if e.halted() {
				break
			}
			if comp != nil {
				e.component(i, comp)
			}
		}
	} else {
		var grp errgroup.Group
		grp.SetLimit(o.Workers)
		for i, comp := range work {
			if comp == nil {
				continue
			}
			grp.Go(func() error {
				if !e.halted() {
					e.component(i, comp)
				}
				return nil
			})
		}
		_ = grp.Wait()
	}

	return e.finish(res, len(work)), nil
}

// component searches one strongly connected component.
func (e *engine) component(idx int, comp []string) {
	s := newSearcher(e, idx)
	e.stats.components.Add(1)

	// Every edge of the component is fetched before the first extension, so
	// an InputError aborts the component before any cycle is reported.
	if err := s.preload(comp); err != nil {
		if !e.halted() {
			e.fail(idx, comp, err)
		}
		return
	}
	halted, err := s.run(comp)
	if err != nil && !e.halted() {
		e.col.drop(idx)
		e.fail(idx, comp, err)
		return
	}
	e.opts.Logger.Debug("tcycle: component searched",
		"component", idx, "size", len(comp), "root", comp[0], "halted", halted)
}

// cyclic reports whether comp can contain a cycle: more than one vertex, or
// a single vertex with a self-loop when self-loops are reported.
func (e *engine) cyclic(cache *edgeCache, comp []string, keep map[string]bool) (bool, error) {
	if len(comp) > 1 {
		return true, nil
	}
	if len(comp) == 0 || !e.opts.SelfLoops {
		return false, nil
	}

	return scc.HasSelfLoop(e.opts.Ctx, subsetView{cache: cache, keep: keep}, comp[0])
}

// sortedMembers returns a sorted copy of a component. Partitioners may list
// members in any order; the root must be the smallest one.
func sortedMembers(comp []string) []string {
	out := append([]string(nil), comp...)
	sort.Strings(out)

	return out
}

// deliver validates a candidate and hands survivors to the collector.
// It reports whether the search must stop.
func (e *engine) deliver(comp int, c Candidate) bool {
	e.stats.candidates.Add(1)

	var cycles []Cycle
	if e.opts.Realizations > 1 {
		cycles = Realizations(c, e.opts.MaxDuration, e.opts.Realizations)
	} else if cy, ok := Validate(c, e.opts.MaxDuration); ok {
		cycles = []Cycle{cy}
	}
	if len(cycles) == 0 {
		e.stats.rejected.Add(1)
		return false
	}
	for _, cy := range cycles {
		if e.col.add(comp, cy) {
			return true
		}
	}

	return false
}

// halted reports whether the run must stop, recording why on first detection.
func (e *engine) halted() bool {
	if e.stopped.Load() {
		return true
	}
	if err := e.opts.Ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.halt(ReasonDeadline)
		} else {
			e.halt(ReasonCanceled)
		}
		return true
	}
	if !e.opts.Deadline.IsZero() && !time.Now().Before(e.opts.Deadline) {
		e.halt(ReasonDeadline)
		return true
	}

	return false
}

// halt stops the run; the first reason wins.
func (e *engine) halt(r Reason) {
	e.mu.Lock()
	if e.reason == ReasonNone {
		e.reason = r
	}
	e.mu.Unlock()
	e.stopped.Store(true)
}

// fail records an InputError for one component.
func (e *engine) fail(idx int, comp []string, err error) {
	ce := &ComponentError{Component: append([]string(nil), comp...), Err: err}
	e.mu.Lock()
	e.errs[idx] = ce
	e.mu.Unlock()
	e.opts.Logger.Warn("tcycle: component skipped", "component", idx, "error", err)
}

// finish assembles the Result.
func (e *engine) finish(res *Result, n int) *Result {
	if e.col != nil {
		res.Cycles = e.col.ordered()
	}
	for i := 0; i < n; i++ {
		if ce, ok := e.errs[i]; ok {
			res.Errors = append(res.Errors, ce)
		}
	}
	res.Reason = e.reason
	res.Truncated = e.reason != ReasonNone
	res.Stats = Stats{
		Components: int(e.stats.components.Load()),
		Roots:      int(e.stats.roots.Load()),
		Candidates: int(e.stats.candidates.Load()),
		Rejected:   int(e.stats.rejected.Load()),
		Pruned:     int(e.stats.pruned.Load()),
	}
	if res.Truncated {
		e.opts.Logger.Info("tcycle: search truncated", "reason", string(res.Reason))
	}

	return res
}

// collector deduplicates validated cycles, enforces MaxResults and either
// buffers cycles per component (Search) or forwards them (Stream).
type collector struct {
	e       *engine
	mu      sync.Mutex
	seen    map[string]struct{}
	buckets [][]Cycle
	fn      func(Cycle) bool
	keep    bool
	count   int
}

func newCollector(e *engine, n int, fn func(Cycle) bool, keep bool) *collector {
	return &collector{
		e:       e,
		seen:    make(map[string]struct{}),
		buckets: make([][]Cycle, n),
		fn:      fn,
		keep:    keep,
	}
}

// add records cy for component comp and reports whether the search must stop.
func (c *collector) add(comp int, cy Cycle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	limit := c.e.opts.MaxResults
	if limit >= 0 && c.count >= limit {
		c.e.halt(ReasonMaxResults)
		return true
	}
	sig := Signature(cy)
	if _, dup := c.seen[sig]; dup {
		return false
	}
	c.seen[sig] = struct{}{}
	c.count++
	if c.keep {
		c.buckets[comp] = append(c.buckets[comp], cy)
	}
	if c.fn != nil && !c.fn(cy) {
		c.e.halt(ReasonStopped)
		return true
	}
	if limit >= 0 && c.count >= limit {
		c.e.halt(ReasonMaxResults)
		return true
	}

	return false
}

// drop discards the buffered cycles of a failed component; they stop
// counting toward MaxResults.
func (c *collector) drop(comp int) {
	c.mu.Lock()
	for _, cy := range c.buckets[comp] {
		delete(c.seen, Signature(cy))
	}
	c.count -= len(c.buckets[comp])
	c.buckets[comp] = nil
	c.mu.Unlock()
}

// ordered concatenates the buckets and sorts stably by root node.
func (c *collector) ordered() []Cycle {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Cycle
	for _, b := range c.buckets {
		out = append(out, b...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Root() < out[j].Root() })

	return out
}
