// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: read-only adapters over the external Graph: a time-window filter,
// a per-search edge cache and an induced-subset view for re-partitioning.
// None of them mutate the underlying graph.

package tcycle

import (
	"context"
	"fmt"
	"sort"
)

// windowView hides every timestamp outside w. Edges left without any
// timestamp disappear from Successors.
type windowView struct {
	g Graph
	w Window
}

func (v windowView) Vertices() []string { return v.g.Vertices() }

func (v windowView) Successors(ctx context.Context, id string) ([]string, error) {
	succs, err := v.g.Successors(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(succs))
	for _, to := range succs {
		times, err := v.g.Times(ctx, id, to)
		if err != nil {
			return nil, err
		}
		// An edge without timestamps is malformed input, not a window miss;
		// keep it so the search reports ErrNoTimestamps.
		if len(times) == 0 || len(v.clip(times)) > 0 {
			out = append(out, to)
		}
	}

	return out, nil
}

func (v windowView) Times(ctx context.Context, from, to string) ([]int64, error) {
	times, err := v.g.Times(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return v.clip(times), nil
}

// clip returns the sub-slice of sorted times inside the window.
func (v windowView) clip(times []int64) []int64 {
	lo := sort.Search(len(times), func(k int) bool { return times[k] >= v.w.From })
	hi := sort.Search(len(times), func(k int) bool { return times[k] >= v.w.To })
	if lo >= hi {
		return nil
	}

	return times[lo:hi]
}

// span is the timestamp set of one structural edge; min and max are O(1).
type span []int64

func (s span) min() int64 { return s[0] }
func (s span) max() int64 { return s[len(s)-1] }

// edgeCache memoizes Successors and Times for one search context.
// It is owned by a single goroutine.
type edgeCache struct {
	ctx   context.Context
	g     Graph
	succs map[string][]string
	times map[[2]string]span
}

func newEdgeCache(ctx context.Context, g Graph) *edgeCache {
	return &edgeCache{
		ctx:   ctx,
		g:     g,
		succs: make(map[string][]string),
		times: make(map[[2]string]span),
	}
}

// successors returns the out-neighbours of id that are members of keep.
func (c *edgeCache) successors(id string, keep map[string]bool) ([]string, error) {
	all, ok := c.succs[id]
	if !ok {
		var err error
		if all, err = c.g.Successors(c.ctx, id); err != nil {
			return nil, fmt.Errorf("%w: Successors(%q): %w", ErrQuery, id, err)
		}
		c.succs[id] = all
	}
	out := make([]string, 0, len(all))
	for _, w := range all {
		if keep[w] {
			out = append(out, w)
		}
	}

	return out, nil
}

// span returns the timestamp set of from→to.
func (c *edgeCache) span(from, to string) (span, error) {
	key := [2]string{from, to}
	if s, ok := c.times[key]; ok {
		return s, nil
	}
	times, err := c.g.Times(c.ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: Times(%q,%q): %w", ErrQuery, from, to, err)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: %q→%q", ErrNoTimestamps, from, to)
	}
	c.times[key] = times

	return times, nil
}

// subsetView is the subgraph induced by keep, served from an edgeCache.
// It lets the Partitioner re-split a component after its root is removed.
type subsetView struct {
	cache *edgeCache
	keep  map[string]bool
}

func (v subsetView) Vertices() []string {
	out := make([]string, 0, len(v.keep))
	for id := range v.keep {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

func (v subsetView) Successors(_ context.Context, id string) ([]string, error) {
	return v.cache.successors(id, v.keep)
}
