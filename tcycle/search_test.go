// SPDX-License-Identifier: MIT

package tcycle_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tempocycle/scc"
	"github.com/katalvlaran/tempocycle/tcycle"
	"github.com/katalvlaran/tempocycle/tgraph"
)

// squareEvents is the four-node scenario: a→b{2}, b→c{4}, c→d{7}, d→a{2,11}.
var squareEvents = []ev{
	{"a", "b", 2}, {"b", "c", 4}, {"c", "d", 7}, {"d", "a", 2}, {"d", "a", 11},
}

// TestSearch_Square finds exactly one cycle with timestamps (2,4,7,11).
func TestSearch_Square(t *testing.T) {
	g := buildGraph(t, squareEvents)

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)

	c := res.Cycles[0]
	assert.Equal(t, []string{"a", "b", "c", "d"}, c.Nodes)
	assert.Equal(t, []int64{2, 4, 7, 11}, c.Timestamps())
	assert.Equal(t, 4, c.Length)
	assert.Equal(t, int64(9), c.Duration)
	assert.Equal(t, tcycle.Event{From: "d", To: "a", Time: 11}, c.Edges[3])
	assert.False(t, res.Truncated)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Stats.Components)
	assert.Equal(t, 1, res.Stats.Candidates)
}

// TestSearch_SquareInfeasible drops the only late timestamp on d→a.
func TestSearch_SquareInfeasible(t *testing.T) {
	g := buildGraph(t, []ev{{"a", "b", 2}, {"b", "c", 4}, {"c", "d", 7}, {"d", "a", 1}})

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	assert.Empty(t, res.Cycles)
	assert.False(t, res.Truncated)
	assert.Empty(t, res.Errors) // infeasibility is not an error
	assert.Equal(t, 0, res.Stats.Candidates)
	assert.Positive(t, res.Stats.Pruned) // min(c→d)=7 >= max(d→a)=1
}

// TestSearch_PruningFalsePositive passes every pairwise check but fails validation.
func TestSearch_PruningFalsePositive(t *testing.T) {
	g := buildGraph(t, []ev{{"a", "b", 5}, {"b", "c", 1}, {"b", "c", 6}, {"c", "a", 2}})

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	assert.Empty(t, res.Cycles)
	assert.Equal(t, 1, res.Stats.Candidates)
	assert.Equal(t, 1, res.Stats.Rejected)
}

// TestSearch_PruningDoesNotBlock reaches x first through a pruned branch and
// then through a feasible one; the second route must still be explored.
func TestSearch_PruningDoesNotBlock(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "b", 10}, {"b", "x", 11}, // x reached late: x→a{5} pruned
		{"a", "c", 1}, {"c", "x", 2}, // x reached early: feasible
		{"x", "a", 5},
	})

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"a", "c", "x"}, res.Cycles[0].Nodes)
	assert.Equal(t, []int64{1, 2, 5}, res.Cycles[0].Timestamps())
}

// TestSearch_SelfLoopPolicy covers both sides of the self-loop flag.
func TestSearch_SelfLoopPolicy(t *testing.T) {
	g := buildGraph(t, []ev{{"a", "a", 3}, {"a", "a", 5}}, tgraph.WithLoops())

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	assert.Empty(t, res.Cycles, "self-loops are not reported by default")

	res, err = tcycle.Search(g, tcycle.WithSelfLoops())
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"a"}, res.Cycles[0].Nodes)
	assert.Equal(t, []int64{3}, res.Cycles[0].Timestamps())
	assert.Equal(t, 1, res.Cycles[0].Length)
	assert.Equal(t, int64(0), res.Cycles[0].Duration)
}

// TestSearch_SelfLoopInsideComponent reports loops of larger components once.
func TestSearch_SelfLoopInsideComponent(t *testing.T) {
	g := buildGraph(t, []ev{{"a", "b", 1}, {"b", "a", 2}, {"b", "b", 4}}, tgraph.WithLoops())

	res, err := tcycle.Search(g, tcycle.WithSelfLoops())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a,b": true, "b": true}, keys(res.Cycles))

	res, err = tcycle.Search(g)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a,b": true}, keys(res.Cycles))
}

// TestSearch_OrderedByRoot keeps output sorted by root across components.
func TestSearch_OrderedByRoot(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "z", 1}, {"z", "a", 2}, // component {a,z}
		{"b", "c", 1}, {"c", "b", 2}, // component {b,c}
		{"y", "z", 3}, {"z", "y", 4}, // joins {a,y,z}
	})

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	var roots []string
	for _, c := range res.Cycles {
		roots = append(roots, c.Root())
	}
	assert.Equal(t, []string{"a", "b", "y"}, roots)
}

// TestSearch_MatchesBruteForce is the completeness property on random graphs.
func TestSearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	type limits struct {
		maxLen int
		maxDur int64
		window *tcycle.Window
	}
	cases := []limits{
		{-1, -1, nil},
		{3, -1, nil},
		{-1, 4, nil},
		{4, 6, nil},
		{-1, -1, &tcycle.Window{From: 2, To: 8}},
	}

	for round := 0; round < 60; round++ {
		n := 3 + rng.Intn(4)
		g := randomGraph(t, rng, n, 0.45, 10)
		for _, lim := range cases {
			opts := []tcycle.Option{tcycle.WithMaxLength(lim.maxLen), tcycle.WithMaxDuration(lim.maxDur)}
			if lim.window != nil {
				opts = append(opts, tcycle.WithTimeWindow(lim.window.From, lim.window.To))
			}
			res, err := tcycle.Search(g, opts...)
			require.NoError(t, err)

			want := bruteForce(t, g, lim.maxLen, lim.maxDur, lim.window)
			require.Equal(t, sortedKeys(want), sortedKeys(keys(res.Cycles)),
				"round %d limits %+v\nedges: %s", round, lim, spew.Sdump(g.Edges()))
			require.Len(t, res.Cycles, len(want), "duplicates emitted")

			for _, c := range res.Cycles {
				requireValidCycle(t, g, c)
				if lim.maxDur >= 0 {
					require.LessOrEqual(t, c.Duration, lim.maxDur)
				}
				if lim.window != nil {
					for _, e := range c.Edges {
						require.True(t, lim.window.Contains(e.Time))
					}
				}
			}
		}
	}
}

// TestSearch_Idempotent runs twice, sequentially and in parallel.
func TestSearch_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGraph(t, rng, 8, 0.35, 20)

	first, err := tcycle.Search(g)
	require.NoError(t, err)
	second, err := tcycle.Search(g)
	require.NoError(t, err)
	parallel, err := tcycle.Search(g, tcycle.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, first.Cycles, second.Cycles)
	assert.Equal(t, first.Cycles, parallel.Cycles)
}

// TestSearch_ParallelComponents spreads disjoint components over workers.
func TestSearch_ParallelComponents(t *testing.T) {
	var events []ev
	for _, p := range []string{"a", "b", "c", "d", "e", "f"} {
		events = append(events,
			ev{p + "1", p + "2", 1}, ev{p + "2", p + "3", 2}, ev{p + "3", p + "1", 3})
	}
	g := buildGraph(t, events)

	res, err := tcycle.Search(g, tcycle.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, res.Cycles, 6)
	assert.Equal(t, 6, res.Stats.Components)
	assert.Equal(t, "a1", res.Cycles[0].Root())
	assert.Equal(t, "f1", res.Cycles[5].Root())
}

// TestSearch_MaxResults truncates with an explicit marker.
func TestSearch_MaxResults(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "b", 1}, {"b", "a", 2},
		{"a", "c", 1}, {"c", "a", 2},
		{"a", "d", 1}, {"d", "a", 2},
	})

	res, err := tcycle.Search(g, tcycle.WithMaxResults(2))
	require.NoError(t, err)
	assert.Len(t, res.Cycles, 2)
	assert.True(t, res.Truncated)
	assert.Equal(t, tcycle.ReasonMaxResults, res.Reason)
}

// TestSearch_DeadlinePassed returns a truncated, empty result instead of an error.
func TestSearch_DeadlinePassed(t *testing.T) {
	g := buildGraph(t, squareEvents)

	res, err := tcycle.Search(g, tcycle.WithDeadline(time.Now().Add(-time.Second)))
	require.NoError(t, err)
	assert.Empty(t, res.Cycles)
	assert.True(t, res.Truncated)
	assert.Equal(t, tcycle.ReasonDeadline, res.Reason)
}

// TestSearch_ContextCanceled maps cancellation to truncation.
func TestSearch_ContextCanceled(t *testing.T) {
	g := buildGraph(t, squareEvents)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := tcycle.Search(g, tcycle.WithContext(ctx))
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, tcycle.ReasonCanceled, res.Reason)
}

// TestStream_StopEarly stops from the callback.
func TestStream_StopEarly(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "b", 1}, {"b", "a", 2},
		{"c", "d", 1}, {"d", "c", 2},
	})

	var got []tcycle.Cycle
	res, err := tcycle.Stream(g, func(c tcycle.Cycle) bool {
		got = append(got, c)
		return false
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Empty(t, res.Cycles)
	assert.True(t, res.Truncated)
	assert.Equal(t, tcycle.ReasonStopped, res.Reason)
}

// TestStream_DeliversAll streams every cycle without truncation.
func TestStream_DeliversAll(t *testing.T) {
	g := buildGraph(t, squareEvents)

	var got []tcycle.Cycle
	res, err := tcycle.Stream(g, func(c tcycle.Cycle) bool {
		got = append(got, c)
		return true
	}, tcycle.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, res.Truncated)
}

// TestSearch_Realizations reports several assignments per structural cycle.
func TestSearch_Realizations(t *testing.T) {
	g := buildGraph(t, []ev{{"a", "b", 1}, {"a", "b", 2}, {"b", "a", 3}, {"b", "a", 4}})

	res, err := tcycle.Search(g, tcycle.WithRealizations(10))
	require.NoError(t, err)
	require.Len(t, res.Cycles, 4)
	assert.Equal(t, []int64{1, 3}, res.Cycles[0].Timestamps())
	assert.Equal(t, []int64{2, 4}, res.Cycles[3].Timestamps())

	res, err = tcycle.Search(g, tcycle.WithRealizations(10), tcycle.WithMaxDuration(1))
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []int64{2, 3}, res.Cycles[0].Timestamps())
}

// TestSearch_InputErrors covers whole-run failures.
func TestSearch_InputErrors(t *testing.T) {
	_, err := tcycle.Search(nil)
	assert.ErrorIs(t, err, tcycle.ErrGraphNil)

	_, err = tcycle.Search(tgraph.NewGraph())
	assert.ErrorIs(t, err, tcycle.ErrEmptyGraph)
}

// brokenGraph reports an empty timestamp set for one edge and fails
// lookups on another.
type brokenGraph struct {
	*tgraph.Graph
	empty [2]string
	fail  [2]string
}

var errEngine = errors.New("engine unavailable")

func (b brokenGraph) Times(ctx context.Context, from, to string) ([]int64, error) {
	switch [2]string{from, to} {
	case b.empty:
		return nil, nil
	case b.fail:
		return nil, errEngine
	}
	return b.Graph.Times(ctx, from, to)
}

// TestSearch_ComponentErrors confines InputErrors to their components.
func TestSearch_ComponentErrors(t *testing.T) {
	base := buildGraph(t, []ev{
		{"a", "b", 1}, {"b", "a", 2}, // malformed: b→a reports no timestamps
		{"c", "d", 1}, {"d", "c", 2}, // healthy
		{"e", "f", 1}, {"f", "e", 2}, // engine failure on f→e
	})
	g := brokenGraph{Graph: base, empty: [2]string{"b", "a"}, fail: [2]string{"f", "e"}}

	res, err := tcycle.Search(g)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c,d": true}, keys(res.Cycles))
	require.Len(t, res.Errors, 2)

	assert.Equal(t, []string{"a", "b"}, res.Errors[0].Component)
	assert.ErrorIs(t, res.Errors[0], tcycle.ErrNoTimestamps)
	assert.Equal(t, []string{"e", "f"}, res.Errors[1].Component)
	assert.ErrorIs(t, res.Errors[1], tcycle.ErrQuery)
	assert.ErrorIs(t, res.Errors[1], errEngine)

	var ce *tcycle.ComponentError
	require.ErrorAs(t, res.Errors[1], &ce)
	assert.Contains(t, ce.Error(), "component [e,f]")
}

// countingPartitioner delegates to Tarjan and counts calls.
type countingPartitioner struct{ calls int }

func (p *countingPartitioner) Components(ctx context.Context, g scc.Graph) ([][]string, error) {
	p.calls++
	return scc.Tarjan{}.Components(ctx, g)
}

// TestSearch_InjectedPartitioner uses the injected SCC primitive for every split.
func TestSearch_InjectedPartitioner(t *testing.T) {
	g := buildGraph(t, squareEvents)
	p := &countingPartitioner{}

	res, err := tcycle.Search(g, tcycle.WithPartitioner(p))
	require.NoError(t, err)
	assert.Len(t, res.Cycles, 1)
	assert.GreaterOrEqual(t, p.calls, 2) // whole graph + re-split after root a
}

// reversingPartitioner lists components and their members in reverse order.
type reversingPartitioner struct{}

func (reversingPartitioner) Components(ctx context.Context, g scc.Graph) ([][]string, error) {
	comps, err := scc.Tarjan{}.Components(ctx, g)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(comps))
	for i := len(comps) - 1; i >= 0; i-- {
		c := make([]string, 0, len(comps[i]))
		for j := len(comps[i]) - 1; j >= 0; j-- {
			c = append(c, comps[i][j])
		}
		out = append(out, c)
	}

	return out, nil
}

// TestSearch_UnsortedPartition keeps the smallest node as root whatever
// order the partitioner lists members in.
func TestSearch_UnsortedPartition(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "b", 2}, {"b", "c", 4}, {"c", "d", 7}, {"d", "a", 1}, {"d", "a", 11},
	})

	res, err := tcycle.Search(g, tcycle.WithPartitioner(reversingPartitioner{}))
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	c := res.Cycles[0]
	assert.Equal(t, []string{"a", "b", "c", "d"}, c.Nodes)
	assert.Equal(t, []int64{2, 4, 7, 11}, c.Timestamps())
	assert.Equal(t, int64(9), c.Duration)
}

// TestSearch_UnsortedPartitionMatchesBruteForce repeats the completeness
// property with a partitioner whose output order differs from Tarjan's.
func TestSearch_UnsortedPartitionMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 40; round++ {
		g := randomGraph(t, rng, 3+rng.Intn(4), 0.45, 10)

		res, err := tcycle.Search(g, tcycle.WithPartitioner(reversingPartitioner{}))
		require.NoError(t, err)
		want := bruteForce(t, g, -1, -1, nil)
		require.Equal(t, sortedKeys(want), sortedKeys(keys(res.Cycles)), "round %d", round)
		for _, c := range res.Cycles {
			requireValidCycle(t, g, c)
		}
	}
}

var errPartition = errors.New("partition unavailable")

// flakyPartitioner fails on exactly one call, counted from 1.
type flakyPartitioner struct {
	failOn int
	calls  int
}

func (p *flakyPartitioner) Components(ctx context.Context, g scc.Graph) ([][]string, error) {
	p.calls++
	if p.calls == p.failOn {
		return nil, errPartition
	}

	return scc.Tarjan{}.Components(ctx, g)
}

// TestSearch_FailedComponentReleasesResults drops the cycles of a component
// that failed mid-search; they no longer count toward MaxResults.
func TestSearch_FailedComponentReleasesResults(t *testing.T) {
	g := buildGraph(t, []ev{
		{"a", "b", 1}, {"b", "a", 2}, {"b", "c", 3}, {"c", "b", 4},
		{"x", "y", 1}, {"y", "x", 2},
	})

	// Call 1 partitions the graph, call 2 re-splits {b,c} after root a.
	res, err := tcycle.Search(g,
		tcycle.WithPartitioner(&flakyPartitioner{failOn: 2}),
		tcycle.WithMaxResults(2),
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"x,y": true}, keys(res.Cycles))
	assert.False(t, res.Truncated)
	assert.Equal(t, tcycle.ReasonNone, res.Reason)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, []string{"a", "b", "c"}, res.Errors[0].Component)
	assert.ErrorIs(t, res.Errors[0], errPartition)
}
