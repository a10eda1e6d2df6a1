// SPDX-License-Identifier: MIT

package tcycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tempocycle/tcycle"
)

func TestValidate_Greedy(t *testing.T) {
	c := tcycle.Candidate{
		Nodes: []string{"a", "b", "c", "d"},
		Times: [][]int64{{2}, {4}, {7}, {2, 11}},
	}

	got, ok := tcycle.Validate(c, -1)
	require.True(t, ok)
	assert.Equal(t, []int64{2, 4, 7, 11}, got.Timestamps())
	assert.Equal(t, int64(9), got.Duration)
	assert.Equal(t, 4, got.Length)
	assert.Equal(t, tcycle.Event{From: "d", To: "a", Time: 11}, got.Edges[3])
}

func TestValidate_Infeasible(t *testing.T) {
	cases := map[string]tcycle.Candidate{
		"last edge too early": {Nodes: []string{"a", "b"}, Times: [][]int64{{5}, {5}}},
		"false positive":      {Nodes: []string{"a", "b", "c"}, Times: [][]int64{{5}, {1, 6}, {2}}},
		"empty edge":          {Nodes: []string{"a", "b"}, Times: [][]int64{{1}, {}}},
		"shape mismatch":      {Nodes: []string{"a", "b"}, Times: [][]int64{{1}}},
		"no nodes":            {},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := tcycle.Validate(c, -1)
			assert.False(t, ok)
		})
	}
}

// TestValidate_DurationRestart needs a later start to satisfy the cap.
func TestValidate_DurationRestart(t *testing.T) {
	c := tcycle.Candidate{
		Nodes: []string{"a", "b", "c"},
		Times: [][]int64{{1, 8}, {9}, {10}},
	}

	got, ok := tcycle.Validate(c, -1)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 9, 10}, got.Timestamps())

	got, ok = tcycle.Validate(c, 2)
	require.True(t, ok)
	assert.Equal(t, []int64{8, 9, 10}, got.Timestamps())
	assert.Equal(t, int64(2), got.Duration)

	_, ok = tcycle.Validate(c, 1)
	assert.False(t, ok)
}

// TestValidate_SingleEdge covers a self-loop candidate.
func TestValidate_SingleEdge(t *testing.T) {
	got, ok := tcycle.Validate(tcycle.Candidate{Nodes: []string{"a"}, Times: [][]int64{{4, 9}}}, 0)
	require.True(t, ok)
	assert.Equal(t, []int64{4}, got.Timestamps())
	assert.Equal(t, int64(0), got.Duration)
}

// TestValidate_DoesNotAlias keeps the result independent of the candidate.
func TestValidate_DoesNotAlias(t *testing.T) {
	c := tcycle.Candidate{Nodes: []string{"a", "b"}, Times: [][]int64{{1}, {2}}}
	got, ok := tcycle.Validate(c, -1)
	require.True(t, ok)

	c.Nodes[0] = "zz"
	assert.Equal(t, "a", got.Nodes[0])
}

func TestRealizations_Order(t *testing.T) {
	c := tcycle.Candidate{
		Nodes: []string{"a", "b", "c"},
		Times: [][]int64{{1, 2, 7}, {3, 5}, {4, 6}},
	}

	got := tcycle.Realizations(c, -1, 10)
	var vecs [][]int64
	for _, cy := range got {
		vecs = append(vecs, cy.Timestamps())
	}
	// 7 on the first edge has no continuation and is never tried.
	assert.Equal(t, [][]int64{
		{1, 3, 4}, {1, 3, 6}, {1, 5, 6},
		{2, 3, 4}, {2, 3, 6}, {2, 5, 6},
	}, vecs)

	first, ok := tcycle.Validate(c, -1)
	require.True(t, ok)
	assert.Equal(t, first, got[0], "first realization is the greedy one")
}

func TestRealizations_LimitAndCap(t *testing.T) {
	c := tcycle.Candidate{
		Nodes: []string{"a", "b", "c"},
		Times: [][]int64{{1, 2, 7}, {3, 5}, {4, 6}},
	}

	assert.Len(t, tcycle.Realizations(c, -1, 2), 2)
	assert.Empty(t, tcycle.Realizations(c, -1, 0))

	got := tcycle.Realizations(c, 3, 10)
	var vecs [][]int64
	for _, cy := range got {
		vecs = append(vecs, cy.Timestamps())
	}
	assert.Equal(t, [][]int64{{1, 3, 4}, {2, 3, 4}}, vecs)
}

func TestRealizations_Infeasible(t *testing.T) {
	c := tcycle.Candidate{Nodes: []string{"a", "b", "c"}, Times: [][]int64{{5}, {1, 6}, {2}}}
	assert.Empty(t, tcycle.Realizations(c, -1, 5))
}
