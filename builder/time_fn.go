// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math/rand"
)

// TimeFn returns the timestamps of the edge emitted at position step.
// It must be deterministic for a given RNG state and return at least one
// timestamp.
type TimeFn func(rng *rand.Rand, step int) []int64

// DefaultTimeFn stamps the k-th emitted edge with time k+1, a global clock
// that makes every Cycle temporally feasible from its first vertex.
func DefaultTimeFn(_ *rand.Rand, step int) []int64 {
	return []int64{int64(step) + 1}
}

// ConstantTimeFn stamps every edge with the same timestamps. Panics on an
// empty list.
func ConstantTimeFn(ts ...int64) TimeFn {
	if len(ts) == 0 {
		panic("ConstantTimeFn: at least one timestamp is required")
	}
	return func(*rand.Rand, int) []int64 {
		return append([]int64(nil), ts...)
	}
}

// UniformTimeFn draws k timestamps uniformly from [from, to) per edge;
// duplicates collapse in the graph. With a nil RNG it falls back to
// DefaultTimeFn. Panics if k < 1 or to <= from.
func UniformTimeFn(k int, from, to int64) TimeFn {
	if k < 1 || to <= from {
		panic(fmt.Sprintf("UniformTimeFn: require k ≥ 1 and from < to, got k=%d from=%d to=%d", k, from, to))
	}
	return func(rng *rand.Rand, step int) []int64 {
		if rng == nil {
			return DefaultTimeFn(nil, step)
		}
		out := make([]int64, k)
		for i := range out {
			out[i] = from + rng.Int63n(to-from)
		}
		return out
	}
}
