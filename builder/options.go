// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// BuilderOption customizes builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the vertex ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic constructors and time
// policies. Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed attaches a new RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithTimeFn sets the timestamp policy for emitted edges. Panics on nil.
func WithTimeFn(fn TimeFn) BuilderOption {
	if fn == nil {
		panic("builder: WithTimeFn(nil)")
	}
	return func(c *builderConfig) { c.timeFn = fn }
}
