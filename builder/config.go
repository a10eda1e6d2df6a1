// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: builderConfig and its deterministic defaults.
//
// Defaults:
//   - idFn   = DefaultIDFn   ("0","1","2",...)
//   - rng    = nil           (no randomness unless seeded)
//   - timeFn = DefaultTimeFn (edge k gets time k+1)
//   - step   = shared counter of emitted edges across constructors

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors. Constructors
// receive it by value; only the step counter is shared.
type builderConfig struct {
	idFn   IDFn
	rng    *rand.Rand
	timeFn TimeFn
	step   *int
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:   DefaultIDFn,
		timeFn: DefaultTimeFn,
		step:   new(int),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// nextStep returns the emission index of the next edge.
func (c builderConfig) nextStep() int {
	s := *c.step
	*c.step++

	return s
}
