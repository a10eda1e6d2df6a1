// SPDX-License-Identifier: MIT

// Package builder generates deterministic temporal graph fixtures for tests,
// benchmarks and the `tempocycle generate` command.
//
// A fixture is assembled by BuildGraph from one or more Constructors
// (Cycle, Path, Complete, RandomSparse). Constructors add vertices through
// an ID scheme (IDFn) and stamp every emitted edge through a timestamp
// policy (TimeFn):
//
//	g, err := builder.BuildGraph(nil,
//	    []builder.BuilderOption{builder.WithSeed(7), builder.WithTimeFn(builder.UniformTimeFn(2, 0, 100))},
//	    builder.RandomSparse(50, 0.1))
//
// Determinism: the same constructors, options and seed always produce the
// same graph. Edges are emitted in a documented order and the TimeFn sees
// the emission index, so the default policy (DefaultTimeFn) gives every
// edge of a Cycle a strictly later time than the previous one.
//
// Option constructors panic on meaningless input (nil functions, empty
// ranges); constructors never panic and return the sentinel errors below.
package builder
