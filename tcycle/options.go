// SPDX-License-Identifier: MIT

package tcycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/katalvlaran/tempocycle/scc"
)

// Option configures a search. Use with Search(g, opts...) or Stream(g, fn, opts...).
type Option func(*Options)

// Window restricts usable timestamps to the half-open range [From, To).
type Window struct {
	From int64
	To   int64
}

// Contains reports whether t lies in the window.
func (w Window) Contains(t int64) bool { return t >= w.From && t < w.To }

// Options holds the configurable parameters of a search.
// Negative limits mean "no limit".
type Options struct {
	// Ctx allows cancellation; a context deadline truncates like Deadline.
	Ctx context.Context

	// Deadline, if non-zero, truncates the search once passed.
	Deadline time.Time

	// MaxLength caps the number of edges of a cycle. Default -1.
	MaxLength int

	// MaxDuration caps t(L-1) - t0 of a cycle. Default -1.
	MaxDuration int64

	// Window, if non-nil, hides every timestamp outside it before the search.
	Window *Window

	// MaxResults stops the search after this many cycles. Default -1.
	MaxResults int

	// SelfLoops reports v→v edges as length-1 cycles. Default false.
	SelfLoops bool

	// Workers is the number of components searched concurrently. Default 1.
	Workers int

	// Realizations is the number of timestamp assignments reported per
	// structural cycle. Default 1 (the earliest assignment only).
	Realizations int

	// Partitioner computes strongly connected components. Default scc.Tarjan{}.
	Partitioner Partitioner

	// Logger receives progress (Debug), truncation (Info) and InputErrors (Warn).
	Logger *slog.Logger
}

// DefaultOptions returns Options with no limits, one worker, one realization,
// Tarjan partitioning and slog.Default().
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		MaxLength:    -1,
		MaxDuration:  -1,
		MaxResults:   -1,
		Workers:      1,
		Realizations: 1,
		Partitioner:  scc.Tarjan{},
		Logger:       slog.Default(),
	}
}

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDeadline truncates the search at d.
func WithDeadline(d time.Time) Option {
	return func(o *Options) { o.Deadline = d }
}

// WithMaxLength caps cycle length (edge count); negative disables the cap.
func WithMaxLength(n int) Option {
	return func(o *Options) { o.MaxLength = n }
}

// WithMaxDuration caps cycle duration; negative disables the cap.
func WithMaxDuration(d int64) Option {
	return func(o *Options) { o.MaxDuration = d }
}

// WithTimeWindow keeps only timestamps in [from, to).
func WithTimeWindow(from, to int64) Option {
	return func(o *Options) { o.Window = &Window{From: from, To: to} }
}

// WithMaxResults stops after n cycles; negative disables the cap.
func WithMaxResults(n int) Option {
	return func(o *Options) { o.MaxResults = n }
}

// WithSelfLoops reports self-loop edges as degenerate length-1 cycles.
func WithSelfLoops() Option {
	return func(o *Options) { o.SelfLoops = true }
}

// WithWorkers searches up to n components concurrently. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Workers = n
	}
}

// WithRealizations reports up to n distinct timestamp assignments per
// structural cycle. Values below 1 mean 1.
func WithRealizations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Realizations = n
	}
}

// WithPartitioner injects the SCC primitive. A nil partitioner has no effect.
func WithPartitioner(p Partitioner) Option {
	return func(o *Options) {
		if p != nil {
			o.Partitioner = p
		}
	}
}

// WithLogger sets the structured logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
