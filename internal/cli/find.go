// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tempocycle/config"
	"github.com/katalvlaran/tempocycle/report"
	"github.com/katalvlaran/tempocycle/source"
	"github.com/katalvlaran/tempocycle/source/pgsrc"
	"github.com/katalvlaran/tempocycle/source/sqlitesrc"
	"github.com/katalvlaran/tempocycle/tcycle"
	"github.com/katalvlaran/tempocycle/tgraph"
)

// findFlags are the search overrides of the find command. Only flags set on
// the command line replace configuration values.
type findFlags struct {
	kind         string
	dsn          string
	query        string
	maxLength    int
	maxDuration  int64
	windowFrom   int64
	windowTo     int64
	maxResults   int
	timeout      time.Duration
	selfLoops    bool
	workers      int
	realizations int
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	f := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find [events-file]",
		Short: "Enumerate temporal cycles",
		Long: `Read timestamped events and print every temporal cycle.

Events come from a YAML, JSON, CSV or CUE file (the argument), or from a
database selected with --source sqlite|postgres and --dsn.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, rootOpts, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.kind, "source", config.KindFile, "event source (file|sqlite|postgres)")
	fl.StringVar(&f.dsn, "dsn", "", "database file (sqlite) or URL (postgres)")
	fl.StringVar(&f.query, "query", "", "SQL returning (from, to, time) rows")
	fl.IntVar(&f.maxLength, "max-length", -1, "maximum cycle length, -1 for none")
	fl.Int64Var(&f.maxDuration, "max-duration", -1, "maximum cycle duration, -1 for none")
	fl.Int64Var(&f.windowFrom, "window-from", 0, "keep timestamps >= this value (needs --window-to)")
	fl.Int64Var(&f.windowTo, "window-to", 0, "keep timestamps < this value (needs --window-from)")
	fl.IntVar(&f.maxResults, "max-results", -1, "stop after this many cycles, -1 for none")
	fl.DurationVar(&f.timeout, "timeout", 0, "stop the search after this long, 0 for none")
	fl.BoolVar(&f.selfLoops, "self-loops", false, "report self-loops as length-1 cycles")
	fl.IntVar(&f.workers, "workers", 1, "components searched concurrently")
	fl.IntVar(&f.realizations, "realizations", 1, "timestamp assignments reported per cycle")
	cmd.MarkFlagsRequiredTogether("window-from", "window-to")

	return cmd
}

func runFind(cmd *cobra.Command, rootOpts *RootOptions, f *findFlags, args []string) error {
	// 1) Configuration: file, then flags.
	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}
	f.apply(cmd, &cfg)
	if len(args) == 1 {
		cfg.Source.Path = args[0]
	}
	if err = cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid options", err)
	}
	logger := rootOpts.logger(cmd.ErrOrStderr())

	// 2) Read events.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src, closeSrc, err := openSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer closeSrc()

	g, err := source.Build(ctx, src, tgraph.WithLoops())
	if err != nil {
		return WrapExitError(ExitCommandError, "read events", err)
	}
	st := g.Stats()
	logger.Debug("cli: events loaded", "vertices", st.Vertices, "edges", st.Edges, "events", st.Events)

	// 3) Search and render.
	runID := report.NewRunID()
	opts := append(cfg.Search.Options(ctx), tcycle.WithLogger(logger.With("run_id", runID)))
	res, err := tcycle.Search(g, opts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "search", err)
	}
	if err = report.Write(cmd.OutOrStdout(), rootOpts.Format, report.New(runID, res)); err != nil {
		return WrapExitError(ExitCommandError, "write report", err)
	}
	if len(res.Errors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d component(s) failed", len(res.Errors)))
	}

	return nil
}

// apply copies every flag set on the command line into cfg.
func (f *findFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("source") {
		cfg.Source.Kind = f.kind
	}
	if fl.Changed("dsn") {
		cfg.Source.DSN = f.dsn
	}
	if fl.Changed("query") {
		cfg.Source.Query = f.query
	}
	s := &cfg.Search
	if fl.Changed("max-length") {
		s.MaxLength = f.maxLength
	}
	if fl.Changed("max-duration") {
		s.MaxDuration = f.maxDuration
	}
	if fl.Changed("window-from") {
		s.Window = &config.Window{From: f.windowFrom, To: f.windowTo}
	}
	if fl.Changed("max-results") {
		s.MaxResults = f.maxResults
	}
	if fl.Changed("timeout") {
		s.Timeout = f.timeout
	}
	if fl.Changed("self-loops") {
		s.SelfLoops = f.selfLoops
	}
	if fl.Changed("workers") {
		s.Workers = f.workers
	}
	if fl.Changed("realizations") {
		s.Realizations = f.realizations
	}
}

// openSource opens the configured feed; the returned func releases it.
func openSource(ctx context.Context, sc config.Source) (source.Source, func(), error) {
	switch sc.Kind {
	case config.KindSQLite:
		var opts []sqlitesrc.Option
		if sc.Query != "" {
			opts = append(opts, sqlitesrc.WithQuery(sc.Query))
		}
		src, err := sqlitesrc.Open(sc.DSN, opts...)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open sqlite source", err)
		}
		return src, func() { _ = src.Close() }, nil

	case config.KindPostgres:
		var opts []pgsrc.Option
		if sc.Query != "" {
			opts = append(opts, pgsrc.WithQuery(sc.Query))
		}
		src, err := pgsrc.Connect(ctx, sc.DSN, opts...)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "open postgres source", err)
		}
		return src, src.Close, nil

	default:
		if sc.Path == "" {
			return nil, nil, NewExitError(ExitCommandError, "events file required")
		}
		return source.File{Path: sc.Path}, func() {}, nil
	}
}
