// SPDX-License-Identifier: MIT

// Package cli implements the tempocycle command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tempocycle/config"
	"github.com/katalvlaran/tempocycle/report"
)

// Version is overridden at link time: -ldflags "-X .../internal/cli.Version=v1.2.3".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{report.FormatText, report.FormatJSON}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tempocycle",
		Short: "Find temporal cycles in timestamped event graphs",
		Long: `tempocycle enumerates temporal cycles: closed walks over distinct
vertices whose edges can be traversed at strictly increasing times.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", report.FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "YAML configuration file")

	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// loadConfig returns the configuration file named by --config, or defaults.
func (o *RootOptions) loadConfig() (config.Config, error) {
	if o.Config == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(o.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "load config", err)
	}

	return cfg, nil
}

// logger writes diagnostics to w: JSON lines with --format json, text
// otherwise. Debug records appear with --verbose only.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if o.Format == report.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}

	return slog.New(slog.NewTextHandler(w, hopts))
}

// NewVersionCommand prints the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tempocycle %s\n", Version)
			return err
		},
	}
}
