// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration shared by the CLI and the
// HTTP server and turns its search section into tcycle options.
//
//	search:
//	  max_length: 6
//	  max_duration: 3600
//	  window: {from: 0, to: 86400}
//	  max_results: 10000
//	  timeout: 30s
//	  self_loops: false
//	  workers: 4
//	  realizations: 1
//	source:
//	  kind: sqlite          # file | sqlite | postgres
//	  dsn: events.db
//	server:
//	  addr: ":8080"
//
// Absent fields keep the values of Default.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tempocycle/tcycle"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Source kinds.
const (
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Config is the root document.
type Config struct {
	Search Search `yaml:"search"`
	Source Source `yaml:"source"`
	Server Server `yaml:"server"`
}

// Search mirrors tcycle.Options. Negative limits mean "no limit".
type Search struct {
	MaxLength    int           `yaml:"max_length"`
	MaxDuration  int64         `yaml:"max_duration"`
	Window       *Window       `yaml:"window"`
	MaxResults   int           `yaml:"max_results"`
	Timeout      time.Duration `yaml:"timeout"`
	SelfLoops    bool          `yaml:"self_loops"`
	Workers      int           `yaml:"workers"`
	Realizations int           `yaml:"realizations"`
}

// Window is a half-open [From, To) time filter.
type Window struct {
	From int64 `yaml:"from"`
	To   int64 `yaml:"to"`
}

// Source selects where events are read from.
type Source struct {
	Kind  string `yaml:"kind"`
	Path  string `yaml:"path"`  // file
	DSN   string `yaml:"dsn"`   // sqlite file or postgres URL
	Query string `yaml:"query"` // optional SQL override
}

// Server configures the HTTP API.
type Server struct {
	Addr      string        `yaml:"addr"`
	BodyLimit int           `yaml:"body_limit"` // bytes
	Timeout   time.Duration `yaml:"timeout"`    // upper bound per request search
	MaxEvents int           `yaml:"max_events"` // per request
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: Search{
			MaxLength:    -1,
			MaxDuration:  -1,
			MaxResults:   -1,
			Workers:      1,
			Realizations: 1,
		},
		Source: Source{Kind: KindFile},
		Server: Server{
			Addr:      ":8080",
			BodyLimit: 4 << 20,
			Timeout:   30 * time.Second,
			MaxEvents: 100000,
		},
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	s := c.Search
	if s.Window != nil && s.Window.From >= s.Window.To {
		return fmt.Errorf("%w: search.window: from (%d) must be below to (%d)", ErrInvalid, s.Window.From, s.Window.To)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: search.timeout must not be negative", ErrInvalid)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: search.workers must be at least 1", ErrInvalid)
	}
	if s.Realizations < 1 {
		return fmt.Errorf("%w: search.realizations must be at least 1", ErrInvalid)
	}
	switch c.Source.Kind {
	case KindFile, KindSQLite, KindPostgres:
	default:
		return fmt.Errorf("%w: source.kind %q", ErrInvalid, c.Source.Kind)
	}
	if c.Server.BodyLimit < 0 || c.Server.MaxEvents < 0 || c.Server.Timeout < 0 {
		return fmt.Errorf("%w: server limits must not be negative", ErrInvalid)
	}

	return nil
}

// Options converts the search section into tcycle options bound to ctx.
// A positive Timeout becomes an absolute deadline measured from now.
func (s Search) Options(ctx context.Context) []tcycle.Option {
	opts := []tcycle.Option{
		tcycle.WithContext(ctx),
		tcycle.WithMaxLength(s.MaxLength),
		tcycle.WithMaxDuration(s.MaxDuration),
		tcycle.WithMaxResults(s.MaxResults),
		tcycle.WithWorkers(s.Workers),
		tcycle.WithRealizations(s.Realizations),
	}
	if s.Window != nil {
		opts = append(opts, tcycle.WithTimeWindow(s.Window.From, s.Window.To))
	}
	if s.Timeout > 0 {
		opts = append(opts, tcycle.WithDeadline(time.Now().Add(s.Timeout)))
	}
	if s.SelfLoops {
		opts = append(opts, tcycle.WithSelfLoops())
	}

	return opts
}
