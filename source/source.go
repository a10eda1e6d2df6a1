// SPDX-License-Identifier: MIT
//
// File: source.go
// Role: Record type, the Source contract, ID normalization and Build.

package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/tempocycle/tgraph"
)

var (
	// ErrMalformed indicates a record that cannot be parsed.
	ErrMalformed = errors.New("source: malformed record")

	// ErrUnknownFormat indicates a file extension with no reader.
	ErrUnknownFormat = errors.New("source: unknown file format")

	// ErrNoEvents indicates a feed that produced no records.
	ErrNoEvents = errors.New("source: no events")
)

// Record is one timestamped event from → to.
type Record struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to"   json:"to"`
	Time int64  `yaml:"time" json:"time"`
}

// Source yields the records of one feed.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// NormalizeID trims surrounding white space and applies Unicode NFC.
func NormalizeID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}

// Build reads every record of src into a new graph.
// ErrNoEvents is returned for an empty feed.
func Build(ctx context.Context, src Source, opts ...tgraph.GraphOption) (*tgraph.Graph, error) {
	recs, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoEvents
	}

	g := tgraph.NewGraph(opts...)
	if err = Load(g, recs); err != nil {
		return nil, err
	}

	return g, nil
}

// Load inserts recs into g with normalized IDs.
func Load(g *tgraph.Graph, recs []Record) error {
	for i, r := range recs {
		if err := g.AddEvent(NormalizeID(r.From), NormalizeID(r.To), r.Time); err != nil {
			return fmt.Errorf("source: record %d (%q→%q): %w", i, r.From, r.To, err)
		}
	}

	return nil
}

// Slice is an in-memory Source.
type Slice []Record

// Records returns the slice itself.
func (s Slice) Records(context.Context) ([]Record, error) { return s, nil }
