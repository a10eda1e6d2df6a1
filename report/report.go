// SPDX-License-Identifier: MIT

// Package report renders search results for people (text) and machines
// (JSON). Every report carries a run ID so that CLI output, server
// responses and logs of one search can be correlated.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/tempocycle/tcycle"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Write for formats other than text and json.
var ErrUnknownFormat = errors.New("report: unknown format")

// ComponentError is the serializable form of tcycle.ComponentError.
type ComponentError struct {
	Component []string `json:"component"`
	Error     string   `json:"error"`
}

// Report is one rendered search.
type Report struct {
	RunID     string           `json:"run_id"`
	Cycles    []tcycle.Cycle   `json:"cycles"`
	Truncated bool             `json:"truncated"`
	Reason    tcycle.Reason    `json:"reason,omitempty"`
	Errors    []ComponentError `json:"errors,omitempty"`
	Stats     tcycle.Stats     `json:"stats"`
}

// NewRunID returns a random run identifier.
func NewRunID() string { return uuid.NewString() }

// New builds a report from res. An empty runID gets a fresh one.
func New(runID string, res *tcycle.Result) *Report {
	if runID == "" {
		runID = NewRunID()
	}
	r := &Report{
		RunID:     runID,
		Cycles:    res.Cycles,
		Truncated: res.Truncated,
		Reason:    res.Reason,
		Stats:     res.Stats,
	}
	if r.Cycles == nil {
		r.Cycles = []tcycle.Cycle{}
	}
	for _, ce := range res.Errors {
		r.Errors = append(r.Errors, ComponentError{Component: ce.Component, Error: ce.Err.Error()})
	}

	return r
}

// Write renders r in format.
func Write(w io.Writer, format string, r *Report) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatText:
		return WriteText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// WriteText writes one line per cycle, then diagnostics:
//
//	run 1f0c…: 1 cycle
//	  1. a -> b -> c -> d -> a  times 2,4,7,11  length 4  duration 9
//	stats: components=1 roots=1 candidates=1 rejected=0 pruned=0
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	noun := "cycles"
	if len(r.Cycles) == 1 {
		noun = "cycle"
	}
	fmt.Fprintf(&b, "run %s: %d %s\n", r.RunID, len(r.Cycles), noun)
	for i, c := range r.Cycles {
		fmt.Fprintf(&b, "  %d. %s  times %s  length %d  duration %d\n",
			i+1, path(c), times(c), c.Length, c.Duration)
	}
	if r.Truncated {
		fmt.Fprintf(&b, "truncated: %s\n", r.Reason)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "error: component [%s]: %s\n", strings.Join(e.Component, ","), e.Error)
	}
	s := r.Stats
	fmt.Fprintf(&b, "stats: components=%d roots=%d candidates=%d rejected=%d pruned=%d\n",
		s.Components, s.Roots, s.Candidates, s.Rejected, s.Pruned)

	_, err := io.WriteString(w, b.String())

	return err
}

// path renders the closed node sequence, root repeated at the end.
func path(c tcycle.Cycle) string {
	if len(c.Nodes) == 0 {
		return ""
	}

	return strings.Join(append(append([]string(nil), c.Nodes...), c.Nodes[0]), " -> ")
}

func times(c tcycle.Cycle) string {
	parts := make([]string, len(c.Edges))
	for i, e := range c.Edges {
		parts[i] = fmt.Sprint(e.Time)
	}

	return strings.Join(parts, ",")
}
