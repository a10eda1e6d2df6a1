// SPDX-License-Identifier: MIT
//
// File: file.go
// Role: YAML/JSON and CSV edge-list readers and the File source.

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the YAML/JSON file layout.
type document struct {
	Events []Record `yaml:"events"`
}

// ReadYAML decodes a YAML (or JSON) edge list. Unknown keys are rejected.
func ReadYAML(r io.Reader) ([]Record, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for i, rec := range doc.Events {
		if rec.From == "" || rec.To == "" {
			return nil, fmt.Errorf("%w: event %d: from and to are required", ErrMalformed, i)
		}
	}

	return doc.Events, nil
}

// ReadCSV decodes a three-column CSV edge list (from,to,time).
// A first row whose time column is not an integer is treated as a header.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Record
	for n := 1; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		t, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			if n == 1 {
				continue // header
			}
			return nil, fmt.Errorf("%w: row %d: time %q: %w", ErrMalformed, n, row[2], err)
		}
		if row[0] == "" || row[1] == "" {
			return nil, fmt.Errorf("%w: row %d: from and to are required", ErrMalformed, n)
		}
		out = append(out, Record{From: row[0], To: row[1], Time: t})
	}
}

// File is a Source backed by an edge-list file; the reader is chosen by
// extension (.yaml, .yml, .json, .csv or .cue).
type File struct {
	Path string
}

// Records opens and decodes the file.
func (f File) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var read func(io.Reader) ([]Record, error)
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml", ".json":
		read = ReadYAML
	case ".csv":
		read = ReadCSV
	case ".cue":
		read = ReadCUE
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f.Path)
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", f.Path, err)
	}
	defer fh.Close()

	recs, err := read(fh)
	if err != nil {
		return nil, fmt.Errorf("source: %q: %w", f.Path, err)
	}

	return recs, nil
}
