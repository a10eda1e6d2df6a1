// SPDX-License-Identifier: MIT
//
// File: cue.go
// Role: CUE edge-list reader. CUE files may compute their events with
// comprehensions; the result is checked against eventSchema before decoding.

package source

import (
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// eventSchema closes the file layout: unknown keys and empty IDs are errors.
const eventSchema = `
#Event: {
	from: string & !=""
	to:   string & !=""
	time: int
}
events?: [...#Event]
`

// ReadCUE evaluates a CUE edge list and decodes its events field.
// A file without events yields no records.
func ReadCUE(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read cue: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(eventSchema)
	if err = schema.Err(); err != nil {
		return nil, fmt.Errorf("source: cue schema: %w", err)
	}
	v := schema.Unify(ctx.CompileBytes(data))
	if err = v.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	events := v.LookupPath(cue.ParsePath("events"))
	if !events.Exists() {
		return nil, nil
	}
	if err = events.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var recs []Record
	if err = events.Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return recs, nil
}
