// SPDX-License-Identifier: MIT
//
// File: write.go
// Role: graph → records, and YAML / CSV edge-list writers.

package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tempocycle/tgraph"
)

// FromGraph flattens g into one record per event, ordered by edge and time.
func FromGraph(g *tgraph.Graph) []Record {
	var out []Record
	for _, e := range g.Edges() {
		for _, t := range e.Times {
			out = append(out, Record{From: e.From, To: e.To, Time: t})
		}
	}

	return out
}

// WriteYAML writes recs in the layout read by ReadYAML.
func WriteYAML(w io.Writer, recs []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Events: recs}); err != nil {
		return fmt.Errorf("source: encode yaml: %w", err)
	}

	return enc.Close()
}

// WriteCSV writes recs with a from,to,time header.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to", "time"}); err != nil {
		return fmt.Errorf("source: write csv: %w", err)
	}
	for _, r := range recs {
		if err := cw.Write([]string{r.From, r.To, strconv.FormatInt(r.Time, 10)}); err != nil {
			return fmt.Errorf("source: write csv: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
