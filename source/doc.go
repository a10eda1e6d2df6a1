// SPDX-License-Identifier: MIT

// Package source turns external event feeds into tgraph snapshots.
//
// A feed is a list of Records (from, to, time). Records come from files
// (YAML / JSON, CSV or CUE edge lists) or from the SQL loaders in the sqlitesrc
// and pgsrc subpackages; Build folds them into a *tgraph.Graph.
//
// Node IDs are trimmed and normalized to Unicode NFC before insertion, so
// visually identical IDs typed on different systems name the same vertex.
//
// File formats:
//
//	# YAML (JSON is accepted too)
//	events:
//	  - {from: a, to: b, time: 2}
//	  - {from: b, to: a, time: 5}
//
//	# CSV, optional header row
//	from,to,time
//	a,b,2
//	b,a,5
//
//	// CUE, events may be computed
//	_legs: [["a", "b", 2], ["b", "a", 5]]
//	events: [for l in _legs {from: l[0], to: l[1], time: l[2]}]
package source
