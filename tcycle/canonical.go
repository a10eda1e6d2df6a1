// SPDX-License-Identifier: MIT
//
// File: canonical.go
// Role: rotation-invariant cycle signatures (Booth's least rotation).

package tcycle

import (
	"strconv"
	"strings"
)

// MinimalRotation returns the start index of the lexicographically least
// rotation of s (Booth's algorithm, O(n)). It returns 0 for an empty slice.
func MinimalRotation(s []string) int {
	n := len(s)
	if n == 0 {
		return 0
	}
	at := func(i int) string { return s[i%n] }

	f := make([]int, 2*n) // failure links over the doubled sequence
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && at(j) != at(k+i+1) {
			if at(j) < at(k+i+1) {
				k = j - i - 1
			}
			i = f[i]
		}
		if at(j) != at(k+i+1) { // here i == -1
			if at(j) < at(k) {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	return k % n
}

// Signature returns a key identifying c up to rotation. Nodes and timestamps
// are rotated together so that equal cycles emitted from different roots
// share one key.
func Signature(c Cycle) string {
	k := MinimalRotation(c.Nodes)
	n := len(c.Nodes)

	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Nodes[(k+i)%n])
	}
	b.WriteByte('|')
	for i := 0; i < len(c.Edges); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(c.Edges[(k+i)%len(c.Edges)].Time, 10))
	}

	return b.String()
}
