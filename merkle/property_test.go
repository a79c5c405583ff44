// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyWitnessTracksTreeAcrossRandomAppendSequences is the
// property-based counterpart to I1 (witness-root convergence) and I2
// (position monotonicity): for any sequence of appends, a witness
// created at any point and kept synchronised always reports the same
// root as the tree, and its recorded position never drifts from the
// count of appends that preceded its creation.
func TestPropertyWitnessTracksTreeAcrossRandomAppendSequences(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := NewTree()
		var witnesses []*Witness
		anchorAt := rapid.IntRange(0, 40).Draw(rt, "anchor")

		total := rapid.IntRange(anchorAt, anchorAt+60).Draw(rt, "total")
		leafByte := rapid.Uint8()

		for i := 0; i < total; i++ {
			leaf := Node{}
			leaf[0] = leafByte.Draw(rt, "leaf")

			for _, w := range witnesses {
				w.Append(leaf)
			}
			if err := tree.Append(leaf); err != nil {
				rt.Fatalf("unexpected append error: %v", err)
			}
			if i == anchorAt {
				witnesses = append(witnesses, NewWitness(tree))
			}
		}

		for _, w := range witnesses {
			if w.Root() != tree.Root() {
				rt.Fatalf("witness root diverged from tree root")
			}
			if w.Position() != int64(anchorAt) {
				rt.Fatalf("witness position drifted: got %d want %d", w.Position(), anchorAt)
			}
		}
	})
}

// TestPropertyAppendCountMatchesPosition is the property-based
// counterpart to I3 (append parity): the tree's position always equals
// the number of appends applied so far, regardless of the leaf values
// appended.
func TestPropertyAppendCountMatchesPosition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := NewTree()
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		for i := 0; i < n; i++ {
			var leaf Node
			leaf[0] = rapid.Uint8().Draw(rt, "leaf")
			if err := tree.Append(leaf); err != nil {
				rt.Fatalf("unexpected append error: %v", err)
			}
		}
		if tree.Position() != int64(n) {
			rt.Fatalf("position %d != append count %d", tree.Position(), n)
		}
	})
}
