// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func leafFromByte(b byte) Node {
	var n Node
	n[0] = b
	return n
}

func TestAppendAdvancesPosition(t *testing.T) {
	tree := NewTree()
	require.EqualValues(t, 0, tree.Position())

	require.NoError(t, tree.Append(leafFromByte(1)))
	require.EqualValues(t, 1, tree.Position())

	require.NoError(t, tree.Append(leafFromByte(2)))
	require.EqualValues(t, 2, tree.Position())
}

func TestRootIsPureFunctionOfAppends(t *testing.T) {
	a := NewTree()
	b := NewTree()
	for i := byte(0); i < 17; i++ {
		require.NoError(t, a.Append(leafFromByte(i)))
	}
	for i := byte(0); i < 17; i++ {
		require.NoError(t, b.Append(leafFromByte(i)))
	}
	require.Equal(t, a.Root(), b.Root())
}

func TestRootChangesOnDivergence(t *testing.T) {
	a := NewTree()
	b := NewTree()
	require.NoError(t, a.Append(leafFromByte(1)))
	require.NoError(t, b.Append(leafFromByte(2)))
	require.NotEqual(t, a.Root(), b.Root())
}

func TestTreeRoundTrip(t *testing.T) {
	tree := NewTree()
	for i := byte(0); i < 5; i++ {
		require.NoError(t, tree.Append(leafFromByte(i)))
	}

	var buf bytes.Buffer
	require.NoError(t, tree.Write(&buf))

	got, err := ReadTree(&buf)
	require.NoError(t, err)
	require.Equal(t, tree.Root(), got.Root())
	require.Equal(t, tree.Bytes(), got.Bytes())
}

func TestWitnessConvergesWithTree(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Append(leafFromByte(1)))

	w := NewWitness(tree)
	require.EqualValues(t, 0, w.Position())

	for i := byte(2); i < 10; i++ {
		leaf := leafFromByte(i)
		w.Append(leaf)
		require.NoError(t, tree.Append(leaf))
	}

	require.Equal(t, tree.Root(), w.Root())
}

func TestWitnessRoundTrip(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Append(leafFromByte(9)))
	w := NewWitness(tree)
	for i := byte(1); i < 4; i++ {
		leaf := leafFromByte(i)
		w.Append(leaf)
		require.NoError(t, tree.Append(leaf))
	}

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf))
	got, err := ReadWitness(&buf)
	require.NoError(t, err)
	require.Equal(t, w.Root(), got.Root())
	require.Equal(t, w.Position(), got.Position())
}

func TestTreeFullRejectsAppend(t *testing.T) {
	tree := &Tree{size: int64(1) << Depth}
	require.ErrorIs(t, tree.Append(leafFromByte(1)), ErrTreeFull)
}
