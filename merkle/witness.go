// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Witness is a partial authentication path for the leaf appended to a
// Tree at Position(). It is created by snapshotting the tree
// immediately after that leaf was appended; every subsequent leaf
// appended to the tree must also be Append-ed to the witness, in the
// same order, for Root to track the tree's root.
type Witness struct {
	position int64
	base     *Tree
	filled   []Node
}

// NewWitness anchors a witness at the leaf most recently appended to t.
func NewWitness(t *Tree) *Witness {
	return &Witness{
		position: t.size - 1,
		base:     t.clone(),
	}
}

// Position returns the tree position this witness is anchored at.
func (w *Witness) Position() int64 {
	return w.position
}

// Append records a leaf appended to the tree after this witness was
// created. Witnesses that miss an append permanently desynchronise from
// the tree's root.
func (w *Witness) Append(leaf Node) {
	w.filled = append(w.filled, leaf)
}

// Root replays every leaf appended since this witness's creation on top
// of the snapshotted base tree and returns the resulting root. Once a
// witness has observed the same append sequence as the tree, this
// equals the tree's own Root().
func (w *Witness) Root() Node {
	t := w.base.clone()
	for _, leaf := range w.filled {
		// Depth is large enough in practice that ErrTreeFull never
		// triggers here; a witness can never outlive its own tree.
		_ = t.Append(leaf)
	}
	return t.Root()
}

// Write serialises the witness. Read(Write(w)) reproduces w byte-for-byte.
func (w *Witness) Write(out io.Writer) error {
	if err := binary.Write(out, binary.LittleEndian, w.position); err != nil {
		return err
	}
	if err := w.base.Write(out); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, uint32(len(w.filled))); err != nil {
		return err
	}
	for _, n := range w.filled {
		if _, err := out.Write(n[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadWitness deserialises a witness previously produced by Witness.Write.
func ReadWitness(r io.Reader) (*Witness, error) {
	w := &Witness{}
	if err := binary.Read(r, binary.LittleEndian, &w.position); err != nil {
		return nil, err
	}
	base, err := ReadTree(r)
	if err != nil {
		return nil, err
	}
	w.base = base

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	w.filled = make([]Node, n)
	for i := range w.filled {
		if _, err := io.ReadFull(r, w.filled[i][:]); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Bytes returns the serialised form of the witness.
func (w *Witness) Bytes() []byte {
	var buf bytes.Buffer
	_ = w.Write(&buf)
	return buf.Bytes()
}
