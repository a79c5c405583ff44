// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// ErrTreeFull is returned by Append once the tree holds 2^Depth leaves.
var ErrTreeFull = errors.New("merkle: commitment tree is full")

// Tree is an append-only Merkle accumulator of fixed depth. The zero
// value is an empty tree ready for use.
//
// Internally it keeps only the two most recent unpaired leaves (left,
// right) and, for each completed level above them, at most one pending
// parent — the classic "binary counter" incremental tree shape. This
// keeps memory at O(Depth) regardless of how many leaves have been
// appended.
type Tree struct {
	size    int64
	left    *Node
	right   *Node
	parents []*Node
}

// NewTree returns an empty commitment tree.
func NewTree() *Tree {
	return &Tree{}
}

// Size returns the number of leaves appended so far.
func (t *Tree) Size() int64 {
	return t.size
}

// Position returns the position that would be assigned to the next
// appended leaf, which is also the number of prior appends.
func (t *Tree) Position() int64 {
	return t.size
}

// Append extends the frontier with leaf. It fails only once the tree
// has reached its maximum capacity of 2^Depth leaves.
func (t *Tree) Append(leaf Node) error {
	if t.size >= int64(1)<<Depth {
		return ErrTreeFull
	}

	switch {
	case t.left == nil:
		l := leaf
		t.left = &l
	case t.right == nil:
		r := leaf
		t.right = &r
	default:
		t.pushParent(combine(*t.left, *t.right))
		l := leaf
		t.left = &l
		t.right = nil
	}
	t.size++
	return nil
}

// pushParent folds a newly completed pair into the chain of pending
// parents, carrying upward exactly like incrementing a binary counter:
// the first empty slot absorbs the value, any occupied slot below it is
// cleared and combined into the value being carried.
func (t *Tree) pushParent(node Node) {
	cur := node
	for i := 0; i < len(t.parents); i++ {
		if t.parents[i] == nil {
			n := cur
			t.parents[i] = &n
			return
		}
		cur = combine(*t.parents[i], cur)
		t.parents[i] = nil
	}
	n := cur
	t.parents = append(t.parents, &n)
}

// Root computes the current Merkle root: the appended leaves, padded
// notionally with the uncommitted-subtree identity out to Depth.
func (t *Tree) Root() Node {
	left := emptyRoots[0]
	if t.left != nil {
		left = *t.left
	}
	right := emptyRoots[0]
	if t.right != nil {
		right = *t.right
	}

	root := combine(left, right)
	level := 1
	for _, p := range t.parents {
		if p != nil {
			root = combine(*p, root)
		} else {
			root = combine(root, emptyRoots[level])
		}
		level++
	}
	for level < Depth {
		root = combine(root, emptyRoots[level])
		level++
	}
	return root
}

// clone returns a deep-enough copy of t suitable as the base of a
// Witness: subsequent appends to either the clone or t never alias the
// same Node value, because Append only ever installs freshly allocated
// Node pointers.
func (t *Tree) clone() *Tree {
	c := &Tree{size: t.size, left: t.left, right: t.right}
	if t.parents != nil {
		c.parents = make([]*Node, len(t.parents))
		copy(c.parents, t.parents)
	}
	return c
}

// Write serialises the tree. Read(Write(t)) reproduces t byte-for-byte.
func (t *Tree) Write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, t.size); err != nil {
		return err
	}
	if err := writeOptionalNode(w, t.left); err != nil {
		return err
	}
	if err := writeOptionalNode(w, t.right); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.parents))); err != nil {
		return err
	}
	for _, p := range t.parents {
		if err := writeOptionalNode(w, p); err != nil {
			return err
		}
	}
	return nil
}

// ReadTree deserialises a tree previously produced by Tree.Write.
func ReadTree(r io.Reader) (*Tree, error) {
	t := &Tree{}
	if err := binary.Read(r, binary.LittleEndian, &t.size); err != nil {
		return nil, err
	}
	var err error
	if t.left, err = readOptionalNode(r); err != nil {
		return nil, err
	}
	if t.right, err = readOptionalNode(r); err != nil {
		return nil, err
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	t.parents = make([]*Node, n)
	for i := range t.parents {
		if t.parents[i], err = readOptionalNode(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Bytes returns the serialised form of the tree.
func (t *Tree) Bytes() []byte {
	var buf bytes.Buffer
	// Write never fails against a bytes.Buffer.
	_ = t.Write(&buf)
	return buf.Bytes()
}

func writeOptionalNode(w io.Writer, n *Node) error {
	present := n != nil
	if err := binary.Write(w, binary.LittleEndian, present); err != nil {
		return err
	}
	if !present {
		return nil
	}
	_, err := w.Write(n[:])
	return err
}

func readOptionalNode(r io.Reader) (*Node, error) {
	var present bool
	if err := binary.Read(r, binary.LittleEndian, &present); err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var n Node
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	return &n, nil
}
