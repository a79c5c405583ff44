// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle implements the append-only note-commitment accumulator
// and its incremental witnesses. It is the leaf component of the
// scanner: a Tree never retracts an append, and every Witness anchored
// at an earlier position must observe the identical append sequence as
// the tree or its root diverges.
package merkle

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Depth is the fixed depth of the note commitment tree. A tree of this
// depth holds up to 2^Depth leaves before Append reports ErrTreeFull.
const Depth = 32

// Node is a single Merkle-tree leaf or inner value. A leaf Node is
// simply the canonical little-endian bytes of a note commitment; inner
// nodes are produced by combine.
type Node [32]byte

// combine hashes two sibling nodes into their parent, following the
// same double-SHA256-of-concatenation shape as
// blockchain.HashMerkleBranches in the full-node merkle tree, generalized
// to an incremental accumulator.
func combine(left, right Node) Node {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return Node(chainhash.DoubleHashH(buf[:]))
}

// emptyRoots[i] is the root of a perfectly empty subtree of height i,
// i.e. the value an uncommitted subtree contributes when the tree's
// frontier has not yet reached that depth. emptyRoots[0] is the
// "uncommitted leaf" identity.
var emptyRoots [Depth + 1]Node

func init() {
	for i := 1; i <= Depth; i++ {
		emptyRoots[i] = combine(emptyRoots[i-1], emptyRoots[i-1])
	}
}
