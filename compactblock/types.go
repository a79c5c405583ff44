// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package compactblock defines the minimal projection of a chain block
// that scanning needs: just enough of each output and spend to trial-
// decrypt and detect spends, nothing required to validate consensus
// rules. The wire encoding here is internal to this scanner; a caller
// that already parses the network's real compact-block wire format need
// only produce these types, not these bytes.
package compactblock

import "github.com/btcsuite/btcd/chaincfg/chainhash"

const (
	// CmuSize is the width of a note commitment, a little-endian
	// base-field scalar.
	CmuSize = 32

	// EpkSize is the width of a compressed ephemeral curve point.
	EpkSize = 32

	// CiphertextSize is the width of the compact note ciphertext: the
	// encrypted note plaintext without the authentication tag the full
	// (non-compact) ciphertext would carry.
	CiphertextSize = 52

	// NullifierSize is the width of a nullifier.
	NullifierSize = 32
)

// Output is a single compact shielded output.
type Output struct {
	Cmu        [CmuSize]byte
	Epk        [EpkSize]byte
	Ciphertext [CiphertextSize]byte
}

// Spend is a single compact shielded spend.
type Spend struct {
	Nf [NullifierSize]byte
}

// Tx is a single transaction's shielded content. Spend and output order
// is canonical: it determines the index recorded against any
// WalletShieldedSpend/WalletShieldedOutput derived from them.
type Tx struct {
	Hash    chainhash.Hash
	Spends  []Spend
	Outputs []Output
}

// Block is the compact projection of one chain block. Transaction order
// is canonical and, together with each Tx's output count, determines
// every output's absolute position within the note commitment tree.
type Block struct {
	Height int32
	Hash   chainhash.Hash
	Time   uint32
	Vtx    []Tx
}

// NumOutputs returns the total number of compact outputs across every
// transaction in the block, i.e. the number of leaves this block
// contributes to the commitment tree.
func (b *Block) NumOutputs() int {
	n := 0
	for _, tx := range b.Vtx {
		n += len(tx.Outputs)
	}
	return n
}
