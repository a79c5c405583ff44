// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet holds the scanner's output data model: what scanning a
// block against a set of viewing keys produces, independent of how it
// is later persisted.
package wallet

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
)

// ShieldedSpend is a compact spend recognised as spending a note this
// scanner previously received.
type ShieldedSpend struct {
	Index   int
	Nf      [32]byte
	Account uint32
}

// ShieldedOutput is a compact output that trial-decrypted successfully
// against one of the tracked viewing keys.
type ShieldedOutput struct {
	Index    int
	Cmu      [32]byte
	Epk      [32]byte
	Account  uint32
	Note     walletcrypto.Note
	Address  walletcrypto.Address
	IsChange bool
	Witness  *merkle.Witness

	// NoteID is filled in by walletdb.Store.CommitBlock once the note
	// has been assigned a persisted id, so the caller can correlate its
	// own in-memory bookkeeping (the persistence loop's live witness
	// set) with the store's rows.
	NoteID uint64
}

// Tx is one transaction's shielded content, after scanning.
type Tx struct {
	Hash            chainhash.Hash
	NumSpends       int
	NumOutputs      int
	ShieldedSpends  []ShieldedSpend
	ShieldedOutputs []ShieldedOutput
}

// IsRelevant reports whether this scanner found anything worth
// recording about the transaction.
func (t *Tx) IsRelevant() bool {
	return len(t.ShieldedSpends) > 0 || len(t.ShieldedOutputs) > 0
}
