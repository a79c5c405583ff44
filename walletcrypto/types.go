// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletcrypto is the scanner's note-encryption capability: the
// minimal set of operations a viewing-key holder needs to recognise and
// open a shielded output. It plays the role the real curve (Jubjub) and
// note-encryption scheme (Sapling's variant of ChaCha20-Poly1305 over a
// BLS12-381 key agreement) play in the system this scanner is modelled
// on; per the system's own design notes that cryptography is an opaque
// collaborator, so this package stands in with a self-consistent
// construction over secp256k1, ChaCha20, and BLAKE2b rather than
// reproducing bit-for-bit compatible primitives.
package walletcrypto

import "github.com/btcsuite/btcd/btcutil"

const (
	// DiversifierSize is the width of a note's diversifier.
	DiversifierSize = 11

	// RcmSize is the width of a note's commitment randomness.
	RcmSize = 32

	// CiphertextSize is the width of a compact note ciphertext.
	CiphertextSize = 1 + DiversifierSize + 8 + RcmSize
)

// Note is the plaintext content of a shielded output: who can spend it
// (via its diversifier, paired with the recipient's viewing key), how
// much it carries, and the randomness used to blind its commitment.
type Note struct {
	Diversifier [DiversifierSize]byte
	Value       btcutil.Amount
	Rcm         [RcmSize]byte
}

// Address identifies a shielded note's recipient: the diversifier and
// the account's public key. It is recorded with each received note; the
// change heuristic does not use it (change is classified by whether the
// same transaction spends a tracked note of the same account).
type Address struct {
	Diversifier [DiversifierSize]byte
	Pk          [33]byte
}
