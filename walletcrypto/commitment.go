// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// NoteCommitment computes this scanner's stand-in for the real Pedersen
// note commitment over Jubjub: a keyed BLAKE2b hash of the note's
// contents. A sender computes it once to place in a compact output's
// cmu field; TryCompactDecrypt recomputes it from whatever a candidate
// key recovers and rejects the output unless the two agree, which is
// what keeps an accidental decryption under the wrong key from being
// accepted as a false positive.
func NoteCommitment(note *Note) [32]byte {
	var valueBytes [8]byte
	binary.LittleEndian.PutUint64(valueBytes[:], uint64(note.Value))

	h, _ := blake2b.New256([]byte("ShellSaplingNoteCommitment"))
	h.Write(note.Diversifier[:])
	h.Write(valueBytes[:])
	h.Write(note.Rcm[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
