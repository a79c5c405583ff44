// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DeriveNullifier computes the nullifier a note's owner will reveal
// when spending the note committed to by cmu at the given commitment
// tree position. Deriving a real Sapling nullifier needs the
// account's nullifier deriving key (nk), a capability this scanner
// does not hold; this stand-in derives deterministically from data
// the scanner already has so that a note it receives and a later
// compact spend of that same note produce matching nullifiers within
// one scanning session.
func DeriveNullifier(cmu [32]byte, position int64) [32]byte {
	var posBytes [8]byte
	binary.LittleEndian.PutUint64(posBytes[:], uint64(position))

	h, _ := blake2b.New256([]byte("ShellSaplingNullifier"))
	h.Write(cmu[:])
	h.Write(posBytes[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
