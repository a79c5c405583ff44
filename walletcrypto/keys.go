// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// IVK is an account's incoming viewing key: the scalar a note scanner
// uses to open outputs addressed to that account, without being able
// to spend them.
type IVK [32]byte

// Scalar parses the key as a canonical, non-identity group scalar.
func (k IVK) Scalar() (*secp256k1.ModNScalar, error) {
	return ParseCanonicalScalar([32]byte(k))
}

// ExtendedFullViewingKey is the account-level key a wallet exports to a
// scanner: enough to derive the incoming viewing key used for trial
// decryption, tagged with the account it belongs to.
type ExtendedFullViewingKey struct {
	AccountID uint32
	Ivk       IVK
}

// ParseExtendedFullViewingKey decodes a hex-encoded extended full
// viewing key: a 4-byte big-endian account id followed by the 32-byte
// incoming viewing key.
func ParseExtendedFullViewingKey(encoded string) (*ExtendedFullViewingKey, error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("walletcrypto: decode viewing key: %w", err)
	}
	if len(raw) != 36 {
		return nil, fmt.Errorf("walletcrypto: viewing key has %d bytes, want 36", len(raw))
	}

	efvk := &ExtendedFullViewingKey{
		AccountID: binary.BigEndian.Uint32(raw[:4]),
	}
	copy(efvk.Ivk[:], raw[4:])
	if _, err := efvk.Ivk.Scalar(); err != nil {
		return nil, fmt.Errorf("walletcrypto: viewing key: %w", err)
	}
	return efvk, nil
}

// Address derives the account's receiving address: the point a sender
// would encrypt a note's ephemeral key agreement against.
func (k *ExtendedFullViewingKey) Address(diversifier [DiversifierSize]byte) (*Address, error) {
	scalar, err := k.Ivk.Scalar()
	if err != nil {
		return nil, err
	}
	priv := &btcec.PrivateKey{Key: *scalar}
	pub := priv.PubKey()

	addr := &Address{Diversifier: diversifier}
	copy(addr.Pk[:], pub.SerializeCompressed())
	return addr, nil
}
