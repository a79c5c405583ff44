// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrNonCanonicalScalar is returned when 32 bytes do not represent a
// value reduced modulo the group order.
var ErrNonCanonicalScalar = errors.New("walletcrypto: non-canonical scalar encoding")

// ErrIdentityScalar is returned when 32 bytes parse to the zero scalar,
// which can never be a valid viewing key or ephemeral key.
var ErrIdentityScalar = errors.New("walletcrypto: scalar is identity")

// ParseCanonicalScalar rejects any 32-byte encoding that is not already
// reduced modulo the group order, mirroring the canonicality check a
// viewing-key holder must perform on every incoming ephemeral key and
// scalar before using it (see the output scanner's decompression step).
func ParseCanonicalScalar(b [32]byte) (*secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes(&b); overflow != 0 {
		return nil, ErrNonCanonicalScalar
	}
	if s.IsZero() {
		return nil, ErrIdentityScalar
	}
	return &s, nil
}
