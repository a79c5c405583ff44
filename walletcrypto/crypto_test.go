// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func mustIVK(t *testing.T, seed byte) IVK {
	t.Helper()
	var ivk IVK
	for i := range ivk {
		ivk[i] = seed
	}
	ivk[31] = 0x01 // low byte of the big-endian scalar: keeps the key nonzero
	return ivk
}

func TestCompactEncryptDecryptRoundTrip(t *testing.T) {
	ivk := mustIVK(t, 0x05)
	scalar, err := ivk.Scalar()
	require.NoError(t, err)

	priv := &btcec.PrivateKey{Key: *scalar}
	pk := priv.PubKey()

	var esk secp256k1.ModNScalar
	var eskBytes [32]byte
	eskBytes[31] = 0x02
	require.Zero(t, esk.SetBytes(&eskBytes))

	note := &Note{
		Diversifier: [11]byte{1, 2, 3},
		Value:       btcutil.Amount(123456),
		Rcm:         [32]byte{9, 9, 9},
	}

	epk, cmu, ciphertext, err := CompactEncrypt(pk, &esk, note)
	require.NoError(t, err)

	got, err := TryCompactDecrypt(ivk, epk, cmu, ciphertext)
	require.NoError(t, err)
	require.Equal(t, note, got)
}

func TestTryCompactDecryptRejectsWrongKey(t *testing.T) {
	ivk := mustIVK(t, 0x05)
	scalar, err := ivk.Scalar()
	require.NoError(t, err)
	priv := &btcec.PrivateKey{Key: *scalar}
	pk := priv.PubKey()

	var esk secp256k1.ModNScalar
	var eskBytes [32]byte
	eskBytes[31] = 0x02
	require.Zero(t, esk.SetBytes(&eskBytes))

	note := &Note{Diversifier: [11]byte{7}, Value: 1, Rcm: [32]byte{2}}
	epk, cmu, ciphertext, err := CompactEncrypt(pk, &esk, note)
	require.NoError(t, err)

	wrongIVK := mustIVK(t, 0x09)
	_, err = TryCompactDecrypt(wrongIVK, epk, cmu, ciphertext)
	require.Error(t, err)
}

func TestTryCompactDecryptRejectsNonCanonicalEpk(t *testing.T) {
	ivk := mustIVK(t, 0x05)
	var epk [32]byte
	for i := range epk {
		epk[i] = 0xff
	}
	_, err := TryCompactDecrypt(ivk, epk, [32]byte{}, [CiphertextSize]byte{})
	require.ErrorIs(t, err, ErrNonCanonicalScalar)
}

func TestNoteCommitmentDeterministic(t *testing.T) {
	note := &Note{Diversifier: [11]byte{4}, Value: 9, Rcm: [32]byte{5}}
	require.Equal(t, NoteCommitment(note), NoteCommitment(note))

	other := &Note{Diversifier: [11]byte{4}, Value: 10, Rcm: [32]byte{5}}
	require.NotEqual(t, NoteCommitment(note), NoteCommitment(other))
}

func TestParseExtendedFullViewingKeyRoundTrip(t *testing.T) {
	const encoded = "000000010101010101010101010101010101010101010101010101010101010101010101"
	efvk, err := ParseExtendedFullViewingKey(encoded)
	require.NoError(t, err)
	require.EqualValues(t, 1, efvk.AccountID)

	addr, err := efvk.Address([11]byte{1})
	require.NoError(t, err)
	require.Equal(t, [11]byte{1}, addr.Diversifier)
}

func TestParseExtendedFullViewingKeyRejectsBadLength(t *testing.T) {
	_, err := ParseExtendedFullViewingKey("aabbcc")
	require.Error(t, err)
}
