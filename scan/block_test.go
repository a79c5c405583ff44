// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scan

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
)

const testAccount uint32 = 7

func testIVK(seed byte) walletcrypto.IVK {
	var ivk walletcrypto.IVK
	ivk[31] = seed
	ivk[30] = 0x01
	return ivk
}

func outputFor(t *testing.T, ivk walletcrypto.IVK, eskSeed byte, note *walletcrypto.Note) compactblock.Output {
	t.Helper()
	scalar, err := ivk.Scalar()
	require.NoError(t, err)
	priv := &btcec.PrivateKey{Key: *scalar}
	pk := priv.PubKey()

	var esk secp256k1.ModNScalar
	var eskBytes [32]byte
	eskBytes[31] = eskSeed
	eskBytes[30] = 0x01
	require.Zero(t, esk.SetBytes(&eskBytes))

	epk, cmu, ciphertext, err := walletcrypto.CompactEncrypt(pk, &esk, note)
	require.NoError(t, err)

	return compactblock.Output{
		Cmu:        cmu,
		Epk:        epk,
		Ciphertext: ciphertext,
	}
}

func TestBlockRecognisesOwnOutputAndAdvancesWitnesses(t *testing.T) {
	tree := merkle.NewTree()
	ivk := testIVK(0x11)
	ivks := map[uint32]walletcrypto.IVK{testAccount: ivk}

	note := &walletcrypto.Note{Diversifier: [11]byte{1}, Value: btcutil.Amount(500), Rcm: [32]byte{2}}
	out := outputFor(t, ivk, 0x22, note)

	blk := &compactblock.Block{
		Height: 1,
		Vtx: []compactblock.Tx{
			{Hash: chainhash.Hash{0x01}, Outputs: []compactblock.Output{out}},
		},
	}

	result, err := Block(tree, nil, blk, ivks, nil)
	require.NoError(t, err)
	require.Len(t, result.Txs, 1)
	require.Len(t, result.Txs[0].ShieldedOutputs, 1)

	got := result.Txs[0].ShieldedOutputs[0]
	require.Equal(t, *note, got.Note)
	require.False(t, got.IsChange)
	require.Equal(t, tree.Root(), got.Witness.Root())
	require.EqualValues(t, 0, got.Witness.Position())
}

func TestBlockIgnoresOutputsForUntrackedKeys(t *testing.T) {
	tree := merkle.NewTree()
	ivk := testIVK(0x11)
	other := testIVK(0x33)
	ivks := map[uint32]walletcrypto.IVK{testAccount: ivk}

	note := &walletcrypto.Note{Diversifier: [11]byte{1}, Value: 1, Rcm: [32]byte{1}}
	out := outputFor(t, other, 0x44, note)

	blk := &compactblock.Block{
		Vtx: []compactblock.Tx{{Hash: chainhash.Hash{0x02}, Outputs: []compactblock.Output{out}}},
	}

	result, err := Block(tree, nil, blk, ivks, nil)
	require.NoError(t, err)
	require.Empty(t, result.Txs)
	require.EqualValues(t, 1, tree.Position())
}

func TestBlockClassifiesChangeBySpentAccountOverlap(t *testing.T) {
	tree := merkle.NewTree()
	ivk := testIVK(0x55)
	ivks := map[uint32]walletcrypto.IVK{testAccount: ivk}

	var nf [32]byte
	nf[0] = 0x77
	nullifiers := map[[32]byte]uint32{nf: testAccount}

	note := &walletcrypto.Note{Diversifier: [11]byte{1}, Value: 10, Rcm: [32]byte{3}}
	out := outputFor(t, ivk, 0x66, note)

	blk := &compactblock.Block{
		Vtx: []compactblock.Tx{
			{
				Hash:    chainhash.Hash{0x03},
				Spends:  []compactblock.Spend{{Nf: nf}},
				Outputs: []compactblock.Output{out},
			},
		},
	}

	result, err := Block(tree, nil, blk, ivks, nullifiers)
	require.NoError(t, err)
	require.Len(t, result.Txs, 1)
	require.Len(t, result.Txs[0].ShieldedSpends, 1)
	require.True(t, result.Txs[0].ShieldedOutputs[0].IsChange)
}

func TestBlockAdvancesExistingWitnessesAcrossBlocks(t *testing.T) {
	tree := merkle.NewTree()
	ivk := testIVK(0x11)
	ivks := map[uint32]walletcrypto.IVK{testAccount: ivk}

	note := &walletcrypto.Note{Diversifier: [11]byte{1}, Value: 1, Rcm: [32]byte{1}}
	out := outputFor(t, ivk, 0x22, note)
	blk1 := &compactblock.Block{Vtx: []compactblock.Tx{{Hash: chainhash.Hash{0x01}, Outputs: []compactblock.Output{out}}}}

	result1, err := Block(tree, nil, blk1, ivks, nil)
	require.NoError(t, err)
	w := result1.Txs[0].ShieldedOutputs[0].Witness

	blk2 := &compactblock.Block{Vtx: []compactblock.Tx{{Hash: chainhash.Hash{0x09}, Outputs: []compactblock.Output{
		{Cmu: [32]byte{0xaa}, Epk: [32]byte{}, Ciphertext: [52]byte{}},
	}}}}

	_, err = Block(tree, []*merkle.Witness{w}, blk2, ivks, nil)
	require.NoError(t, err)
	require.Equal(t, tree.Root(), w.Root())
}
