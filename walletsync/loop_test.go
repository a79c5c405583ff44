// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletsync

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/saplingwallet/blockcache"
	"github.com/toole-brendan/saplingwallet/chaincfg"
	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
	"github.com/toole-brendan/saplingwallet/walletdb"
)

func testOutput(t *testing.T, ivk walletcrypto.IVK, eskSeed byte, note *walletcrypto.Note) compactblock.Output {
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
	return compactblock.Output{Cmu: cmu, Epk: epk, Ciphertext: ciphertext}
}

func TestLoopScansCachedBlocksAndCommits(t *testing.T) {
	cache, err := blockcache.Open(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	db, err := walletdb.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	var ivk walletcrypto.IVK
	ivk[31] = 0x11
	ivk[30] = 0x01
	ivks := map[uint32]walletcrypto.IVK{1: ivk}

	note := &walletcrypto.Note{Diversifier: [11]byte{1}, Value: btcutil.Amount(42)}
	out := testOutput(t, ivk, 0x22, note)

	blk1 := &compactblock.Block{Height: 1, Hash: chainhash.Hash{0x01}, Vtx: []compactblock.Tx{
		{Hash: chainhash.Hash{0xa1}, Outputs: []compactblock.Output{out}},
	}}
	blk2 := &compactblock.Block{Height: 2, Hash: chainhash.Hash{0x02}, Vtx: []compactblock.Tx{
		{Hash: chainhash.Hash{0xa2}},
	}}
	require.NoError(t, cache.Put(blk1))
	require.NoError(t, cache.Put(blk2))

	loop, err := NewLoop(db, cache, ivks, &chaincfg.RegtestParams)
	require.NoError(t, err)
	require.NoError(t, loop.Run())

	last, ok, err := db.LastHeight()
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 2, last)

	tracked, err := db.TrackedNullifiers()
	require.NoError(t, err)
	require.Len(t, tracked, 1)
}

func TestLoopResumesFromLastCommittedHeight(t *testing.T) {
	cache, err := blockcache.Open(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	db, err := walletdb.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, cache.Put(&compactblock.Block{Height: 1, Hash: chainhash.Hash{0x01}}))
	require.NoError(t, db.CommitBlock(1, chainhash.Hash{0x01}, merkle.NewTree(), nil, nil))
	require.NoError(t, cache.Put(&compactblock.Block{Height: 2, Hash: chainhash.Hash{0x02}}))

	loop, err := NewLoop(db, cache, nil, &chaincfg.RegtestParams)
	require.NoError(t, err)
	require.NoError(t, loop.Run())

	last, _, err := db.LastHeight()
	require.NoError(t, err)
	require.EqualValues(t, 2, last)
}
