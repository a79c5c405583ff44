// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockcache

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/saplingwallet/compactblock"
)

func TestPutAndBlocksAfter(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	for h := int32(1); h <= 3; h++ {
		require.NoError(t, store.Put(&compactblock.Block{Height: h, Hash: chainhash.Hash{byte(h)}}))
	}

	blocks, err := store.BlocksAfter(1)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.EqualValues(t, 2, blocks[0].Height)
	require.EqualValues(t, 3, blocks[1].Height)
}

func TestBlocksAfterEmptyWhenNoneCached(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	blocks, err := store.BlocksAfter(0)
	require.NoError(t, err)
	require.Empty(t, blocks)
}

func TestPutOverwritesSameHeight(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(&compactblock.Block{Height: 5, Hash: chainhash.Hash{0x01}}))
	require.NoError(t, store.Put(&compactblock.Block{Height: 5, Hash: chainhash.Hash{0x02}}))

	blocks, err := store.BlocksAfter(4)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, chainhash.Hash{0x02}, blocks[0].Hash)
}
