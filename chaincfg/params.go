// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters a shielded-pool scanner
// needs in order to know where the shielded pool begins and how deep a
// reorg it should tolerate witness data for.
package chaincfg

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// WitnessRetention is the number of blocks of sapling_witnesses history kept
// behind the chain tip. Rows older than last_height - WitnessRetention are
// pruned after every scanned block.
const WitnessRetention = 100

// TreeDepth is the fixed depth of the sapling note commitment tree. A tree
// of this depth holds up to 2^TreeDepth leaves.
const TreeDepth = 32

// Params defines the shielded-pool parameters of a single network. Unlike a
// full consensus node, the scanner only cares about where the pool starts;
// everything upstream of ActivationHeight is opaque to it.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// ActivationHeight is the first block height at which shielded
	// outputs may appear. The commitment tree is empty below this
	// height and scanning a batch never needs to look further back.
	ActivationHeight int32

	// GenesisHash identifies the network's genesis block. No component
	// compares it against the block cache or the wallet data store, and
	// every network defined here leaves it as the zero hash.
	GenesisHash chainhash.Hash
}

// MainNetParams are the parameters for the production shielded pool.
var MainNetParams = Params{
	Name:             "mainnet",
	ActivationHeight: 419_200,
	GenesisHash:      chainhash.Hash{},
}

// TestNetParams are the parameters for the public test network.
var TestNetParams = Params{
	Name:             "testnet",
	ActivationHeight: 280_000,
	GenesisHash:      chainhash.Hash{},
}

// RegtestParams are the parameters for a local regression-test network,
// where the pool is active from the first block so fixtures stay small.
var RegtestParams = Params{
	Name:             "regtest",
	ActivationHeight: 1,
	GenesisHash:      chainhash.Hash{},
}
