// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scan

import (
	"fmt"

	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/wallet"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
)

// BlockResult is everything Block discovered about one compact block:
// the relevant transactions, and the witnesses newly created for notes
// received in it. The caller is responsible for folding NewWitnesses
// into the set it passes to the next call to Block, and for continuing
// to append every subsequent block's leaves to them.
type BlockResult struct {
	Txs          []wallet.Tx
	NewWitnesses []*wallet.ShieldedOutput
}

// Block scans every transaction in a compact block against a set of
// tracked viewing keys and a read-only snapshot of this wallet's
// tracked nullifiers (nullifier -> owning account). It advances tree
// and every entry of witnesses by exactly one leaf per compact output
// in the block, in transaction and output order, regardless of
// whether any particular output is later found to be relevant: every
// witness must observe the same append sequence as the tree for its
// root to keep converging with the tree's root (see merkle.Witness).
//
// nullifiers is not mutated by this call: a note received earlier in
// this same block cannot be recognised as spent by a later
// transaction in the same block. Cross-block spend tracking is the
// caller's responsibility, performed between calls to Block.
func Block(tree *merkle.Tree, witnesses []*merkle.Witness, blk *compactblock.Block, ivks map[uint32]walletcrypto.IVK, nullifiers map[[32]byte]uint32) (*BlockResult, error) {
	result := &BlockResult{}

	for _, ctx := range blk.Vtx {
		tx := wallet.Tx{
			Hash:       ctx.Hash,
			NumSpends:  len(ctx.Spends),
			NumOutputs: len(ctx.Outputs),
		}

		spentAccounts := make(map[uint32]bool)
		for i, cs := range ctx.Spends {
			account, ok := nullifiers[cs.Nf]
			if !ok {
				continue
			}
			spentAccounts[account] = true
			tx.ShieldedSpends = append(tx.ShieldedSpends, wallet.ShieldedSpend{
				Index:   i,
				Nf:      cs.Nf,
				Account: account,
			})
		}

		for i, co := range ctx.Outputs {
			leaf := merkle.Node(co.Cmu)
			for _, w := range witnesses {
				w.Append(leaf)
			}
			if err := tree.Append(leaf); err != nil {
				return nil, fmt.Errorf("scan: append output %d of tx %s: %w", i, ctx.Hash, err)
			}

			out, err := Output(i, &co, ivks)
			if err != nil {
				return nil, fmt.Errorf("scan: output %d of tx %s: %w", i, ctx.Hash, err)
			}
			if out == nil {
				continue
			}

			out.IsChange = spentAccounts[out.Account]
			w := merkle.NewWitness(tree)
			out.Witness = w
			witnesses = append(witnesses, w)

			tx.ShieldedOutputs = append(tx.ShieldedOutputs, *out)
			result.NewWitnesses = append(result.NewWitnesses, out)
		}

		if tx.IsRelevant() {
			result.Txs = append(result.Txs, tx)
		}
	}

	return result, nil
}
