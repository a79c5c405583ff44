// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scan implements the output and block scanners: the core
// trial-decryption loop that recognises which compact outputs and
// spends in a block belong to a tracked set of viewing keys.
package scan

import (
	"sort"

	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/wallet"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
)

// Output attempts to recognise a single compact output against every
// tracked viewing key, trying accounts in ascending order so that,
// were more than one tracked key ever able to open the same output,
// the lowest account index wins deterministically. It returns nil, nil
// when the output does not belong to any of them; a non-nil error is
// returned only for conditions that should never occur for
// well-formed keys (there are none today, but the signature leaves
// room for one).
//
// Parse and decompression failures - a non-canonical cmu or epk, an
// epk that decompresses to the curve's identity, or a recovered note
// whose commitment does not match cmu - are not treated as scanner
// errors: they simply mean the output is not relevant. The output's
// caller still advances the commitment tree and every witness for
// this output before consulting this function; that bookkeeping does
// not depend on whether decryption below succeeds.
func Output(index int, co *compactblock.Output, ivks map[uint32]walletcrypto.IVK) (*wallet.ShieldedOutput, error) {
	accounts := make([]uint32, 0, len(ivks))
	for account := range ivks {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })

	for _, account := range accounts {
		ivk := ivks[account]
		note, err := walletcrypto.TryCompactDecrypt(ivk, co.Epk, co.Cmu, co.Ciphertext)
		if err != nil {
			continue
		}

		efvk := &walletcrypto.ExtendedFullViewingKey{AccountID: account, Ivk: ivk}
		addr, err := efvk.Address(note.Diversifier)
		if err != nil {
			continue
		}

		out := &wallet.ShieldedOutput{
			Index:   index,
			Cmu:     co.Cmu,
			Epk:     co.Epk,
			Account: account,
			Note:    *note,
			Address: *addr,
		}
		return out, nil
	}
	return nil, nil
}
