// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command scanwallet runs the shielded-pool block scanner against a
// cache of compact blocks, committing whatever it recognises for a
// configured set of viewing keys into a wallet data store.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toole-brendan/saplingwallet/blockcache"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
	"github.com/toole-brendan/saplingwallet/walletdb"
	"github.com/toole-brendan/saplingwallet/walletsync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, "scanwallet.log")); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	setLogLevels(cfg.DebugLevel)

	ivks, err := parseViewingKeys(cfg.ViewingKeys)
	if err != nil {
		return err
	}

	params, err := networkParams(cfg.Network)
	if err != nil {
		return err
	}

	cache, err := blockcache.Open(filepath.Join(cfg.DataDir, "blocks"))
	if err != nil {
		return fmt.Errorf("open block cache: %w", err)
	}
	defer cache.Close()

	db, err := walletdb.Open(filepath.Join(cfg.DataDir, "wallet"))
	if err != nil {
		return fmt.Errorf("open wallet data store: %w", err)
	}
	defer db.Close()

	for accountID, efvk := range ivks {
		if err := db.PutAccount(&walletcrypto.ExtendedFullViewingKey{AccountID: accountID, Ivk: efvk}); err != nil {
			return fmt.Errorf("persist account %d: %w", accountID, err)
		}
	}

	loop, err := walletsync.NewLoop(db, cache, ivks, params)
	if err != nil {
		return fmt.Errorf("start persistence loop: %w", err)
	}

	log.Infof("scanning against %d tracked account(s)", len(ivks))
	if err := loop.Run(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	last, _, err := db.LastHeight()
	if err != nil {
		return err
	}
	log.Infof("scan complete, wallet data store at height %d", last)
	return nil
}

func parseViewingKeys(encoded []string) (map[uint32]walletcrypto.IVK, error) {
	ivks := make(map[uint32]walletcrypto.IVK, len(encoded))
	for _, e := range encoded {
		efvk, err := walletcrypto.ParseExtendedFullViewingKey(e)
		if err != nil {
			return nil, err
		}
		ivks[efvk.AccountID] = efvk.Ivk
	}
	return ivks, nil
}
