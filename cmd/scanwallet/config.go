// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/toole-brendan/saplingwallet/chaincfg"
)

const (
	defaultDataDir = "scanwallet_data"
	defaultLogDir  = "logs"
)

type config struct {
	DataDir     string   `short:"d" long:"datadir" description:"Directory to store the wallet data store and compact block cache"`
	LogDir      string   `long:"logdir" description:"Directory to log output"`
	Network     string   `long:"network" description:"mainnet, testnet, or regtest" default:"mainnet"`
	ViewingKeys []string `short:"k" long:"viewingkey" description:"Hex-encoded extended full viewing key to track; may be given more than once"`
	DebugLevel  string   `long:"debuglevel" description:"Logging level: trace, debug, info, warn, error, critical" default:"info"`
}

func loadConfig() (*config, error) {
	cfg := config{
		DataDir: defaultDataDir,
		LogDir:  defaultLogDir,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if len(cfg.ViewingKeys) == 0 {
		return nil, fmt.Errorf("at least one --viewingkey is required")
	}

	if _, err := networkParams(cfg.Network); err != nil {
		return nil, err
	}

	cfg.DataDir = filepath.Clean(cfg.DataDir)
	cfg.LogDir = filepath.Clean(cfg.LogDir)
	return &cfg, nil
}

func networkParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "regtest":
		return &chaincfg.RegtestParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}
