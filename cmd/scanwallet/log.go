// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/saplingwallet/walletsync"
)

var (
	logRotator *rotator.Rotator

	backendLog = btclog.NewBackend(logWriter{})
	log        = backendLog.Logger("SCNW")
	syncLogger = backendLog.Logger("SYNC")
)

// subsystemLoggers maps each package that logs to the logger it should
// use, so debug levels can be set per subsystem.
var subsystemLoggers = map[string]btclog.Logger{
	"SCNW": log,
	"SYNC": syncLogger,
}

func init() {
	walletsync.UseLogger(syncLogger)
}

func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return err
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, logger := range subsystemLoggers {
		if logger != nil {
			logger.SetLevel(level)
		}
	}
}
