// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletsync

import "github.com/prometheus/client_golang/prometheus"

var (
	blocksScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "saplingwallet_blocks_scanned_total",
		Help: "Total number of compact blocks scanned by the persistence loop.",
	})

	outputsRecognized = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "saplingwallet_outputs_recognized_total",
		Help: "Total number of compact outputs that decrypted against a tracked viewing key.",
	})

	spendsRecognized = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "saplingwallet_spends_recognized_total",
		Help: "Total number of compact spends matching a tracked nullifier.",
	})

	treePosition = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "saplingwallet_tree_position",
		Help: "Current position (next free leaf index) of the note commitment tree.",
	})
)

// RegisterMetrics registers this package's collectors with reg. It is
// the caller's responsibility to call this at most once per registry.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{blocksScanned, outputsRecognized, spendsRecognized, treePosition} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
