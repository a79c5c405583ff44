// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletsync is the persistence loop: the component that pulls
// cached compact blocks in height order, scans each one, and commits
// its effect to the wallet data store one block at a time. It is the
// only component that mutates the in-memory commitment tree, witness
// set, and tracked-nullifier set between calls to the scanner.
package walletsync

import (
	"fmt"

	"github.com/btcsuite/btclog"
	"github.com/decred/dcrd/lru"
	"github.com/davecgh/go-spew/spew"

	"github.com/toole-brendan/saplingwallet/blockcache"
	"github.com/toole-brendan/saplingwallet/chaincfg"
	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/scan"
	"github.com/toole-brendan/saplingwallet/wallet"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
	"github.com/toole-brendan/saplingwallet/walletdb"
	"github.com/toole-brendan/saplingwallet/walleterr"
)

// seenBlocksLimit bounds the recently-committed-block dedup cache;
// it only needs to cover accidental redelivery within one Run, not
// the wallet's entire history.
const seenBlocksLimit = 2048

// trackedNote is the loop's in-memory bookkeeping for one received
// note: the witness that must keep observing every subsequent append,
// and - once the note is spent - the height at which it was spent; its
// witness is dropped once a block more than chaincfg.WitnessRetention
// blocks past that height has been committed.
type trackedNote struct {
	id            uint64
	witness       *merkle.Witness
	nf            [32]byte
	account       uint32
	spentAtHeight int32
}

// Loop drives the scan-then-commit cycle over every block a Store has
// cached but the wallet data store has not yet committed.
type Loop struct {
	db     *walletdb.Store
	cache  *blockcache.Store
	ivks   map[uint32]walletcrypto.IVK
	params *chaincfg.Params

	tree       *merkle.Tree
	notes      []*trackedNote
	nullifiers map[[32]byte]uint32

	// seenBlocks guards against scanning the same block hash twice in
	// one Run, e.g. if a caller hands the loop an overlapping batch
	// from the block cache; scanning is otherwise idempotent only
	// because CommitBlock rejects the height as out of sequence.
	seenBlocks *lru.Cache
}

// NewLoop constructs a Loop starting from whatever state db and cache
// already hold: the commitment tree is reloaded from the store's last
// persisted snapshot (empty if none has ever been committed), and the
// live witness set and tracked nullifier set are rebuilt from the
// store's currently-unspent notes as of its last committed height. If
// no block has ever been committed, scanning is expected to begin at
// params.ActivationHeight, the first height the shielded pool can hold
// anything.
func NewLoop(db *walletdb.Store, cache *blockcache.Store, ivks map[uint32]walletcrypto.IVK, params *chaincfg.Params) (*Loop, error) {
	last, ok, err := db.LastHeight()
	if err != nil {
		return nil, err
	}
	if !ok {
		last = params.ActivationHeight - 1
	}

	tree, err := db.LoadTree()
	if err != nil {
		return nil, err
	}

	unspent, err := db.UnspentNotes()
	if err != nil {
		return nil, err
	}
	witnesses, err := db.WitnessesAtHeight(last)
	if err != nil {
		return nil, err
	}

	nullifiers := make(map[[32]byte]uint32, len(unspent))
	notes := make([]*trackedNote, 0, len(unspent))
	for nf, n := range unspent {
		nullifiers[nf] = n.Account
		notes = append(notes, &trackedNote{id: n.ID, witness: witnesses[n.ID], nf: nf, account: n.Account})
	}

	return &Loop{
		db:         db,
		cache:      cache,
		ivks:       ivks,
		params:     params,
		tree:       tree,
		notes:      notes,
		nullifiers: nullifiers,
		seenBlocks: lru.New(seenBlocksLimit),
	}, nil
}

// Run scans every block cached after the store's last committed
// height, committing each one before moving to the next. It returns
// the first error encountered; the store's durability guarantee means
// a later call to Run can safely resume from where this one stopped.
func (l *Loop) Run() error {
	last, ok, err := l.db.LastHeight()
	if err != nil {
		return err
	}
	if !ok {
		last = l.params.ActivationHeight - 1
	}

	blocks, err := l.cache.BlocksAfter(last)
	if err != nil {
		return err
	}

	for _, blk := range blocks {
		if l.seenBlocks.Contains(blk.Hash) {
			log.Warnf("skipping already-scanned block %d (%s)", blk.Height, blk.Hash)
			continue
		}

		if err := l.scanAndCommit(blk); err != nil {
			return fmt.Errorf("walletsync: block %d: %w", blk.Height, err)
		}
		l.seenBlocks.Add(blk.Hash)
		log.Debugf("committed block %d (%d shielded outputs tracked)", blk.Height, len(l.notes))
		l.traceDumpState()
	}
	return nil
}

// traceDumpState logs a full dump of the loop's in-memory bookkeeping
// at trace level; it is a no-op at any less verbose level since
// building the dump itself is not free.
func (l *Loop) traceDumpState() {
	if log.Level() > btclog.LevelTrace {
		return
	}
	log.Tracef("loop state: %s", spew.Sdump(l.notes))
}

func (l *Loop) activeWitnesses() []*merkle.Witness {
	witnesses := make([]*merkle.Witness, 0, len(l.notes))
	for _, n := range l.notes {
		witnesses = append(witnesses, n.witness)
	}
	return witnesses
}

func (l *Loop) findByNullifier(nf [32]byte) *trackedNote {
	for _, n := range l.notes {
		if n.nf == nf {
			return n
		}
	}
	return nil
}

// pendingOutput is an output recognised this block, held until
// CommitBlock has assigned it a persisted note id and it can become a
// trackedNote.
type pendingOutput struct {
	out *wallet.ShieldedOutput
	nf  [32]byte
}

func (l *Loop) scanAndCommit(blk *compactblock.Block) error {
	witnesses := l.activeWitnesses()

	result, err := scan.Block(l.tree, witnesses, blk, l.ivks, l.nullifiers)
	if err != nil {
		return err
	}

	// liveWitnesses is captured before any new note is tracked: it is
	// only the refreshed witnesses for notes that already existed going
	// into this block. A newly received note gets its first witness
	// row from CommitBlock's own insert path, keyed by the id it is
	// about to be assigned.
	liveWitnesses := make(map[uint64]*merkle.Witness, len(l.notes))
	for _, n := range l.notes {
		liveWitnesses[n.id] = n.witness
	}

	var pending []pendingOutput
	for _, tx := range result.Txs {
		for _, sp := range tx.ShieldedSpends {
			if n := l.findByNullifier(sp.Nf); n != nil {
				n.spentAtHeight = blk.Height
			}
			delete(l.nullifiers, sp.Nf)
			spendsRecognized.Inc()
		}
		for i := range tx.ShieldedOutputs {
			out := &tx.ShieldedOutputs[i]
			nf := walletcrypto.DeriveNullifier(out.Cmu, out.Witness.Position())
			l.nullifiers[nf] = out.Account
			pending = append(pending, pendingOutput{out: out, nf: nf})
			outputsRecognized.Inc()
		}
	}

	for _, n := range l.notes {
		if n.spentAtHeight != 0 {
			continue
		}
		if n.witness.Root() != l.tree.Root() {
			return walleterr.InvalidWitnessAnchor(n.witness.Position())
		}
	}

	if err := l.db.CommitBlock(blk.Height, blk.Hash, l.tree, liveWitnesses, result.Txs); err != nil {
		return err
	}

	for _, p := range pending {
		l.notes = append(l.notes, &trackedNote{id: p.out.NoteID, witness: p.out.Witness, nf: p.nf, account: p.out.Account})
	}

	kept := l.notes[:0]
	for _, n := range l.notes {
		if n.spentAtHeight != 0 && blk.Height-n.spentAtHeight > chaincfg.WitnessRetention {
			continue
		}
		kept = append(kept, n)
	}
	l.notes = kept

	blocksScanned.Inc()
	treePosition.Set(float64(l.tree.Position()))
	return nil
}
