// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletdb is the scanner's durable state: one goleveldb
// database holding the last committed height, every relevant
// transaction, every received note and its current witness, and the
// index from nullifier to note needed to recognise a later spend.
// Every block's effect on this state is written in a single
// leveldb.Batch, so a crash mid-block leaves the store exactly as it
// was before that block started (spec's one-block-per-transaction
// durability contract).
package walletdb

import (
	"bytes"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/toole-brendan/saplingwallet/chaincfg"
	"github.com/toole-brendan/saplingwallet/merkle"
	"github.com/toole-brendan/saplingwallet/wallet"
	"github.com/toole-brendan/saplingwallet/walletcrypto"
	"github.com/toole-brendan/saplingwallet/walleterr"
)

// Store is the wallet's persisted data: transactions, notes, and
// witnesses, plus the bookkeeping the persistence loop needs to
// resume scanning where it left off.
type Store struct {
	db *leveldb.DB

	mu         sync.Mutex
	nextNoteID uint64
}

// Open opens (creating if absent) a wallet data store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, walleterr.Storage(err)
	}
	s := &Store{db: db, nextNoteID: 1}

	if v, err := db.Get(metaNextNoteID, nil); err == nil {
		s.nextNoteID = getUint64(v)
	} else if err != leveldb.ErrNotFound {
		return nil, walleterr.Storage(err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LastHeight returns the height of the most recently committed block
// and whether any block has been committed yet.
func (s *Store) LastHeight() (height int32, ok bool, err error) {
	v, err := s.db.Get(metaHeightKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, walleterr.Storage(err)
	}
	return int32(getUint32(v)), true, nil
}

// PutAccount records the viewing key a scanned account was derived
// from, so a later process can enumerate tracked accounts without
// needing its original configuration.
func (s *Store) PutAccount(efvk *walletcrypto.ExtendedFullViewingKey) error {
	if err := s.db.Put(accountKey(efvk.AccountID), efvk.Ivk[:], nil); err != nil {
		return walleterr.Storage(err)
	}
	return nil
}

// Accounts returns every tracked account's viewing key.
func (s *Store) Accounts() (map[uint32]walletcrypto.IVK, error) {
	iter := s.db.NewIterator(util.BytesPrefix(acctPrefix), nil)
	defer iter.Release()

	accounts := make(map[uint32]walletcrypto.IVK)
	for iter.Next() {
		id := getUint32(iter.Key()[len(acctPrefix):])
		var ivk walletcrypto.IVK
		copy(ivk[:], iter.Value())
		accounts[id] = ivk
	}
	if err := iter.Error(); err != nil {
		return nil, walleterr.Storage(err)
	}
	return accounts, nil
}

// TrackedNullifiers returns every nullifier this store has recorded
// for a currently-unspent note, mapped to its owning account. It is
// meant to be loaded once at startup and then maintained in memory by
// the persistence loop between calls to CommitBlock.
func (s *Store) TrackedNullifiers() (map[[32]byte]uint32, error) {
	unspent, err := s.UnspentNotes()
	if err != nil {
		return nil, err
	}
	tracked := make(map[[32]byte]uint32, len(unspent))
	for nf, n := range unspent {
		tracked[nf] = n.Account
	}
	return tracked, nil
}

// UnspentNote is one currently-unspent note's identity, as needed to
// rebuild the persistence loop's in-memory bookkeeping after restart.
type UnspentNote struct {
	ID      uint64
	Account uint32
}

// UnspentNotes returns every currently-unspent note this store holds,
// keyed by nullifier.
func (s *Store) UnspentNotes() (map[[32]byte]UnspentNote, error) {
	iter := s.db.NewIterator(util.BytesPrefix(nfPrefix), nil)
	defer iter.Release()

	unspent := make(map[[32]byte]UnspentNote)
	for iter.Next() {
		id := getUint64(iter.Value())
		note, err := s.noteByID(id)
		if err != nil {
			return nil, err
		}
		if note.Spent {
			continue
		}
		var nf [32]byte
		copy(nf[:], iter.Key()[len(nfPrefix):])
		unspent[nf] = UnspentNote{ID: id, Account: note.Account}
	}
	if err := iter.Error(); err != nil {
		return nil, walleterr.Storage(err)
	}
	return unspent, nil
}

// LoadTree returns the commitment tree as it stood after the most
// recently committed block, or an empty tree if no block has been
// committed yet.
func (s *Store) LoadTree() (*merkle.Tree, error) {
	v, err := s.db.Get(metaTreeKey, nil)
	if err == leveldb.ErrNotFound {
		return merkle.NewTree(), nil
	}
	if err != nil {
		return nil, walleterr.Storage(err)
	}
	tree, err := merkle.ReadTree(bytes.NewReader(v))
	if err != nil {
		return nil, walleterr.DecodeFailure(err)
	}
	return tree, nil
}

func (s *Store) noteByID(id uint64) (*NoteRow, error) {
	v, err := s.db.Get(noteKey(id), nil)
	if err != nil {
		return nil, walleterr.Storage(err)
	}
	row, err := decodeNoteRow(v)
	if err != nil {
		return nil, walleterr.DecodeFailure(err)
	}
	return row, nil
}

// CommitBlock durably records the effect of scanning one block:
// height-sequential position tracking, the updated commitment tree,
// every relevant transaction, any notes newly received or spent, a
// refreshed witness row for every note in liveWitnesses (pre-existing
// notes whose witness advanced this block; newly received notes get
// their first witness row from the insert below), pruning of witness
// rows older than chaincfg.WitnessRetention blocks, and the expiry
// sweep of any spend that was recorded with a deadline that has now
// passed unconfirmed. It fails with ErrInvalidHeight if height is not
// exactly one greater than the store's current LastHeight, and writes
// every change in a single batch so the commit is all-or-nothing.
func (s *Store) CommitBlock(height int32, hash chainhash.Hash, tree *merkle.Tree, liveWitnesses map[uint64]*merkle.Witness, txs []wallet.Tx) error {
	last, ok, err := s.LastHeight()
	if err != nil {
		return err
	}
	if ok && height != last+1 {
		return walleterr.InvalidHeight(last+1, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := new(leveldb.Batch)
	batch.Put(blockHashKey(height), hash[:])
	if tree != nil {
		batch.Put(metaTreeKey, tree.Bytes())
	}

	for i := range txs {
		tx := &txs[i]
		batch.Put(txKey(tx.Hash), encodeTxRow(&TxRow{
			Height:     height,
			NumSpends:  tx.NumSpends,
			NumOutputs: tx.NumOutputs,
		}))

		for _, sp := range tx.ShieldedSpends {
			if err := s.markSpent(batch, sp.Nf, tx.Hash); err != nil {
				return err
			}
		}
		for j := range tx.ShieldedOutputs {
			s.insertNote(batch, height, tx.Hash, &tx.ShieldedOutputs[j])
		}
	}

	for id, w := range liveWitnesses {
		batch.Put(witnessKey(height, id), w.Bytes())
	}
	if err := s.pruneWitnesses(batch, height); err != nil {
		return err
	}
	if err := s.unspendExpired(batch, height); err != nil {
		return err
	}

	batch.Put(metaHeightKey, putUint32(uint32(height)))
	batch.Put(metaNextNoteID, putUint64(s.nextNoteID))

	if err := s.db.Write(batch, nil); err != nil {
		return walleterr.Storage(err)
	}
	return nil
}

// pruneWitnesses deletes witness rows recorded at a height more than
// chaincfg.WitnessRetention blocks behind height.
func (s *Store) pruneWitnesses(batch *leveldb.Batch, height int32) error {
	cutoff := height - chaincfg.WitnessRetention
	if cutoff <= 0 {
		return nil
	}

	iter := s.db.NewIterator(&util.Range{Start: witPrefix, Limit: witnessPrefix(cutoff)}, nil)
	defer iter.Release()
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return walleterr.Storage(err)
	}
	return nil
}

// unspendExpired reverts any note whose spend was recorded with a
// nonzero ExpiryHeight that has now passed without that spend ever
// having been recorded against a confirmed block. This scanner only
// ever marks a note spent once it observes the spending nullifier in
// an already-confirmed compact block (see markSpent), so ExpiryHeight
// is always zero for spends this scanner itself detects; the sweep
// exists to honour a spend recorded by another writer of this store
// ahead of confirmation.
func (s *Store) unspendExpired(batch *leveldb.Batch, height int32) error {
	iter := s.db.NewIterator(util.BytesPrefix(notePrefix), nil)
	defer iter.Release()

	for iter.Next() {
		row, err := decodeNoteRow(iter.Value())
		if err != nil {
			return walleterr.DecodeFailure(err)
		}
		if !row.Spent || row.ExpiryHeight == 0 || row.ExpiryHeight >= height {
			continue
		}
		row.Spent = false
		row.SpentTxID = chainhash.Hash{}
		row.ExpiryHeight = 0
		batch.Put(append([]byte{}, iter.Key()...), encodeNoteRow(row))
	}
	if err := iter.Error(); err != nil {
		return walleterr.Storage(err)
	}
	return nil
}

func (s *Store) markSpent(batch *leveldb.Batch, nf [32]byte, spendingTx chainhash.Hash) error {
	v, err := s.db.Get(nullifierKey(nf), nil)
	if err == leveldb.ErrNotFound {
		return nil
	}
	if err != nil {
		return walleterr.Storage(err)
	}
	id := getUint64(v)
	row, err := s.noteByID(id)
	if err != nil {
		return err
	}
	row.Spent = true
	row.SpentTxID = spendingTx
	batch.Put(noteKey(id), encodeNoteRow(row))
	return nil
}

func (s *Store) insertNote(batch *leveldb.Batch, height int32, txid chainhash.Hash, out *wallet.ShieldedOutput) {
	id := s.nextNoteID
	s.nextNoteID++
	out.NoteID = id

	position := int64(out.Index)
	if out.Witness != nil {
		position = out.Witness.Position()
	}

	row := &NoteRow{
		Account:     out.Account,
		TxID:        txid,
		OutputIndex: out.Index,
		Position:    position,
		Note:        out.Note,
		Address:     out.Address,
		IsChange:    out.IsChange,
	}
	batch.Put(noteKey(id), encodeNoteRow(row))

	nf := walletcrypto.DeriveNullifier(out.Cmu, position)
	batch.Put(nullifierKey(nf), putUint64(id))

	if out.Witness != nil {
		batch.Put(witnessKey(height, id), out.Witness.Bytes())
	}
}

// WitnessesAtHeight returns, for every note with a witness row at or
// before height, its most recently persisted witness as of height -
// keyed by note id. Since a row is (re)written at every height for
// every live witness and pruned once it falls behind
// chaincfg.WitnessRetention blocks, calling this with the store's
// LastHeight reconstructs the exact live witness set the persistence
// loop held in memory before it last stopped. Rows are visited in
// ascending (height, id) order, so a later row for the same id
// naturally overwrites an earlier one in the result.
func (s *Store) WitnessesAtHeight(height int32) (map[uint64]*merkle.Witness, error) {
	iter := s.db.NewIterator(&util.Range{Start: witPrefix, Limit: witnessPrefix(height + 1)}, nil)
	defer iter.Release()

	result := make(map[uint64]*merkle.Witness)
	for iter.Next() {
		id := getUint64(iter.Key()[len(iter.Key())-8:])
		w, err := merkle.ReadWitness(bytes.NewReader(iter.Value()))
		if err != nil {
			return nil, walleterr.DecodeFailure(err)
		}
		result[id] = w
	}
	if err := iter.Error(); err != nil {
		return nil, walleterr.Storage(err)
	}
	return result, nil
}
