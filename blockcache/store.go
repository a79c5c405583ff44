// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockcache is the read side of the block source: a small
// goleveldb-backed store of compact blocks a node has already
// delivered, indexed by height, so the persistence loop can resume a
// scan without re-fetching blocks it has already cached.
package blockcache

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/toole-brendan/saplingwallet/compactblock"
	"github.com/toole-brendan/saplingwallet/walleterr"
)

var blockKeyPrefix = []byte("b")

func blockKey(height int32) []byte {
	key := make([]byte, 1+4)
	copy(key, blockKeyPrefix)
	binary.BigEndian.PutUint32(key[1:], uint32(height))
	return key
}

// Store is a height-indexed cache of compact blocks.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a block cache at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, walleterr.IO(err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put caches a compact block, keyed by its height. A later Put at the
// same height overwrites the earlier entry, matching how a reorg
// replaces a cached block with the now-canonical one at that height.
func (s *Store) Put(blk *compactblock.Block) error {
	if err := s.db.Put(blockKey(blk.Height), compactblock.Encode(blk), nil); err != nil {
		return walleterr.IO(err)
	}
	return nil
}

// BlocksAfter returns every cached block with height strictly greater
// than lastHeight, in ascending height order, ready for the
// persistence loop to scan next.
func (s *Store) BlocksAfter(lastHeight int32) ([]*compactblock.Block, error) {
	rng := &util.Range{Start: blockKey(lastHeight + 1)}
	iter := s.db.NewIterator(rng, nil)
	defer iter.Release()

	var blocks []*compactblock.Block
	for iter.Next() {
		blk, err := compactblock.Decode(iter.Value())
		if err != nil {
			return nil, walleterr.DecodeFailure(err)
		}
		blocks = append(blocks, blk)
	}
	if err := iter.Error(); err != nil {
		return nil, walleterr.IO(err)
	}
	return blocks, nil
}
