// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import "encoding/binary"

var (
	metaHeightKey  = []byte("meta:height")
	metaNextNoteID = []byte("meta:next_id_note")
	metaTreeKey    = []byte("meta:tree")

	blockPrefix = []byte("blk:")
	txPrefix    = []byte("tx:")
	notePrefix = []byte("note:")
	witPrefix  = []byte("wit:")
	nfPrefix   = []byte("nf:")
	acctPrefix = []byte("acct:")
)

func blockHashKey(height int32) []byte {
	key := make([]byte, len(blockPrefix)+4)
	n := copy(key, blockPrefix)
	binary.BigEndian.PutUint32(key[n:], uint32(height))
	return key
}

func txKey(txid [32]byte) []byte {
	return append(append([]byte{}, txPrefix...), txid[:]...)
}

func noteKey(id uint64) []byte {
	key := make([]byte, len(notePrefix)+8)
	copy(key, notePrefix)
	binary.BigEndian.PutUint64(key[len(notePrefix):], id)
	return key
}

func witnessKey(height int32, id uint64) []byte {
	key := make([]byte, len(witPrefix)+4+8)
	n := copy(key, witPrefix)
	binary.BigEndian.PutUint32(key[n:], uint32(height))
	binary.BigEndian.PutUint64(key[n+4:], id)
	return key
}

func witnessPrefix(height int32) []byte {
	key := make([]byte, len(witPrefix)+4)
	n := copy(key, witPrefix)
	binary.BigEndian.PutUint32(key[n:], uint32(height))
	return key
}

func nullifierKey(nf [32]byte) []byte {
	return append(append([]byte{}, nfPrefix...), nf[:]...)
}

func accountKey(id uint32) []byte {
	key := make([]byte, len(acctPrefix)+4)
	n := copy(key, acctPrefix)
	binary.BigEndian.PutUint32(key[n:], id)
	return key
}
