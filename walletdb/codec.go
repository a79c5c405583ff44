// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/toole-brendan/saplingwallet/walletcrypto"
)

// NoteRow is the persisted record of one received shielded note.
type NoteRow struct {
	Account     uint32
	TxID        chainhash.Hash
	OutputIndex int
	Position    int64
	Note        walletcrypto.Note
	Address     walletcrypto.Address
	IsChange    bool
	Spent       bool
	SpentTxID   chainhash.Hash

	// ExpiryHeight is the height after which, if SpentTxID was never
	// actually mined, this note reverts to unspent. Zero means the
	// spend (if any) has no expiry and is permanent - the case for
	// every spend this scanner itself detects, since it only records a
	// spend once the spending transaction's nullifier has already
	// appeared in a confirmed compact block. A nonzero value is only
	// ever produced by a caller that recorded a note as spent ahead of
	// confirmation (outside this scanner's own receive-only path).
	ExpiryHeight int32
}

// TxRow is the persisted record of one relevant transaction.
type TxRow struct {
	Height     int32
	NumSpends  int
	NumOutputs int
}

func putUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func getUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func putUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func getUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func encodeTxRow(row *TxRow) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, row.Height)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(row.NumSpends))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(row.NumOutputs))
	return buf.Bytes()
}

func decodeTxRow(data []byte) (*TxRow, error) {
	r := bytes.NewReader(data)
	row := &TxRow{}
	if err := binary.Read(r, binary.LittleEndian, &row.Height); err != nil {
		return nil, fmt.Errorf("walletdb: decode tx row height: %w", err)
	}
	var spends, outputs uint32
	if err := binary.Read(r, binary.LittleEndian, &spends); err != nil {
		return nil, fmt.Errorf("walletdb: decode tx row spends: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &outputs); err != nil {
		return nil, fmt.Errorf("walletdb: decode tx row outputs: %w", err)
	}
	row.NumSpends = int(spends)
	row.NumOutputs = int(outputs)
	return row, nil
}

func encodeNoteRow(row *NoteRow) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, row.Account)
	buf.Write(row.TxID[:])
	_ = binary.Write(&buf, binary.LittleEndian, int32(row.OutputIndex))
	_ = binary.Write(&buf, binary.LittleEndian, row.Position)
	buf.Write(row.Note.Diversifier[:])
	_ = binary.Write(&buf, binary.LittleEndian, int64(row.Note.Value))
	buf.Write(row.Note.Rcm[:])
	buf.Write(row.Address.Diversifier[:])
	buf.Write(row.Address.Pk[:])
	writeBool(&buf, row.IsChange)
	writeBool(&buf, row.Spent)
	buf.Write(row.SpentTxID[:])
	_ = binary.Write(&buf, binary.LittleEndian, row.ExpiryHeight)
	return buf.Bytes()
}

func decodeNoteRow(data []byte) (*NoteRow, error) {
	r := bytes.NewReader(data)
	row := &NoteRow{}

	if err := binary.Read(r, binary.LittleEndian, &row.Account); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, row.TxID[:]); err != nil {
		return nil, err
	}
	var outputIndex int32
	if err := binary.Read(r, binary.LittleEndian, &outputIndex); err != nil {
		return nil, err
	}
	row.OutputIndex = int(outputIndex)
	if err := binary.Read(r, binary.LittleEndian, &row.Position); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, row.Note.Diversifier[:]); err != nil {
		return nil, err
	}
	var value int64
	if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
		return nil, err
	}
	row.Note.Value = btcutil.Amount(value)
	if _, err := io.ReadFull(r, row.Note.Rcm[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, row.Address.Diversifier[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, row.Address.Pk[:]); err != nil {
		return nil, err
	}
	var err error
	if row.IsChange, err = readBool(r); err != nil {
		return nil, err
	}
	if row.Spent, err = readBool(r); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, row.SpentTxID[:]); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &row.ExpiryHeight); err != nil {
		return nil, err
	}
	return row, nil
}

func writeBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}
