// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compactblock

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Encode serialises a Block into this scanner's internal compact-block
// byte format: a simple length-prefixed layout in the style of the
// teacher's wire package (fixed-width fields read with encoding/binary,
// variable-width counts as a uint32 prefix). The compact-block
// transport and its real wire encoding are an external collaborator
// (spec.md §1); this codec only needs to round-trip the data model for
// the cache store and for tests.
func Encode(b *Block) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, b.Height)
	buf.Write(b.Hash[:])
	_ = binary.Write(&buf, binary.LittleEndian, b.Time)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(b.Vtx)))
	for _, tx := range b.Vtx {
		buf.Write(tx.Hash[:])
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tx.Spends)))
		for _, s := range tx.Spends {
			buf.Write(s.Nf[:])
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tx.Outputs)))
		for _, o := range tx.Outputs {
			buf.Write(o.Cmu[:])
			buf.Write(o.Epk[:])
			buf.Write(o.Ciphertext[:])
		}
	}
	return buf.Bytes()
}

// Decode parses bytes previously produced by Encode. It returns a plain
// error on truncated or malformed input, which blockcache wraps as
// walleterr.DecodeFailure; the persistence loop treats any Decode error
// as fatal for the current batch.
func Decode(data []byte) (*Block, error) {
	r := bytes.NewReader(data)
	b := &Block{}

	if err := binary.Read(r, binary.LittleEndian, &b.Height); err != nil {
		return nil, fmt.Errorf("compactblock: read height: %w", err)
	}
	if _, err := io.ReadFull(r, b.Hash[:]); err != nil {
		return nil, fmt.Errorf("compactblock: read hash: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &b.Time); err != nil {
		return nil, fmt.Errorf("compactblock: read time: %w", err)
	}

	var txCount uint32
	if err := binary.Read(r, binary.LittleEndian, &txCount); err != nil {
		return nil, fmt.Errorf("compactblock: read tx count: %w", err)
	}
	b.Vtx = make([]Tx, txCount)
	for i := range b.Vtx {
		tx := &b.Vtx[i]
		if _, err := io.ReadFull(r, tx.Hash[:]); err != nil {
			return nil, fmt.Errorf("compactblock: read tx %d hash: %w", i, err)
		}

		var spendCount uint32
		if err := binary.Read(r, binary.LittleEndian, &spendCount); err != nil {
			return nil, fmt.Errorf("compactblock: read tx %d spend count: %w", i, err)
		}
		tx.Spends = make([]Spend, spendCount)
		for j := range tx.Spends {
			if _, err := io.ReadFull(r, tx.Spends[j].Nf[:]); err != nil {
				return nil, fmt.Errorf("compactblock: read tx %d spend %d: %w", i, j, err)
			}
		}

		var outputCount uint32
		if err := binary.Read(r, binary.LittleEndian, &outputCount); err != nil {
			return nil, fmt.Errorf("compactblock: read tx %d output count: %w", i, err)
		}
		tx.Outputs = make([]Output, outputCount)
		for j := range tx.Outputs {
			out := &tx.Outputs[j]
			if _, err := io.ReadFull(r, out.Cmu[:]); err != nil {
				return nil, fmt.Errorf("compactblock: read tx %d output %d cmu: %w", i, j, err)
			}
			if _, err := io.ReadFull(r, out.Epk[:]); err != nil {
				return nil, fmt.Errorf("compactblock: read tx %d output %d epk: %w", i, j, err)
			}
			if _, err := io.ReadFull(r, out.Ciphertext[:]); err != nil {
				return nil, fmt.Errorf("compactblock: read tx %d output %d ciphertext: %w", i, j, err)
			}
		}
	}
	return b, nil
}
