// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walleterr defines the error taxonomy shared by every component
// of the shielded-pool scanner, in the style of btcd's database.Error:
// a single concrete type carrying an ErrorCode, a human description, and
// an optional wrapped cause.
package walleterr

import "fmt"

// ErrorCode identifies a class of scanner error.
type ErrorCode int

const (
	// ErrInvalidHeight indicates a block was presented to the
	// persistence loop out of height-sequential order.
	ErrInvalidHeight ErrorCode = iota

	// ErrIncorrectKeyEncoding indicates a viewing key failed to parse.
	ErrIncorrectKeyEncoding

	// ErrDecodeFailure indicates a compact block or one of its fields
	// failed to decode.
	ErrDecodeFailure

	// ErrStorage indicates a failure reading or writing the wallet
	// data store.
	ErrStorage

	// ErrInvalidWitnessAnchor indicates an incremental witness's root
	// does not match the note commitment tree's root at the same
	// position.
	ErrInvalidWitnessAnchor

	// ErrInvalidNewWitnessAnchor indicates a newly created witness's
	// root does not match the tree's root immediately after creation.
	ErrInvalidNewWitnessAnchor

	// ErrIO indicates a failure reading or writing a block cache or
	// other byte stream outside the wallet data store.
	ErrIO
)

var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidHeight:           "ErrInvalidHeight",
	ErrIncorrectKeyEncoding:    "ErrIncorrectKeyEncoding",
	ErrDecodeFailure:           "ErrDecodeFailure",
	ErrStorage:                 "ErrStorage",
	ErrInvalidWitnessAnchor:    "ErrInvalidWitnessAnchor",
	ErrInvalidNewWitnessAnchor: "ErrInvalidNewWitnessAnchor",
	ErrIO:                      "ErrIO",
}

// String returns the ErrorCode's symbolic name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// Error is the error type returned by every scanner package. Code
// identifies the class of failure; Description is a human-readable
// detail; Err, when non-nil, is the underlying cause.
type Error struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Description
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e Error) Unwrap() error {
	return e.Err
}

func makeError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// InvalidHeight reports that the next block handed to the persistence
// loop was not exactly one greater than the last height it committed.
func InvalidHeight(want, got int32) error {
	return makeError(ErrInvalidHeight,
		fmt.Sprintf("expected height of next CompactBlock to be %d, but was %d", want, got),
		nil)
}

// IncorrectKeyEncoding reports that a viewing key string failed to
// parse into an extended full viewing key.
func IncorrectKeyEncoding(err error) error {
	return makeError(ErrIncorrectKeyEncoding, "viewing key is incorrectly encoded", err)
}

// DecodeFailure reports that a compact block, transaction, or field
// within one failed to decode.
func DecodeFailure(err error) error {
	return makeError(ErrDecodeFailure, "failed to decode compact block data", err)
}

// Storage reports a failure reading from or writing to the wallet
// data store.
func Storage(err error) error {
	return makeError(ErrStorage, "wallet data store operation failed", err)
}

// InvalidWitnessAnchor reports that a stored witness's computed root
// diverged from the commitment tree's root at the witness's own
// position.
func InvalidWitnessAnchor(position int64) error {
	return makeError(ErrInvalidWitnessAnchor,
		fmt.Sprintf("witness anchored at position %d does not match the commitment tree root", position),
		nil)
}

// InvalidNewWitnessAnchor reports that a witness created for a note
// received in the block currently being scanned did not match the
// tree's root immediately after creation.
func InvalidNewWitnessAnchor(position int64) error {
	return makeError(ErrInvalidNewWitnessAnchor,
		fmt.Sprintf("newly created witness at position %d does not match the commitment tree root", position),
		nil)
}

// IO reports a failure reading or writing a byte stream, such as a
// cached compact block file.
func IO(err error) error {
	return makeError(ErrIO, "i/o failure", err)
}
