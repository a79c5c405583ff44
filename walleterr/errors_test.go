// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walleterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidHeightMessage(t *testing.T) {
	err := InvalidHeight(5, 7)
	require.EqualError(t, err, "expected height of next CompactBlock to be 5, but was 7")

	var werr Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, ErrInvalidHeight, werr.ErrorCode)
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("leveldb: closed")
	err := Storage(cause)
	require.ErrorIs(t, err, cause)
}

func TestErrorCodeString(t *testing.T) {
	require.Equal(t, "ErrDecodeFailure", ErrDecodeFailure.String())
	require.Contains(t, ErrorCode(999).String(), "ErrorCode(999)")
}
