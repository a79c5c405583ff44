// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletcrypto

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

const noteVersion = 1

// ErrWrongVersion is returned when a decrypted plaintext's leading
// version byte does not match the version this scanner understands.
var ErrWrongVersion = errors.New("walletcrypto: unrecognised note plaintext version")

// ErrCommitmentMismatch is returned when a recovered note's recomputed
// commitment does not equal the cmu the output was received under.
// Since the compact ciphertext carries no authentication tag, this
// check is what keeps the false-accept rate of decrypting under the
// wrong key cryptographically negligible rather than bounded only by
// the plaintext's one-byte version check.
var ErrCommitmentMismatch = errors.New("walletcrypto: decrypted note commitment does not match cmu")

var compactNonce = [chacha20.NonceSize]byte{}

func symmetricKey(shared *btcec.PublicKey) [32]byte {
	return blake2b.Sum256(shared.SerializeCompressed())
}

// TryCompactDecrypt attempts to recover the note underlying a compact
// output addressed with cmu, epk and ciphertext, using ivk. It returns
// ErrNonCanonicalScalar/ErrIdentityScalar if epk does not decompress,
// ErrWrongVersion if the recovered plaintext is not a recognised note
// encoding, and ErrCommitmentMismatch if the recovered note's
// commitment does not equal cmu; all three are treated identically by
// the output scanner, which simply classifies the output as not-ours
// on any error.
func TryCompactDecrypt(ivk IVK, epk, cmu [32]byte, ciphertext [CiphertextSize]byte) (*Note, error) {
	ivkScalar, err := ivk.Scalar()
	if err != nil {
		return nil, err
	}
	epkPoint, err := EphemeralPoint(epk)
	if err != nil {
		return nil, err
	}

	shared := sharedSecretPoint(ivkScalar, epkPoint)
	key := symmetricKey(shared)

	plaintext, err := chachaXor(key, ciphertext[:])
	if err != nil {
		return nil, fmt.Errorf("walletcrypto: decrypt: %w", err)
	}

	note, err := parseNotePlaintext(plaintext)
	if err != nil {
		return nil, err
	}
	if NoteCommitment(note) != cmu {
		return nil, ErrCommitmentMismatch
	}
	return note, nil
}

// CompactEncrypt produces the epk/cmu/ciphertext triple a sender would
// attach to an output paying note to the holder of pk, using the
// ephemeral scalar esk. It exists so tests can construct outputs that
// a corresponding TryCompactDecrypt call is expected to open.
func CompactEncrypt(pk *btcec.PublicKey, esk *secp256k1.ModNScalar, note *Note) (epk, cmu [32]byte, ciphertext [CiphertextSize]byte, err error) {
	epk = esk.Bytes()
	cmu = NoteCommitment(note)

	shared := sharedSecretPoint(esk, pk)
	key := symmetricKey(shared)

	plaintext := encodeNotePlaintext(note)
	out, err := chachaXor(key, plaintext)
	if err != nil {
		return epk, cmu, ciphertext, fmt.Errorf("walletcrypto: encrypt: %w", err)
	}
	copy(ciphertext[:], out)
	return epk, cmu, ciphertext, nil
}

func chachaXor(key [32]byte, in []byte) ([]byte, error) {
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], compactNonce[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	cipher.XORKeyStream(out, in)
	return out, nil
}

func encodeNotePlaintext(note *Note) []byte {
	buf := make([]byte, 1+DiversifierSize+8+RcmSize)
	buf[0] = noteVersion
	copy(buf[1:1+DiversifierSize], note.Diversifier[:])
	binary.LittleEndian.PutUint64(buf[1+DiversifierSize:1+DiversifierSize+8], uint64(note.Value))
	copy(buf[1+DiversifierSize+8:], note.Rcm[:])
	return buf
}

func parseNotePlaintext(plaintext []byte) (*Note, error) {
	if len(plaintext) != 1+DiversifierSize+8+RcmSize {
		return nil, fmt.Errorf("walletcrypto: note plaintext has %d bytes", len(plaintext))
	}
	if plaintext[0] != noteVersion {
		return nil, ErrWrongVersion
	}

	note := &Note{}
	copy(note.Diversifier[:], plaintext[1:1+DiversifierSize])
	note.Value = btcutil.Amount(binary.LittleEndian.Uint64(plaintext[1+DiversifierSize : 1+DiversifierSize+8]))
	copy(note.Rcm[:], plaintext[1+DiversifierSize+8:])
	return note, nil
}
