package fhestr

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// infoSeal is the HKDF info string for the ciphertext sealing key.
const infoSeal = "fhestr-seal"

// derivedKeys holds the sealing key derived from a master key.
// It is cached at initialization to avoid repeated HKDF derivation.
type derivedKeys struct {
	seal [32]byte // XSalsa20-Poly1305 key
}

// deriveKeys derives the sealing key from a master key using HKDF-SHA256.
// The master key must be exactly 32 bytes.
func deriveKeys(masterKey []byte) (*derivedKeys, error) {
	if len(masterKey) != 32 {
		return nil, ErrInvalidKeySize
	}

	keys := &derivedKeys{}
	if err := hkdfDerive(masterKey, infoSeal, keys.seal[:]); err != nil {
		return nil, err
	}
	return keys, nil
}

// zero wipes the derived key material.
func (dk *derivedKeys) zero() { zeroBytes(dk.seal[:]) }

// zeroBytes overwrites b with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// cloneBytes returns a copy of b that does not share its backing array.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// hkdfDerive performs HKDF-SHA256 key derivation with the given info string.
// No salt is used (nil salt means HKDF uses a zero-filled salt of HashLen bytes).
func hkdfDerive(masterKey []byte, info string, out []byte) error {
	reader := hkdf.New(sha256.New, masterKey, nil, []byte(info))
	_, err := io.ReadFull(reader, out)
	return err
}
