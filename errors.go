package fhestr

import "errors"

var (
	// ErrInvalidInput indicates plaintext that is not representable: a byte
	// outside 0x01..0x7F or a negative pad count.
	ErrInvalidInput = errors.New("fhestr: invalid input")

	// ErrCountOverflow indicates an encrypted count larger than its clear max,
	// or a max or string capacity that does not fit the 16-bit integer width.
	ErrCountOverflow = errors.New("fhestr: count exceeds max")

	// ErrNullInUnpadded indicates a decrypted unpadded string holding a null byte,
	// so its true length differs from its capacity.
	ErrNullInUnpadded = errors.New("fhestr: null byte in unpadded string")

	// ErrNonCanonical indicates a non-null byte following a null byte in a
	// padded string.
	ErrNonCanonical = errors.New("fhestr: padding is not strictly trailing")

	// ErrNonASCII indicates a decrypted byte outside 0x00..0x7F.
	ErrNonASCII = errors.New("fhestr: byte outside ASCII range")

	// ErrDecryptionFailed indicates secretbox authentication failed (wrong key or corrupted data).
	ErrDecryptionFailed = errors.New("fhestr: decryption failed")

	// ErrKeyIDMismatch indicates the inner key_id doesn't match the outer key_id (tampering detected).
	ErrKeyIDMismatch = errors.New("fhestr: key_id mismatch")

	// ErrKindMismatch indicates a ciphertext of one kind (bool, byte, integer)
	// was used where another was expected.
	ErrKindMismatch = errors.New("fhestr: ciphertext kind mismatch")

	// ErrKeyNotFound indicates the requested key_id is not in the registry or provider.
	ErrKeyNotFound = errors.New("fhestr: key not found")

	// ErrInvalidKeySize indicates the master key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("fhestr: key must be 32 bytes")

	// ErrNoKeys indicates no keys were provided.
	ErrNoKeys = errors.New("fhestr: no keys provided")

	// ErrDefaultKeyNotFound indicates the specified default key ID was not found.
	ErrDefaultKeyNotFound = errors.New("fhestr: default key not found")

	// ErrInvalidKeyID indicates the key ID is invalid (empty or too long).
	ErrInvalidKeyID = errors.New("fhestr: key ID must be 1-255 bytes")

	// ErrKeyClosed indicates the key was used after Close() was called.
	ErrKeyClosed = errors.New("fhestr: key is closed")

	// ErrInvalidFormat indicates a serialized ciphertext or string is malformed.
	ErrInvalidFormat = errors.New("fhestr: invalid ciphertext format")

	// ErrDecompressionFailed indicates zstd decompression failed.
	ErrDecompressionFailed = errors.New("fhestr: decompression failed")

	// ErrUnsupportedBackend indicates the engine's backend cannot serialize ciphertexts.
	ErrUnsupportedBackend = errors.New("fhestr: backend does not support serialization")
)
