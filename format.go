package fhestr

import (
	"encoding/binary"
)

// Sealed ciphertext format:
// [kind:1][keyIDLen:1][keyID:n][nonce:24][secretbox(inner)]
//
// Kind byte values:
//   0x01 = boolean
//   0x02 = byte
//   0x03 = 16-bit integer
//
// Inner plaintext format (before encryption):
// [kind:1][keyIDLen:1][keyID:n][payload]
//
// The inner kind and key_id are authenticated by secretbox, binding the
// ciphertext to both.
//
// Serialized string frame:
// [frame:1][data]
//
// Frame byte values:
//   0x00 = data is the raw body
//   0x01 = data is the zstd-compressed body
//
// String body:
// [padded:1][capacity:uvarint]{[len:uvarint][ciphertext]}*
//
// capacity is at most 65535.

const (
	kindBool byte = 0x01
	kindByte byte = 0x02
	kindUint byte = 0x03

	nonceSize = 24
)

const (
	frameRaw  byte = 0x00
	frameZstd byte = 0x01
)

// formatStringFrame prefixes data with its frame byte.
func formatStringFrame(frame byte, data []byte) []byte {
	out := make([]byte, 0, 1+len(data))
	out = append(out, frame)
	return append(out, data...)
}

// parseStringFrame splits a frame into its frame byte and data. Unknown
// frame bytes are left to the compressor.
func parseStringFrame(data []byte) (frame byte, rest []byte, err error) {
	if len(data) < 1 {
		return 0, nil, ErrInvalidFormat
	}
	return data[0], data[1:], nil
}

// formatCiphertext assembles the outer ciphertext format.
func formatCiphertext(kind byte, keyID string, nonce [24]byte, ciphertext []byte) []byte {
	keyIDLen := len(keyID)

	totalSize := 1 + 1 + keyIDLen + nonceSize + len(ciphertext)
	result := make([]byte, 0, totalSize)

	result = append(result, kind)
	result = append(result, byte(keyIDLen))
	result = append(result, keyID...)
	result = append(result, nonce[:]...)
	result = append(result, ciphertext...)

	return result
}

// parseFormat parses the outer ciphertext format.
func parseFormat(data []byte) (kind byte, keyID string, nonce [24]byte, ciphertext []byte, err error) {
	// kind(1) + keyIDLen(1) + keyID(1 min) + nonce(24) + some ciphertext
	minSize := 1 + 1 + 1 + nonceSize + 1
	if len(data) < minSize {
		err = ErrInvalidFormat
		return
	}

	kind = data[0]
	if kind < kindBool || kind > kindUint {
		err = ErrInvalidFormat
		return
	}

	keyIDLen := int(data[1])
	if keyIDLen == 0 {
		err = ErrInvalidFormat
		return
	}

	headerSize := 1 + 1 + keyIDLen + nonceSize
	if len(data) < headerSize+1 {
		err = ErrInvalidFormat
		return
	}

	keyID = string(data[2 : 2+keyIDLen])
	copy(nonce[:], data[2+keyIDLen:headerSize])
	ciphertext = data[headerSize:]

	return
}

// formatInnerPlaintext prepends the kind and key_id to the payload.
func formatInnerPlaintext(kind byte, keyID string, payload []byte) []byte {
	result := make([]byte, 0, 2+len(keyID)+len(payload))
	result = append(result, kind, byte(len(keyID)))
	result = append(result, keyID...)
	result = append(result, payload...)
	return result
}

// parseInnerPlaintext extracts the kind, key_id and payload from the inner format.
func parseInnerPlaintext(data []byte) (kind byte, keyID string, payload []byte, err error) {
	if len(data) < 3 {
		err = ErrInvalidFormat
		return
	}

	kind = data[0]
	keyIDLen := int(data[1])
	if keyIDLen == 0 || len(data) < 2+keyIDLen {
		err = ErrInvalidFormat
		return
	}

	keyID = string(data[2 : 2+keyIDLen])
	payload = data[2+keyIDLen:]
	return
}

// formatStringBody lays out a string's padding flag, capacity and encoded bytes.
func formatStringBody(padded bool, blobs [][]byte) []byte {
	size := 1 + binary.MaxVarintLen64
	for _, b := range blobs {
		size += binary.MaxVarintLen64 + len(b)
	}
	result := make([]byte, 0, size)

	var p byte
	if padded {
		p = 1
	}
	result = append(result, p)
	result = binary.AppendUvarint(result, uint64(len(blobs)))
	for _, b := range blobs {
		result = binary.AppendUvarint(result, uint64(len(b)))
		result = append(result, b...)
	}
	return result
}

// parseStringBody is the inverse of formatStringBody.
func parseStringBody(data []byte) (padded bool, blobs [][]byte, err error) {
	if len(data) < 2 || data[0] > 1 {
		err = ErrInvalidFormat
		return
	}
	padded = data[0] == 1
	data = data[1:]

	capacity, n := binary.Uvarint(data)
	// Every entry needs at least its length prefix.
	if n <= 0 || capacity > uint64(len(data)) || capacity > maxUint {
		err = ErrInvalidFormat
		return
	}
	data = data[n:]

	blobs = make([][]byte, 0, capacity)
	for i := uint64(0); i < capacity; i++ {
		size, n := binary.Uvarint(data)
		if n <= 0 || size > uint64(len(data)-n) {
			err = ErrInvalidFormat
			return
		}
		blobs = append(blobs, data[n:n+int(size)])
		data = data[n+int(size):]
	}
	if len(data) != 0 {
		err = ErrInvalidFormat
	}
	return
}
