package fhestr

import (
	"fmt"
)

// EncryptedString is a sequence of encrypted ASCII bytes with a clear
// capacity. An unpadded string's length equals its capacity. A padded
// string may end in encrypted null bytes, which only ever trail the
// content.
//
// EncryptedString values are immutable; operations return new values.
type EncryptedString struct {
	bytes  []Byte
	padded bool
}

// Cap returns the clear number of encrypted bytes.
func (s EncryptedString) Cap() int { return len(s.bytes) }

// Padded reports whether the string's length is obscured by trailing nulls.
func (s EncryptedString) Padded() bool { return s.padded }

// Bytes returns the encrypted bytes. The slice must not be modified.
func (s EncryptedString) Bytes() []Byte { return s.bytes }

// NewEncryptedString wraps backend ciphertexts as a string. The caller
// guarantees the canonical form: no nulls when unpadded, only trailing
// nulls when padded.
func NewEncryptedString(bytes []Byte, padded bool) EncryptedString {
	out := make([]Byte, len(bytes))
	copy(out, bytes)
	return EncryptedString{bytes: out, padded: padded}
}

func (EncryptedString) isPattern() {}

// Pattern is an operand of a string operation: an EncryptedString or a Clear
// string.
type Pattern interface {
	isPattern()
}

// Clear is a clear ASCII string operand. Its methods implement the clear
// reference semantics of every engine operation.
type Clear string

func (Clear) isPattern() {}

// CheckASCII reports whether text can be encrypted: every byte must be in
// 0x01..0x7F.
func CheckASCII(text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] == 0 || text[i] > 0x7F {
			return fmt.Errorf("%w: byte 0x%02x at position %d", ErrInvalidInput, text[i], i)
		}
	}
	return nil
}

// Count is a repetition or limit argument: either clear, or encrypted with a
// mandatory clear upper bound.
type Count struct {
	ct  Uint
	n   int
	max int
}

// ClearCount returns a clear count.
func ClearCount(n uint16) Count {
	return Count{n: int(n), max: int(n)}
}

// Encrypted reports whether the count's value is secret.
func (c Count) Encrypted() bool { return c.ct != nil }

// Max returns the clear upper bound of the count.
func (c Count) Max() int { return c.max }

// maxUint bounds every clear size that flows into a 16-bit ciphertext.
const maxUint = 1<<16 - 1

// checkCapacity rejects string capacities whose lengths and indices would
// not fit a 16-bit ciphertext.
func checkCapacity(n int) error {
	if n > maxUint {
		return fmt.Errorf("%w: capacity %d above %d", ErrCountOverflow, n, maxUint)
	}
	return nil
}

// mustFit panics with the checkCapacity error. Operations whose result
// capacity grows with their operands call it before allocating.
func mustFit(op string, n int) {
	if err := checkCapacity(n); err != nil {
		panic(fmt.Errorf("%s: %w", op, err))
	}
}

// ClientKey holds a SecretKey and converts between clear values and engine
// operands.
type ClientKey struct {
	sk SecretKey
}

// NewClientKey wraps a SecretKey.
func NewClientKey(sk SecretKey) *ClientKey {
	return &ClientKey{sk: sk}
}

// Encrypt encrypts ASCII text and appends pad encrypted null bytes.
// The result is padded iff pad > 0.
func (k *ClientKey) Encrypt(text string, pad int) (EncryptedString, error) {
	if err := CheckASCII(text); err != nil {
		return EncryptedString{}, err
	}
	if pad < 0 {
		return EncryptedString{}, fmt.Errorf("%w: negative pad count %d", ErrInvalidInput, pad)
	}
	if err := checkCapacity(len(text) + pad); err != nil {
		return EncryptedString{}, err
	}

	bytes := make([]Byte, 0, len(text)+pad)
	for i := 0; i < len(text); i++ {
		bytes = append(bytes, k.sk.EncryptByte(text[i]))
	}
	for i := 0; i < pad; i++ {
		bytes = append(bytes, k.sk.EncryptByte(0))
	}
	return EncryptedString{bytes: bytes, padded: pad > 0}, nil
}

// EncryptCount encrypts n with the clear bound max.
func (k *ClientKey) EncryptCount(n, max int) (Count, error) {
	if n < 0 || max < 0 {
		return Count{}, fmt.Errorf("%w: negative count", ErrInvalidInput)
	}
	if n > max || max > maxUint {
		return Count{}, fmt.Errorf("%w: n=%d max=%d", ErrCountOverflow, n, max)
	}
	return Count{ct: k.sk.EncryptUint(uint16(n)), max: max}, nil
}
