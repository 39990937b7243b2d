package fhestr

import (
	"sync/atomic"
)

// Bool, Byte and Uint are opaque ciphertext handles produced by a Backend.
// The engine never looks inside them; it only passes them back to the
// backend that created them.
type (
	Bool any
	Byte any
	Uint any
)

// Backend evaluates primitive operations on ciphertexts without holding
// the decryption key. Uint values are 16-bit and wrap on overflow; Byte
// addition wraps modulo 256.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// Name identifies the backend in logs and CLI output.
	Name() string

	TrivialBool(v bool) Bool
	TrivialByte(v byte) Byte
	TrivialUint(v uint16) Uint

	Not(a Bool) Bool
	And(a, b Bool) Bool
	Or(a, b Bool) Bool
	SelectBool(c, a, b Bool) Bool

	EqByte(a, b Byte) Bool
	EqByteClear(a Byte, v byte) Bool
	LtByte(a, b Byte) Bool
	// LtByteClear reports a < v.
	LtByteClear(a Byte, v byte) Bool
	// GtByteClear reports a > v.
	GtByteClear(a Byte, v byte) Bool
	AddByteClear(a Byte, v byte) Byte
	SelectByte(c Bool, a, b Byte) Byte

	BoolToUint(c Bool) Uint
	AddUint(a, b Uint) Uint
	AddUintClear(a Uint, v uint16) Uint
	SubUint(a, b Uint) Uint
	EqUintClear(a Uint, v uint16) Bool
	LtUint(a, b Uint) Bool
	// LtUintClear reports a < v.
	LtUintClear(a Uint, v uint16) Bool
	SelectUint(c Bool, a, b Uint) Uint
}

// SecretKey encrypts and decrypts primitive values. It is held by the data
// owner and never handed to the Engine.
type SecretKey interface {
	EncryptBool(v bool) Bool
	EncryptByte(v byte) Byte
	EncryptUint(v uint16) Uint

	DecryptBool(c Bool) (bool, error)
	DecryptByte(c Byte) (byte, error)
	DecryptUint(c Uint) (uint16, error)
}

// Codec is implemented by backends whose byte ciphertexts can be written to
// and read from a wire format.
type Codec interface {
	EncodeByte(c Byte) ([]byte, error)
	DecodeByte(data []byte) (Byte, error)
}

// CallCounter is implemented by backends that count primitive calls.
type CallCounter interface {
	// Calls returns the total number of primitive calls made so far.
	Calls() uint64
	// CallsByOp returns the number of calls per primitive name.
	CallsByOp() map[string]uint64
}

type primitive int

const (
	opTrivial primitive = iota
	opNot
	opAnd
	opOr
	opSelectBool
	opEqByte
	opEqByteClear
	opLtByte
	opLtByteClear
	opGtByteClear
	opAddByteClear
	opSelectByte
	opBoolToUint
	opAddUint
	opAddUintClear
	opSubUint
	opEqUintClear
	opLtUint
	opLtUintClear
	opSelectUint
	numPrimitives
)

var primitiveNames = [numPrimitives]string{
	"trivial", "not", "and", "or", "select_bool",
	"eq_byte", "eq_byte_clear", "lt_byte", "lt_byte_clear", "gt_byte_clear",
	"add_byte_clear", "select_byte",
	"bool_to_uint", "add_uint", "add_uint_clear", "sub_uint",
	"eq_uint_clear", "lt_uint", "lt_uint_clear", "select_uint",
}

// callStats counts primitive calls per operation.
type callStats struct {
	n [numPrimitives]atomic.Uint64
}

func (s *callStats) inc(op primitive) {
	s.n[op].Add(1)
}

// Calls implements CallCounter.
func (s *callStats) Calls() uint64 {
	var total uint64
	for i := range s.n {
		total += s.n[i].Load()
	}
	return total
}

// CallsByOp implements CallCounter. Primitives never called are omitted.
func (s *callStats) CallsByOp() map[string]uint64 {
	out := make(map[string]uint64)
	for i := range s.n {
		if v := s.n[i].Load(); v > 0 {
			out[primitiveNames[i]] = v
		}
	}
	return out
}
