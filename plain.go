package fhestr

import "fmt"

type (
	plainBool bool
	plainByte byte
	plainUint uint16
)

// PlainBackend evaluates primitives on clear values. It implements both
// Backend and SecretKey, and counts every primitive call, which makes it the
// backend of choice for tests, benchmarks and cost analysis.
//
// It offers no confidentiality.
type PlainBackend struct {
	callStats
}

// NewPlainBackend returns a PlainBackend with zeroed counters.
func NewPlainBackend() *PlainBackend {
	return &PlainBackend{}
}

// Name implements Backend.
func (p *PlainBackend) Name() string { return "plain" }

// TrivialBool implements Backend.
func (p *PlainBackend) TrivialBool(v bool) Bool {
	p.inc(opTrivial)
	return plainBool(v)
}

// TrivialByte implements Backend.
func (p *PlainBackend) TrivialByte(v byte) Byte {
	p.inc(opTrivial)
	return plainByte(v)
}

// TrivialUint implements Backend.
func (p *PlainBackend) TrivialUint(v uint16) Uint {
	p.inc(opTrivial)
	return plainUint(v)
}

// Not implements Backend.
func (p *PlainBackend) Not(a Bool) Bool {
	p.inc(opNot)
	return !a.(plainBool)
}

// And implements Backend.
func (p *PlainBackend) And(a, b Bool) Bool {
	p.inc(opAnd)
	return a.(plainBool) && b.(plainBool)
}

// Or implements Backend.
func (p *PlainBackend) Or(a, b Bool) Bool {
	p.inc(opOr)
	return a.(plainBool) || b.(plainBool)
}

// SelectBool implements Backend.
func (p *PlainBackend) SelectBool(c, a, b Bool) Bool {
	p.inc(opSelectBool)
	if c.(plainBool) {
		return a.(plainBool)
	}
	return b.(plainBool)
}

// EqByte implements Backend.
func (p *PlainBackend) EqByte(a, b Byte) Bool {
	p.inc(opEqByte)
	return plainBool(a.(plainByte) == b.(plainByte))
}

// EqByteClear implements Backend.
func (p *PlainBackend) EqByteClear(a Byte, v byte) Bool {
	p.inc(opEqByteClear)
	return plainBool(a.(plainByte) == plainByte(v))
}

// LtByte implements Backend.
func (p *PlainBackend) LtByte(a, b Byte) Bool {
	p.inc(opLtByte)
	return plainBool(a.(plainByte) < b.(plainByte))
}

// LtByteClear implements Backend.
func (p *PlainBackend) LtByteClear(a Byte, v byte) Bool {
	p.inc(opLtByteClear)
	return plainBool(a.(plainByte) < plainByte(v))
}

// GtByteClear implements Backend.
func (p *PlainBackend) GtByteClear(a Byte, v byte) Bool {
	p.inc(opGtByteClear)
	return plainBool(a.(plainByte) > plainByte(v))
}

// AddByteClear implements Backend.
func (p *PlainBackend) AddByteClear(a Byte, v byte) Byte {
	p.inc(opAddByteClear)
	return a.(plainByte) + plainByte(v)
}

// SelectByte implements Backend.
func (p *PlainBackend) SelectByte(c Bool, a, b Byte) Byte {
	p.inc(opSelectByte)
	if c.(plainBool) {
		return a.(plainByte)
	}
	return b.(plainByte)
}

// BoolToUint implements Backend.
func (p *PlainBackend) BoolToUint(c Bool) Uint {
	p.inc(opBoolToUint)
	if c.(plainBool) {
		return plainUint(1)
	}
	return plainUint(0)
}

// AddUint implements Backend.
func (p *PlainBackend) AddUint(a, b Uint) Uint {
	p.inc(opAddUint)
	return a.(plainUint) + b.(plainUint)
}

// AddUintClear implements Backend.
func (p *PlainBackend) AddUintClear(a Uint, v uint16) Uint {
	p.inc(opAddUintClear)
	return a.(plainUint) + plainUint(v)
}

// SubUint implements Backend.
func (p *PlainBackend) SubUint(a, b Uint) Uint {
	p.inc(opSubUint)
	return a.(plainUint) - b.(plainUint)
}

// EqUintClear implements Backend.
func (p *PlainBackend) EqUintClear(a Uint, v uint16) Bool {
	p.inc(opEqUintClear)
	return plainBool(a.(plainUint) == plainUint(v))
}

// LtUint implements Backend.
func (p *PlainBackend) LtUint(a, b Uint) Bool {
	p.inc(opLtUint)
	return plainBool(a.(plainUint) < b.(plainUint))
}

// LtUintClear implements Backend.
func (p *PlainBackend) LtUintClear(a Uint, v uint16) Bool {
	p.inc(opLtUintClear)
	return plainBool(a.(plainUint) < plainUint(v))
}

// SelectUint implements Backend.
func (p *PlainBackend) SelectUint(c Bool, a, b Uint) Uint {
	p.inc(opSelectUint)
	if c.(plainBool) {
		return a.(plainUint)
	}
	return b.(plainUint)
}

// EncryptBool implements SecretKey. Key-holder calls are not counted.
func (p *PlainBackend) EncryptBool(v bool) Bool { return plainBool(v) }

// EncryptByte implements SecretKey.
func (p *PlainBackend) EncryptByte(v byte) Byte { return plainByte(v) }

// EncryptUint implements SecretKey.
func (p *PlainBackend) EncryptUint(v uint16) Uint { return plainUint(v) }

// DecryptBool implements SecretKey.
func (p *PlainBackend) DecryptBool(c Bool) (bool, error) {
	v, ok := c.(plainBool)
	if !ok {
		return false, fmt.Errorf("%w: %T is not a plain bool", ErrKindMismatch, c)
	}
	return bool(v), nil
}

// DecryptByte implements SecretKey.
func (p *PlainBackend) DecryptByte(c Byte) (byte, error) {
	v, ok := c.(plainByte)
	if !ok {
		return 0, fmt.Errorf("%w: %T is not a plain byte", ErrKindMismatch, c)
	}
	return byte(v), nil
}

// DecryptUint implements SecretKey.
func (p *PlainBackend) DecryptUint(c Uint) (uint16, error) {
	v, ok := c.(plainUint)
	if !ok {
		return 0, fmt.Errorf("%w: %T is not a plain integer", ErrKindMismatch, c)
	}
	return uint16(v), nil
}

// EncodeByte implements Codec.
func (p *PlainBackend) EncodeByte(c Byte) ([]byte, error) {
	v, ok := c.(plainByte)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a plain byte", ErrKindMismatch, c)
	}
	return []byte{byte(v)}, nil
}

// DecodeByte implements Codec.
func (p *PlainBackend) DecodeByte(data []byte) (Byte, error) {
	if len(data) != 1 {
		return nil, ErrInvalidFormat
	}
	return plainByte(data[0]), nil
}
