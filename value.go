package fhestr

// Flag is a boolean result. It stays clear when public sizes alone decide
// it and is encrypted otherwise.
type Flag struct {
	ct  Bool
	val bool
}

// Encrypted reports whether the flag's value is secret.
func (f Flag) Encrypted() bool { return f.ct != nil }

// Value returns the clear value; ok is false for an encrypted flag.
func (f Flag) Value() (v bool, ok bool) {
	if f.ct != nil {
		return false, false
	}
	return f.val, true
}

// Ciphertext returns the encrypted value, or nil for a clear flag.
func (f Flag) Ciphertext() Bool { return f.ct }

func clearFlag(v bool) Flag { return Flag{val: v} }

func (f Flag) isClear(v bool) bool { return f.ct == nil && f.val == v }

// Number is a small unsigned integer result (a length or an index), clear
// when public and encrypted otherwise.
type Number struct {
	ct  Uint
	val int
}

// Encrypted reports whether the number's value is secret.
func (n Number) Encrypted() bool { return n.ct != nil }

// Value returns the clear value; ok is false for an encrypted number.
func (n Number) Value() (v int, ok bool) {
	if n.ct != nil {
		return 0, false
	}
	return n.val, true
}

// Ciphertext returns the encrypted value, or nil for a clear number.
func (n Number) Ciphertext() Uint { return n.ct }

func clearNumber(v int) Number { return Number{val: v} }

// Ordering is the result of a lexicographic comparison. Neither flag set
// means equal.
type Ordering struct {
	Less    Flag
	Greater Flag
}

// cell is one byte position of an operand: an encrypted byte, or a clear
// byte for clear operands and positions past the end.
type cell struct {
	ct  Byte
	val byte
}

// operand is the engine's uniform view of a Pattern.
type operand struct {
	cells  []cell
	padded bool
}

func stringOperand(s EncryptedString) operand {
	cells := make([]cell, len(s.bytes))
	for i, b := range s.bytes {
		cells[i] = cell{ct: b}
	}
	return operand{cells: cells, padded: s.padded}
}

// operandOf converts a Pattern. Clear operands must pass CheckASCII;
// anything else is a programming error and panics.
func operandOf(p Pattern) operand {
	switch v := p.(type) {
	case EncryptedString:
		return stringOperand(v)
	case *EncryptedString:
		return stringOperand(*v)
	case Clear:
		if err := CheckASCII(string(v)); err != nil {
			panic(err.Error())
		}
		cells := make([]cell, len(v))
		for i := 0; i < len(v); i++ {
			cells[i] = cell{val: v[i]}
		}
		return operand{cells: cells}
	default:
		panic("fhestr: unsupported pattern type")
	}
}

// at returns the cell at i; positions outside the capacity read as a clear null.
func (o operand) at(i int) cell {
	if i >= 0 && i < len(o.cells) {
		return o.cells[i]
	}
	return cell{}
}

func (o operand) capacity() int { return len(o.cells) }

// minLen is the smallest true length the operand may have.
func (o operand) minLen() int {
	if o.padded {
		return 0
	}
	return len(o.cells)
}

// mayBeEmpty reports whether the true length may be zero.
func (o operand) mayBeEmpty() bool { return o.minLen() == 0 }

// isClearText reports whether every cell is clear.
func (o operand) isClearText() bool {
	for _, c := range o.cells {
		if c.ct != nil {
			return false
		}
	}
	return true
}

// The methods below are the engine's primitive layer: they short-circuit
// on clear inputs and defer to the backend otherwise.

func (e *Engine) boolCT(f Flag) Bool {
	if f.ct != nil {
		return f.ct
	}
	return e.b.TrivialBool(f.val)
}

func (e *Engine) uintCT(n Number) Uint {
	if n.ct != nil {
		return n.ct
	}
	return e.b.TrivialUint(uint16(n.val))
}

func (e *Engine) byteCT(c cell) Byte {
	if c.ct != nil {
		return c.ct
	}
	return e.b.TrivialByte(c.val)
}

func (e *Engine) not(f Flag) Flag {
	if f.ct == nil {
		return clearFlag(!f.val)
	}
	return Flag{ct: e.b.Not(f.ct)}
}

func (e *Engine) and(x, y Flag) Flag {
	switch {
	case x.isClear(false), y.isClear(false):
		return clearFlag(false)
	case x.ct == nil:
		return y
	case y.ct == nil:
		return x
	}
	return Flag{ct: e.b.And(x.ct, y.ct)}
}

func (e *Engine) or(x, y Flag) Flag {
	switch {
	case x.isClear(true), y.isClear(true):
		return clearFlag(true)
	case x.ct == nil:
		return y
	case y.ct == nil:
		return x
	}
	return Flag{ct: e.b.Or(x.ct, y.ct)}
}

func (e *Engine) selectFlag(c, x, y Flag) Flag {
	if c.ct == nil {
		if c.val {
			return x
		}
		return y
	}
	if x.ct == nil && y.ct == nil {
		switch {
		case x.val == y.val:
			return x
		case x.val:
			return c
		default:
			return e.not(c)
		}
	}
	return Flag{ct: e.b.SelectBool(c.ct, e.boolCT(x), e.boolCT(y))}
}

func (e *Engine) flagToNumber(f Flag) Number {
	if f.ct == nil {
		if f.val {
			return clearNumber(1)
		}
		return clearNumber(0)
	}
	return Number{ct: e.b.BoolToUint(f.ct)}
}

func (e *Engine) add(x, y Number) Number {
	switch {
	case x.ct == nil && y.ct == nil:
		return clearNumber(x.val + y.val)
	case x.ct == nil:
		return e.addClear(y, x.val)
	case y.ct == nil:
		return e.addClear(x, y.val)
	}
	return Number{ct: e.b.AddUint(x.ct, y.ct)}
}

func (e *Engine) addClear(x Number, v int) Number {
	if x.ct == nil {
		return clearNumber(x.val + v)
	}
	if v == 0 {
		return x
	}
	return Number{ct: e.b.AddUintClear(x.ct, uint16(v))}
}

// sub returns x - y; the caller guarantees x >= y whenever the result is used.
func (e *Engine) sub(x, y Number) Number {
	if y.ct == nil && y.val == 0 {
		return x
	}
	if x.ct == nil && y.ct == nil {
		return clearNumber(x.val - y.val)
	}
	return Number{ct: e.b.SubUint(e.uintCT(x), e.uintCT(y))}
}

func (e *Engine) selectNumber(c Flag, x, y Number) Number {
	if c.ct == nil {
		if c.val {
			return x
		}
		return y
	}
	if x.ct == nil && y.ct == nil && x.val == y.val {
		return x
	}
	return Number{ct: e.b.SelectUint(c.ct, e.uintCT(x), e.uintCT(y))}
}

func (e *Engine) eqClear(x Number, v int) Flag {
	if x.ct == nil {
		return clearFlag(x.val == v)
	}
	if v < 0 || v > maxUint {
		return clearFlag(false)
	}
	return Flag{ct: e.b.EqUintClear(x.ct, uint16(v))}
}

// ltClear reports x < v.
func (e *Engine) ltClear(x Number, v int) Flag {
	if x.ct == nil {
		return clearFlag(x.val < v)
	}
	if v <= 0 {
		return clearFlag(false)
	}
	if v > maxUint {
		return clearFlag(true)
	}
	return Flag{ct: e.b.LtUintClear(x.ct, uint16(v))}
}

// lt reports x < y.
func (e *Engine) lt(x, y Number) Flag {
	switch {
	case y.ct == nil:
		return e.ltClear(x, y.val)
	case x.ct == nil:
		// x < y  <=>  !(y < x+1)
		return e.not(e.ltClear(y, x.val+1))
	}
	return Flag{ct: e.b.LtUint(x.ct, y.ct)}
}

func (e *Engine) eqCell(x, y cell) Flag {
	switch {
	case x.ct == nil && y.ct == nil:
		return clearFlag(x.val == y.val)
	case x.ct == nil:
		return Flag{ct: e.b.EqByteClear(y.ct, x.val)}
	case y.ct == nil:
		return Flag{ct: e.b.EqByteClear(x.ct, y.val)}
	}
	return Flag{ct: e.b.EqByte(x.ct, y.ct)}
}

func (e *Engine) isNull(c cell) Flag {
	return e.eqCell(c, cell{})
}

// ltCell reports x < y.
func (e *Engine) ltCell(x, y cell) Flag {
	switch {
	case x.ct == nil && y.ct == nil:
		return clearFlag(x.val < y.val)
	case y.ct == nil:
		if y.val == 0 {
			return clearFlag(false)
		}
		return Flag{ct: e.b.LtByteClear(x.ct, y.val)}
	case x.ct == nil:
		return Flag{ct: e.b.GtByteClear(y.ct, x.val)}
	}
	return Flag{ct: e.b.LtByte(x.ct, y.ct)}
}

// inRange reports lo <= c <= hi.
func (e *Engine) inRange(c cell, lo, hi byte) Flag {
	if c.ct == nil {
		return clearFlag(c.val >= lo && c.val <= hi)
	}
	return e.and(
		Flag{ct: e.b.GtByteClear(c.ct, lo-1)},
		Flag{ct: e.b.LtByteClear(c.ct, hi+1)},
	)
}

func (e *Engine) selectCell(c Flag, x, y cell) cell {
	if c.ct == nil {
		if c.val {
			return x
		}
		return y
	}
	if x.ct == nil && y.ct == nil && x.val == y.val {
		return x
	}
	return cell{ct: e.b.SelectByte(c.ct, e.byteCT(x), e.byteCT(y))}
}

// nullIf returns a null cell where c holds and x otherwise.
func (e *Engine) nullIf(c Flag, x cell) cell {
	return e.selectCell(c, cell{}, x)
}
