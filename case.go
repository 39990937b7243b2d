package fhestr

// caseDelta is the distance between an ASCII lower and upper case letter.
const caseDelta = 'a' - 'A'

// ToUpper maps a-z to A-Z and leaves every other byte unchanged.
func (e *Engine) ToUpper(s EncryptedString, opts ...OpOption) EncryptedString {
	defer e.trace("to_uppercase", s)()
	so := stringOperand(s)
	return e.finish(e.mapCase(so.cells, 'a', 'z', 256-caseDelta), so.padded, newOpConfig(opts))
}

// ToLower maps A-Z to a-z and leaves every other byte unchanged.
func (e *Engine) ToLower(s EncryptedString, opts ...OpOption) EncryptedString {
	defer e.trace("to_lowercase", s)()
	so := stringOperand(s)
	return e.finish(e.mapCase(so.cells, 'A', 'Z', caseDelta), so.padded, newOpConfig(opts))
}

func (e *Engine) lowerOperand(o operand) operand {
	return operand{cells: e.mapCase(o.cells, 'A', 'Z', caseDelta), padded: o.padded}
}

// mapCase adds delta (mod 256) to every byte in [lo, hi]. Positions are
// independent and run on the worker pool.
func (e *Engine) mapCase(cells []cell, lo, hi byte, delta byte) []cell {
	out := make([]cell, len(cells))
	e.parallel(len(cells), func(k int) {
		c := cells[k]
		if c.ct == nil {
			if c.val >= lo && c.val <= hi {
				c.val += delta
			}
			out[k] = c
			return
		}
		shifted := cell{ct: e.b.AddByteClear(c.ct, delta)}
		out[k] = e.selectCell(e.inRange(c, lo, hi), shifted, c)
	})
	return out
}
