package fhestr

// Eq reports whether a and b hold the same content.
func (e *Engine) Eq(a EncryptedString, b Pattern) Flag {
	defer e.trace("eq", a)()
	return e.eq(stringOperand(a), operandOf(b))
}

// Ne reports whether a and b differ.
func (e *Engine) Ne(a EncryptedString, b Pattern) Flag {
	defer e.trace("ne", a)()
	return e.not(e.eq(stringOperand(a), operandOf(b)))
}

// Compare orders a and b lexicographically by byte value.
func (e *Engine) Compare(a EncryptedString, b Pattern) Ordering {
	defer e.trace("compare", a)()
	return e.compare(stringOperand(a), operandOf(b))
}

// Lt reports a < b.
func (e *Engine) Lt(a EncryptedString, b Pattern) Flag {
	defer e.trace("lt", a)()
	return e.compare(stringOperand(a), operandOf(b)).Less
}

// Le reports a <= b.
func (e *Engine) Le(a EncryptedString, b Pattern) Flag {
	defer e.trace("le", a)()
	return e.not(e.compare(stringOperand(a), operandOf(b)).Greater)
}

// Gt reports a > b.
func (e *Engine) Gt(a EncryptedString, b Pattern) Flag {
	defer e.trace("gt", a)()
	return e.compare(stringOperand(a), operandOf(b)).Greater
}

// Ge reports a >= b.
func (e *Engine) Ge(a EncryptedString, b Pattern) Flag {
	defer e.trace("ge", a)()
	return e.not(e.compare(stringOperand(a), operandOf(b)).Less)
}

// EqIgnoreCase reports whether a and b are equal after ASCII lowercasing.
func (e *Engine) EqIgnoreCase(a EncryptedString, b Pattern) Flag {
	defer e.trace("eq_ignore_case", a)()
	return e.eq(e.lowerOperand(stringOperand(a)), e.lowerOperand(operandOf(b)))
}

// eq compares position by position. Two unpadded operands are equal only at
// equal capacity; otherwise nulls are compared like any byte over the
// longer capacity, which also forces equal true lengths.
func (e *Engine) eq(a, b operand) Flag {
	n := max(a.capacity(), b.capacity())
	if !a.padded && !b.padded {
		if a.capacity() != b.capacity() {
			return clearFlag(false)
		}
	}
	eqs := make([]Flag, n)
	e.parallel(n, func(k int) {
		eqs[k] = e.eqCell(a.at(k), b.at(k))
	})
	return e.foldAnd(eqs)
}

// compare folds from the last position to the first so the first
// difference decides. Nulls sort before every other byte, which orders a
// proper prefix first.
func (e *Engine) compare(a, b operand) Ordering {
	n := max(a.capacity(), b.capacity())
	eqs := make([]Flag, n)
	lts := make([]Flag, n)
	e.parallel(n, func(k int) {
		x, y := a.at(k), b.at(k)
		eqs[k] = e.eqCell(x, y)
		lts[k] = e.ltCell(x, y)
	})

	less := clearFlag(false)
	for k := n - 1; k >= 0; k-- {
		less = e.selectFlag(eqs[k], less, lts[k])
	}
	equal := e.foldAnd(eqs)
	greater := e.and(e.not(less), e.not(equal))
	return Ordering{Less: less, Greater: greater}
}
