package fhestr

// asciiWhitespace is the set of bytes trimmed by the Trim family.
var asciiWhitespace = [...]byte{' ', '\t', '\n', '\f', '\r'}

// TrimStart removes leading whitespace. The result keeps the capacity of s
// and is always padded: the removed bytes become trailing nulls.
func (e *Engine) TrimStart(s EncryptedString, opts ...OpOption) EncryptedString {
	defer e.trace("trim_start", s)()
	return e.finish(e.trimStart(stringOperand(s)), true, newOpConfig(opts))
}

// TrimEnd removes trailing whitespace. The result is always padded.
func (e *Engine) TrimEnd(s EncryptedString, opts ...OpOption) EncryptedString {
	defer e.trace("trim_end", s)()
	return e.finish(e.trimEnd(stringOperand(s)), true, newOpConfig(opts))
}

// Trim removes leading and trailing whitespace. The result is always padded.
func (e *Engine) Trim(s EncryptedString, opts ...OpOption) EncryptedString {
	defer e.trace("trim", s)()
	start := operand{cells: e.trimStart(stringOperand(s)), padded: true}
	return e.finish(e.trimEnd(start), true, newOpConfig(opts))
}

func (e *Engine) isWhitespace(c cell) Flag {
	ws := clearFlag(false)
	for _, b := range asciiWhitespace {
		ws = e.or(ws, e.eqCell(c, cell{val: b}))
	}
	return ws
}

func (e *Engine) whitespaceFlags(cells []cell) []Flag {
	out := make([]Flag, len(cells))
	e.parallel(len(cells), func(k int) {
		out[k] = e.isWhitespace(cells[k])
	})
	return out
}

// trimStart counts the leading whitespace with a running AND and shifts the
// rest of the string left by that count.
func (e *Engine) trimStart(s operand) []cell {
	ws := e.whitespaceFlags(s.cells)
	run := clearFlag(true)
	trimmed := clearNumber(0)
	for k := range ws {
		run = e.and(run, ws[k])
		trimmed = e.add(trimmed, e.flagToNumber(run))
	}
	return e.shiftLeft(s.cells, trimmed)
}

// trimEnd nulls every position from which only whitespace or padding
// follows.
func (e *Engine) trimEnd(s operand) []cell {
	drop := e.whitespaceFlags(s.cells)
	if s.padded {
		nulls := e.nullFlags(s.cells)
		for k := range drop {
			drop[k] = e.or(drop[k], nulls[k])
		}
	}

	out := make([]cell, s.capacity())
	run := clearFlag(true)
	for k := len(out) - 1; k >= 0; k-- {
		run = e.and(run, drop[k])
		out[k] = e.nullIf(run, s.cells[k])
	}
	return out
}
