package fhestr

// Len returns the true length of s. It is clear for unpadded strings and
// costs O(capacity) primitives otherwise.
func (e *Engine) Len(s EncryptedString) Number {
	defer e.trace("len", s)()
	return e.lenOf(stringOperand(s))
}

// IsEmpty reports whether s has no content. A padded string costs at most
// one comparison: canonical padding means s is empty iff its first byte is
// null.
func (e *Engine) IsEmpty(s EncryptedString) Flag {
	defer e.trace("is_empty", s)()
	return e.isEmptyOf(stringOperand(s))
}

// Contains reports whether p occurs in s.
func (e *Engine) Contains(s EncryptedString, p Pattern) Flag {
	defer e.trace("contains", s)()
	return e.foldOr(e.matches(stringOperand(s), operandOf(p)))
}

// StartsWith reports whether s begins with p.
func (e *Engine) StartsWith(s EncryptedString, p Pattern) Flag {
	defer e.trace("starts_with", s)()
	return e.startsWith(stringOperand(s), operandOf(p))
}

// EndsWith reports whether s ends with p.
func (e *Engine) EndsWith(s EncryptedString, p Pattern) Flag {
	defer e.trace("ends_with", s)()
	return e.foldOr(e.endMatches(stringOperand(s), operandOf(p)))
}

// Find returns the offset of the first occurrence of p in s. The index is 0
// when p does not occur; found tells the cases apart.
func (e *Engine) Find(s EncryptedString, p Pattern) (index Number, found Flag) {
	defer e.trace("find", s)()
	return e.findOf(stringOperand(s), operandOf(p), false)
}

// RFind returns the offset of the last occurrence of p in s. An empty
// pattern matches at the true length of s.
func (e *Engine) RFind(s EncryptedString, p Pattern) (index Number, found Flag) {
	defer e.trace("rfind", s)()
	return e.findOf(stringOperand(s), operandOf(p), true)
}

// StripPrefix removes p from the start of s. When s does not start with p
// the result holds the same content as s.
func (e *Engine) StripPrefix(s EncryptedString, p Pattern, opts ...OpOption) (EncryptedString, Flag) {
	defer e.trace("strip_prefix", s)()
	cfg := newOpConfig(opts)
	so, po := stringOperand(s), operandOf(p)

	found := e.startsWith(so, po)
	if found.isClear(false) {
		return e.withPadding(s, cfg), found
	}
	skip := e.selectNumber(found, e.lenOf(po), clearNumber(0))
	return e.suffixOf(so, skip, cfg), found
}

// StripSuffix removes p from the end of s. When s does not end with p the
// result holds the same content as s.
func (e *Engine) StripSuffix(s EncryptedString, p Pattern, opts ...OpOption) (EncryptedString, Flag) {
	defer e.trace("strip_suffix", s)()
	cfg := newOpConfig(opts)
	so, po := stringOperand(s), operandOf(p)

	ends := e.endMatches(so, po)
	found := e.foldOr(ends)
	if found.isClear(false) {
		return e.withPadding(s, cfg), found
	}

	// A strict end match at i means the suffix occupies [i, len).
	out := make([]cell, so.capacity())
	cover := clearFlag(false)
	for k := range out {
		cover = e.or(cover, ends[k])
		out[k] = e.nullIf(cover, so.cells[k])
	}
	return e.finish(out, true, cfg), found
}

// SplitOnce splits s around the first occurrence of p. When p does not
// occur, lhs holds all of s and rhs is empty.
func (e *Engine) SplitOnce(s EncryptedString, p Pattern, opts ...OpOption) (lhs, rhs EncryptedString, found Flag) {
	defer e.trace("split_once", s)()
	return e.splitOnce(s, p, false, newOpConfig(opts))
}

// RSplitOnce splits s around the last occurrence of p. When p does not
// occur, lhs holds all of s and rhs is empty.
func (e *Engine) RSplitOnce(s EncryptedString, p Pattern, opts ...OpOption) (lhs, rhs EncryptedString, found Flag) {
	defer e.trace("rsplit_once", s)()
	return e.splitOnce(s, p, true, newOpConfig(opts))
}

func (e *Engine) splitOnce(s EncryptedString, p Pattern, reverse bool, cfg opConfig) (EncryptedString, EncryptedString, Flag) {
	so, po := stringOperand(s), operandOf(p)
	idx, found := e.findOf(so, po, reverse)

	whole := clearNumber(so.capacity())
	cut := e.selectNumber(found, idx, whole)
	skip := e.selectNumber(found, e.add(idx, e.lenOf(po)), whole)
	return e.prefixOf(so, cut, cfg), e.suffixOf(so, skip, cfg), found
}

func (e *Engine) lenOf(s operand) Number {
	if !s.padded {
		return clearNumber(s.capacity())
	}
	nulls := e.nullFlags(s.cells)
	trailing := clearNumber(0)
	run := clearFlag(true)
	for k := len(nulls) - 1; k >= 0; k-- {
		run = e.and(run, nulls[k])
		trailing = e.add(trailing, e.flagToNumber(run))
	}
	return e.sub(clearNumber(s.capacity()), trailing)
}

func (e *Engine) isEmptyOf(s operand) Flag {
	if !s.padded || s.capacity() == 0 {
		return clearFlag(s.capacity() == 0)
	}
	return e.isNull(s.cells[0])
}

// window holds the per-operand flags a window comparison needs.
type window struct {
	s, p  operand
	pNull []Flag // pattern null flags, set when p is padded
	sNull []Flag // haystack null flags, set when an empty match must be bounded
}

func (e *Engine) newWindow(s, p operand) *window {
	w := &window{s: s, p: p}
	if p.padded {
		w.pNull = e.nullFlags(p.cells)
	}
	if s.padded && p.mayBeEmpty() {
		w.sNull = e.nullFlags(s.cells)
	}
	return w
}

// matchAt compares the window at offset i in mask mode: pattern positions
// holding null match anything. Offsets past the true end of a padded
// haystack never match.
func (e *Engine) matchAt(w *window, i int) Flag {
	s, p := w.s, w.p
	m := clearFlag(true)
	for j := 0; j < p.capacity() && !m.isClear(false); j++ {
		var term Flag
		if i+j >= s.capacity() {
			// Only a null pattern byte can match past the capacity.
			if w.pNull == nil {
				return clearFlag(false)
			}
			term = w.pNull[j]
		} else {
			term = e.eqCell(s.cells[i+j], p.cells[j])
			if w.pNull != nil {
				term = e.or(term, w.pNull[j])
			}
		}
		m = e.and(m, term)
	}
	if w.sNull != nil && i > 0 {
		m = e.and(m, e.not(w.sNull[i-1]))
	}
	return m
}

// matches returns the match flag of every offset in [0, capacity(s)].
// Offsets that cannot match are clear false.
func (e *Engine) matches(s, p operand) []Flag {
	out := make([]Flag, s.capacity()+1)
	hi := s.capacity()
	if !p.padded {
		hi -= p.capacity()
	}
	if hi < 0 {
		return out
	}
	w := e.newWindow(s, p)
	e.parallel(hi+1, func(i int) {
		out[i] = e.matchAt(w, i)
	})
	return out
}

func (e *Engine) startsWith(s, p operand) Flag {
	if !p.padded && p.capacity() > s.capacity() {
		return clearFlag(false)
	}
	return e.matchAt(e.newWindow(s, p), 0)
}

// endMatches returns, per offset i, whether s[i:] equals p exactly: pattern
// nulls and one position past the pattern must meet haystack nulls.
func (e *Engine) endMatches(s, p operand) []Flag {
	c, pc := s.capacity(), p.capacity()
	out := make([]Flag, c+1)

	lo, hi := 0, c
	if !s.padded {
		lo = max(0, c-pc)
	}
	if !p.padded {
		hi = c - pc
	}
	if hi < lo {
		return out
	}

	e.parallel(hi-lo+1, func(k int) {
		i := lo + k
		m := clearFlag(true)
		for j := 0; j <= pc && !m.isClear(false); j++ {
			m = e.and(m, e.eqCell(s.at(i+j), p.at(j)))
		}
		out[i] = m
	})
	return out
}

// findOf folds the match flags into the first (or last) matching offset.
// The fold runs against the search direction so the wanted match is the
// last to overwrite the index.
func (e *Engine) findOf(s, p operand, reverse bool) (Number, Flag) {
	ms := e.matches(s, p)
	idx := clearNumber(0)
	if reverse {
		for i := 0; i < len(ms); i++ {
			idx = e.selectNumber(ms[i], clearNumber(i), idx)
		}
	} else {
		for i := len(ms) - 1; i >= 0; i-- {
			idx = e.selectNumber(ms[i], clearNumber(i), idx)
		}
	}
	return idx, e.foldOr(ms)
}

// prefixOf returns s[:cut].
func (e *Engine) prefixOf(s operand, cut Number, cfg opConfig) EncryptedString {
	if cut.ct == nil && !s.padded {
		return e.finish(s.cells[:min(cut.val, s.capacity())], false, cfg)
	}
	return e.finish(e.keepPrefix(s.cells, cut), true, cfg)
}

// suffixOf returns s[skip:].
func (e *Engine) suffixOf(s operand, skip Number, cfg opConfig) EncryptedString {
	if skip.ct == nil && !s.padded {
		return e.finish(s.cells[min(skip.val, s.capacity()):], false, cfg)
	}
	return e.finish(e.shiftLeft(s.cells, skip), true, cfg)
}
