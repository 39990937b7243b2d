package fhestr

// Replace replaces every non-overlapping occurrence of from in s with to,
// scanning left to right. An empty from inserts to before every byte and
// at the end. The result is padded to a capacity that fits the worst case
// of the operand capacities, and panics with ErrCountOverflow when that
// capacity exceeds 65535.
func (e *Engine) Replace(s EncryptedString, from, to Pattern, opts ...OpOption) EncryptedString {
	defer e.trace("replace", s)()
	return e.replace(s, from, to, nil, 0, newOpConfig(opts))
}

// ReplaceN is Replace limited to the first n occurrences.
func (e *Engine) ReplaceN(s EncryptedString, from, to Pattern, n Count, opts ...OpOption) EncryptedString {
	defer e.trace("replacen", s)()
	cfg := newOpConfig(opts)
	limit, bound := e.countOperand(n, cfg)
	return e.replace(s, from, to, &limit, bound, cfg)
}

// replace gates each match start on the next free offset, so matches never
// overlap, and optionally on a running count below limit. Every offset
// emits a fixed slot of len(to) bytes followed by the source byte; the
// slot buffer is then compacted.
func (e *Engine) replace(s EncryptedString, from, to Pattern, limit *Number, bound int, cfg opConfig) EncryptedString {
	so, fo, tobj := stringOperand(s), operandOf(from), operandOf(to)
	c, t := so.capacity(), tobj.capacity()

	if limit != nil && limit.ct == nil && limit.val == 0 {
		return e.withPadding(s, cfg)
	}
	ms := e.matches(so, fo)
	if e.foldOr(ms).isClear(false) {
		return e.withPadding(s, cfg)
	}

	minFrom := fo.minLen()
	replacements := c + 1
	if minFrom > 0 {
		replacements = c / minFrom
	}
	if limit != nil {
		replacements = min(replacements, bound)
	}
	size := min((c+1)*t+c, c+replacements*max(0, t-minFrom))
	mustFit("replace", size+cfg.padding)

	fromLen := e.lenOf(fo)
	starts := make([]Flag, c+1)
	covered := make([]Flag, c)
	next := clearNumber(0)
	count := clearNumber(0)
	for i := 0; i <= c; i++ {
		start := e.and(ms[i], e.ltClear(next, i+1))
		if limit != nil {
			start = e.and(start, e.lt(count, *limit))
			count = e.add(count, e.flagToNumber(start))
		}
		next = e.selectNumber(start, e.addClear(fromLen, i), next)
		starts[i] = start
		if i < c {
			covered[i] = e.not(e.ltClear(next, i+1))
		}
	}

	stride := t + 1
	buf := make([]cell, (c+1)*t+c)
	e.parallel(c+1, func(i int) {
		base := i * stride
		for j := 0; j < t; j++ {
			buf[base+j] = e.selectCell(starts[i], tobj.cells[j], cell{})
		}
		if i < c {
			buf[base+t] = e.nullIf(covered[i], so.cells[i])
		}
	})

	return e.finish(e.compact(buf, size), true, cfg)
}

// Repeat returns s repeated n times. An encrypted n fills max slots, each
// gated on slot < n. The result is always padded. Repeat panics with
// ErrCountOverflow when the capacity of s times the count's bound exceeds
// 65535.
func (e *Engine) Repeat(s EncryptedString, n Count, opts ...OpOption) EncryptedString {
	defer e.trace("repeat", s)()
	cfg := newOpConfig(opts)
	so := stringOperand(s)
	c := so.capacity()
	num, bound := e.countOperand(n, cfg)
	mustFit("repeat", c*bound+cfg.padding)

	cells := make([]cell, c*bound)
	e.parallel(bound, func(r int) {
		incl := e.lt(clearNumber(r), num)
		for k := 0; k < c; k++ {
			cells[r*c+k] = e.selectCell(incl, so.cells[k], cell{})
		}
	})

	// Included slots form a prefix, so unpadded slots are already
	// canonical; padded slots leave nulls between repetitions.
	if so.padded && bound > 1 {
		cells = e.compact(cells, len(cells))
	}
	return e.finish(cells, true, cfg)
}

// Concat returns a followed by b. An unpadded a is appended to directly;
// a padded a needs its trailing nulls compacted away. Concat panics with
// ErrCountOverflow when the combined capacity exceeds 65535.
func (e *Engine) Concat(a EncryptedString, b Pattern, opts ...OpOption) EncryptedString {
	defer e.trace("concat", a)()
	cfg := newOpConfig(opts)
	ao, bo := stringOperand(a), operandOf(b)
	mustFit("concat", ao.capacity()+bo.capacity()+cfg.padding)

	cells := make([]cell, 0, ao.capacity()+bo.capacity())
	cells = append(cells, ao.cells...)
	cells = append(cells, bo.cells...)

	if !ao.padded || bo.capacity() == 0 {
		return e.finish(cells, ao.padded || bo.padded, cfg)
	}
	return e.finish(e.compact(cells, len(cells)), true, cfg)
}
