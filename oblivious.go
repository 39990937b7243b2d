package fhestr

// Data movement without secret addressing. A secret offset cannot index a
// slice, so every destination slot scans all sources that could land there
// and keeps the one whose position matches.

// shiftLeft moves src left by sh positions, filling the tail with nulls.
func (e *Engine) shiftLeft(src []cell, sh Number) []cell {
	n := len(src)
	out := make([]cell, n)
	if sh.ct == nil {
		for d := 0; d+sh.val < n; d++ {
			out[d] = src[d+sh.val]
		}
		return out
	}

	hit := make([]Flag, n)
	e.parallel(n, func(k int) {
		hit[k] = e.eqClear(sh, k)
	})
	e.parallel(n, func(d int) {
		var acc cell
		for k := 0; d+k < n; k++ {
			acc = e.selectCell(hit[k], src[d+k], acc)
		}
		out[d] = acc
	})
	return out
}

// keepPrefix nulls every position at or after cut.
func (e *Engine) keepPrefix(src []cell, cut Number) []cell {
	out := make([]cell, len(src))
	e.parallel(len(src), func(k int) {
		out[k] = e.nullIf(e.ltClear(cut, k+1), src[k])
	})
	return out
}

// compact moves the non-null cells of src to the front, preserving order,
// and returns the first size positions.
func (e *Engine) compact(src []cell, size int) []cell {
	n := len(src)
	keep := make([]Flag, n)
	e.parallel(n, func(k int) {
		keep[k] = e.not(e.isNull(src[k]))
	})

	// counts[k] is the number of kept cells in src[:k+1].
	counts := make([]Number, n)
	total := clearNumber(0)
	for k := 0; k < n; k++ {
		total = e.add(total, e.flagToNumber(keep[k]))
		counts[k] = total
	}

	// For destination d the first source with counts[k] == d+1 is the kept
	// cell; scanning downwards lets it overwrite the nulls after it.
	out := make([]cell, size)
	e.parallel(size, func(d int) {
		var acc cell
		for k := n - 1; k >= d; k-- {
			acc = e.selectCell(e.eqClear(counts[k], d+1), src[k], acc)
		}
		out[d] = acc
	})
	return out
}

// selectCells picks x or y position by position. The shorter side is
// extended with nulls.
func (e *Engine) selectCells(c Flag, x, y operand) []cell {
	if c.ct == nil {
		if c.val {
			return x.cells
		}
		return y.cells
	}
	n := max(x.capacity(), y.capacity())
	out := make([]cell, n)
	e.parallel(n, func(k int) {
		out[k] = e.selectCell(c, x.at(k), y.at(k))
	})
	return out
}

// foldAnd ANDs the flags in order.
func (e *Engine) foldAnd(flags []Flag) Flag {
	acc := clearFlag(true)
	for _, f := range flags {
		acc = e.and(acc, f)
	}
	return acc
}

// foldOr ORs the flags in order.
func (e *Engine) foldOr(flags []Flag) Flag {
	acc := clearFlag(false)
	for _, f := range flags {
		acc = e.or(acc, f)
	}
	return acc
}

// nullFlags reports, for every cell, whether it is null.
func (e *Engine) nullFlags(cells []cell) []Flag {
	out := make([]Flag, len(cells))
	e.parallel(len(cells), func(k int) {
		out[k] = e.isNull(cells[k])
	})
	return out
}
