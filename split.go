package fhestr

import "go.uber.org/zap"

// Piece is one element produced by a SplitIter. Some tells whether the
// piece exists; pieces past the true end of the split are empty with Some
// false.
type Piece struct {
	Value EncryptedString
	Some  Flag
}

type splitMode struct {
	name       string
	reverse    bool
	limited    bool
	terminator bool
	inclusive  bool // pieces keep the match that ends them
	whitespace bool // split on runs of ASCII whitespace, no pattern
}

var (
	modeSplit            = splitMode{name: "split"}
	modeRSplit           = splitMode{name: "rsplit", reverse: true}
	modeSplitN           = splitMode{name: "splitn", limited: true}
	modeRSplitN          = splitMode{name: "rsplitn", reverse: true, limited: true}
	modeSplitTerminator  = splitMode{name: "split_terminator", terminator: true}
	modeRSplitTerminator = splitMode{name: "rsplit_terminator", reverse: true, terminator: true}
	modeSplitInclusive   = splitMode{name: "split_inclusive", terminator: true, inclusive: true}
	modeSplitWhitespace  = splitMode{name: "split_ascii_whitespace", whitespace: true}
)

// SplitIter yields the pieces of a split one call at a time. The number of
// calls that return ok is a clear bound derived from capacities (and the
// count's max for the limited kinds); whether each piece exists is
// encrypted.
//
// A SplitIter is not safe for concurrent use. Clone it to consume the same
// split independently.
type SplitIter struct {
	e        *Engine
	src      EncryptedString
	mode     splitMode
	rest     operand
	pat      operand
	patLen   Number
	patEmpty Flag
	limit    Number
	live     Flag
	steps    int // pieces computed
	emitted  int // pieces returned
	bound    int

	// rsplit_terminator looks one piece ahead to drop an empty first piece.
	pending   *Piece
	skipFirst Flag
}

// Split splits s by p, left to right. An empty p splits between every byte
// and yields an empty piece at both ends.
func (e *Engine) Split(s EncryptedString, p Pattern) *SplitIter {
	return e.newSplitIter(s, p, modeSplit, Count{}, opConfig{max: -1})
}

// RSplit splits s by p, right to left.
func (e *Engine) RSplit(s EncryptedString, p Pattern) *SplitIter {
	return e.newSplitIter(s, p, modeRSplit, Count{}, opConfig{max: -1})
}

// SplitN splits s by p into at most n pieces, left to right. The last piece
// holds the unsplit remainder.
func (e *Engine) SplitN(s EncryptedString, n Count, p Pattern, opts ...OpOption) *SplitIter {
	return e.newSplitIter(s, p, modeSplitN, n, newOpConfig(opts))
}

// RSplitN splits s by p into at most n pieces, right to left.
func (e *Engine) RSplitN(s EncryptedString, n Count, p Pattern, opts ...OpOption) *SplitIter {
	return e.newSplitIter(s, p, modeRSplitN, n, newOpConfig(opts))
}

// SplitTerminator is Split without a trailing empty piece, treating p as a
// terminator rather than a separator.
func (e *Engine) SplitTerminator(s EncryptedString, p Pattern) *SplitIter {
	return e.newSplitIter(s, p, modeSplitTerminator, Count{}, opConfig{max: -1})
}

// RSplitTerminator is RSplit without the empty piece that a trailing
// terminator produces first.
func (e *Engine) RSplitTerminator(s EncryptedString, p Pattern) *SplitIter {
	return e.newSplitIter(s, p, modeRSplitTerminator, Count{}, opConfig{max: -1})
}

// SplitInclusive splits s by p, left to right, keeping each match at the
// end of the piece it terminates. No trailing empty piece is produced.
func (e *Engine) SplitInclusive(s EncryptedString, p Pattern) *SplitIter {
	return e.newSplitIter(s, p, modeSplitInclusive, Count{}, opConfig{max: -1})
}

// SplitASCIIWhitespace splits s on runs of ASCII whitespace. Leading and
// trailing whitespace produce no pieces, so every piece that exists is
// non-empty.
func (e *Engine) SplitASCIIWhitespace(s EncryptedString) *SplitIter {
	so := stringOperand(s)
	it := &SplitIter{
		e:     e,
		src:   s,
		mode:  modeSplitWhitespace,
		rest:  so,
		live:  clearFlag(true),
		bound: (so.capacity() + 1) / 2,
	}
	e.log.Debug("split iterator",
		zap.String("mode", it.mode.name),
		zap.Int("capacity", so.capacity()),
		zap.Bool("padded", so.padded),
		zap.Int("bound", it.bound),
	)
	return it
}

func (e *Engine) newSplitIter(s EncryptedString, p Pattern, mode splitMode, n Count, cfg opConfig) *SplitIter {
	so, po := stringOperand(s), operandOf(p)
	it := &SplitIter{
		e:        e,
		src:      s,
		mode:     mode,
		rest:     so,
		pat:      po,
		patLen:   e.lenOf(po),
		patEmpty: e.isEmptyOf(po),
		live:     clearFlag(true),
	}

	if po.mayBeEmpty() {
		it.bound = so.capacity() + 2
	} else {
		it.bound = so.capacity()/po.minLen() + 1
	}
	if mode.limited {
		num, bound := e.countOperand(n, cfg)
		it.limit = num
		it.bound = min(it.bound, bound)
	}

	e.log.Debug("split iterator",
		zap.String("mode", mode.name),
		zap.Int("capacity", so.capacity()),
		zap.Bool("padded", so.padded),
		zap.Int("bound", it.bound),
	)
	return it
}

// Bound returns the clear number of calls to Next that return ok.
func (it *SplitIter) Bound() int { return it.bound }

// Done reports whether the clear bound is exhausted.
func (it *SplitIter) Done() bool { return it.emitted >= it.bound }

// Next returns the next piece. ok is false once the clear bound is
// exhausted; before that, some tells whether the piece exists.
func (it *SplitIter) Next() (piece EncryptedString, some Flag, ok bool) {
	if it.emitted >= it.bound {
		return EncryptedString{}, clearFlag(false), false
	}
	defer it.e.trace(it.mode.name, it.src)()
	it.emitted++

	if !(it.mode.reverse && it.mode.terminator) {
		p := it.step()
		return p.Value, p.Some, true
	}

	e := it.e
	if it.pending == nil {
		first := it.step()
		it.skipFirst = e.and(first.Some, e.isEmptyOf(stringOperand(first.Value)))
		it.pending = &first
	}
	cur := *it.pending
	var next Piece
	if it.steps < it.bound {
		next = it.step()
	} else {
		next = Piece{
			Value: e.finish(make([]cell, it.rest.capacity()), true, opConfig{}),
			Some:  clearFlag(false),
		}
	}
	it.pending = &next

	value := e.selectCells(it.skipFirst, stringOperand(next.Value), stringOperand(cur.Value))
	return e.finish(value, true, opConfig{}), e.selectFlag(it.skipFirst, next.Some, cur.Some), true
}

// Collect drains the iterator.
func (it *SplitIter) Collect() []Piece {
	var out []Piece
	for {
		v, some, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, Piece{Value: v, Some: some})
	}
}

// Clone returns an independent copy of the iterator's state.
func (it *SplitIter) Clone() *SplitIter {
	c := *it
	if it.pending != nil {
		p := *it.pending
		c.pending = &p
	}
	return &c
}

// step computes the next raw piece: a match splits the remainder, no match
// makes the whole remainder the final piece and drops the live flag.
func (it *SplitIter) step() Piece {
	if it.mode.whitespace {
		return it.stepWhitespace()
	}
	e := it.e
	t := it.steps
	it.steps++

	r := it.rest
	idx, found := e.findOf(r, it.pat, it.mode.reverse)

	// An empty pattern matches where the previous step cut, so every later
	// step moves one byte further, and an empty remainder has no match.
	if t > 0 && !it.patEmpty.isClear(false) {
		adj := e.flagToNumber(it.patEmpty)
		if it.mode.reverse {
			idx = e.sub(idx, adj)
		} else {
			idx = e.add(idx, adj)
		}
		found = e.and(found, e.not(e.and(it.patEmpty, e.isEmptyOf(r))))
	}

	some := it.live
	if it.mode.limited {
		if it.limit.ct != nil {
			some = e.and(some, e.lt(clearNumber(t), it.limit))
		}
		// The n-th piece is the untouched remainder.
		found = e.and(found, e.not(e.eqClear(it.limit, t+1)))
	}
	if it.mode.terminator && !it.mode.reverse {
		some = e.and(some, e.not(e.and(e.not(found), e.isEmptyOf(r))))
	}

	var piece, rest []cell
	end := e.add(idx, it.patLen)
	if it.mode.reverse {
		piece = e.shiftLeft(r.cells, e.selectNumber(found, end, clearNumber(0)))
		rest = e.keepPrefix(r.cells, e.selectNumber(found, idx, clearNumber(0)))
	} else {
		whole := clearNumber(r.capacity())
		cut := idx
		if it.mode.inclusive {
			cut = end
		}
		piece = e.keepPrefix(r.cells, e.selectNumber(found, cut, whole))
		rest = e.shiftLeft(r.cells, e.selectNumber(found, end, whole))
	}

	it.rest = operand{cells: rest, padded: true}
	it.live = e.and(it.live, found)
	return Piece{Value: e.finish(piece, true, opConfig{}), Some: some}
}

// stepWhitespace drops the leading whitespace of the remainder and cuts the
// next piece at the first whitespace or null that follows. The piece exists
// iff it is non-empty.
func (it *SplitIter) stepWhitespace() Piece {
	e := it.e
	it.steps++

	r := e.trimStart(it.rest)
	ws := e.whitespaceFlags(r)
	nulls := e.nullFlags(r)
	run := clearFlag(true)
	cut := clearNumber(0)
	for k := range r {
		run = e.and(run, e.not(e.or(ws[k], nulls[k])))
		cut = e.add(cut, e.flagToNumber(run))
	}

	piece := e.keepPrefix(r, cut)
	it.rest = operand{cells: e.shiftLeft(r, cut), padded: true}
	return Piece{Value: e.finish(piece, true, opConfig{}), Some: e.not(e.eqClear(cut, 0))}
}
