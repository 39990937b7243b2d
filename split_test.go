package fhestr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitIter_Bound(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name  string
		iter  func() *SplitIter
		bound int
	}{
		{"unpadded pattern", func() *SplitIter { return h.engine.Split(h.enc("abcdef", 0), Clear("xy")) }, 4},
		{"padded pattern", func() *SplitIter { return h.engine.Split(h.enc("abcdef", 0), h.enc("xy", 1)) }, 8},
		{"empty pattern", func() *SplitIter { return h.engine.RSplit(h.enc("abc", 2), Clear("")) }, 7},
		{"clear count", func() *SplitIter { return h.engine.SplitN(h.enc("a,b,c,d", 0), ClearCount(2), Clear(",")) }, 2},
		{"encrypted count", func() *SplitIter { return h.engine.SplitN(h.enc("a,b,c,d", 0), h.count(2, 3), Clear(",")) }, 3},
		{"max override", func() *SplitIter {
			return h.engine.RSplitN(h.enc("a,b,c,d", 0), h.count(2, 3), Clear(","), WithMax(2))
		}, 2},
		{"count above pieces", func() *SplitIter { return h.engine.SplitN(h.enc("a,b", 0), ClearCount(9), Clear(",")) }, 4},
		{"inclusive", func() *SplitIter { return h.engine.SplitInclusive(h.enc("a\nb", 0), Clear("\n")) }, 4},
		{"whitespace", func() *SplitIter { return h.engine.SplitASCIIWhitespace(h.enc("a b c", 2)) }, 4},
		{"whitespace empty", func() *SplitIter { return h.engine.SplitASCIIWhitespace(h.enc("", 0)) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := tt.iter()
			require.Equal(t, tt.bound, it.Bound())
			require.Len(t, it.Collect(), tt.bound)
		})
	}
}

func TestSplitIter_Next(t *testing.T) {
	h := newHarness(t)
	it := h.engine.Split(h.enc("a,b", 1), Clear(","))
	require.Equal(t, 5, it.Bound())

	want := []struct {
		value string
		some  bool
	}{
		{"a", true},
		{"b", true},
		{"", false},
		{"", false},
		{"", false},
	}
	for i, w := range want {
		require.False(t, it.Done())
		v, some, ok := it.Next()
		require.True(t, ok, "piece %d", i)
		require.Equal(t, w.some, h.flag(some), "piece %d", i)
		require.Equal(t, w.value, h.dec(v), "piece %d", i)
	}

	require.True(t, it.Done())
	_, some, ok := it.Next()
	require.False(t, ok)
	require.False(t, h.flag(some))
}

func TestSplitIter_Clone(t *testing.T) {
	h := newHarness(t)

	for _, reverse := range []bool{false, true} {
		s := h.enc("x.y.z.", 2)
		var it *SplitIter
		if reverse {
			it = h.engine.RSplitTerminator(s, Clear("."))
		} else {
			it = h.engine.SplitTerminator(s, Clear("."))
		}

		_, _, ok := it.Next()
		require.True(t, ok)
		clone := it.Clone()

		rest := h.pieces(it)
		require.Equal(t, rest, h.pieces(clone))
		if reverse {
			require.Equal(t, []string{"y", "x"}, rest)
		} else {
			require.Equal(t, []string{"y", "z"}, rest)
		}
	}
}

func TestSplitIter_Semantics(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		iter *SplitIter
		want []string
	}{
		{"split empty pattern", h.engine.Split(h.enc("ab", 0), Clear("")), []string{"", "a", "b", ""}},
		{"rsplit empty pattern", h.engine.RSplit(h.enc("ab", 1), h.enc("", 2)), []string{"", "b", "a", ""}},
		{"rsplit overlapping", h.engine.RSplit(h.enc("aaa", 0), Clear("aa")), []string{"", "a"}},
		{"split overlapping", h.engine.Split(h.enc("aaa", 0), Clear("aa")), []string{"", "a"}},
		{"splitn remainder", h.engine.SplitN(h.enc("a,b,c", 0), ClearCount(2), Clear(",")), []string{"a", "b,c"}},
		{"rsplitn remainder", h.engine.RSplitN(h.enc("a,b,c", 3), h.count(2, 4), Clear(",")), []string{"c", "a,b"}},
		{"splitn zero", h.engine.SplitN(h.enc("a,b", 0), h.count(0, 2), Clear(",")), []string{}},
		{"split_terminator", h.engine.SplitTerminator(h.enc("A.B.", 0), Clear(".")), []string{"A", "B"}},
		{"rsplit_terminator", h.engine.RSplitTerminator(h.enc("A.B.", 1), Clear(".")), []string{"B", "A"}},
		{"split_terminator keeps inner", h.engine.SplitTerminator(h.enc("A..B..", 0), Clear(".")), []string{"A", "", "B", ""}},
		{"split_inclusive", h.engine.SplitInclusive(h.enc("a\nb\n", 1), Clear("\n")), []string{"a\n", "b\n"}},
		{"split_inclusive tail", h.engine.SplitInclusive(h.enc("a,,b", 0), h.enc(",", 1)), []string{"a,", ",", "b"}},
		{"split_inclusive empty pattern", h.engine.SplitInclusive(h.enc("ab", 0), Clear("")), []string{"", "a", "b"}},
		{"split_inclusive empty subject", h.engine.SplitInclusive(h.enc("", 2), Clear(",")), []string{}},
		{"split_ascii_whitespace", h.engine.SplitASCIIWhitespace(h.enc(" a\t\tbc \n d ", 1)), []string{"a", "bc", "d"}},
		{"split_ascii_whitespace blank", h.engine.SplitASCIIWhitespace(h.enc(" \r ", 0)), []string{}},
		{"no match", h.engine.Split(h.enc("abc", 2), Clear(",")), []string{"abc"}},
		{"empty subject", h.engine.Split(h.enc("", 0), Clear(",")), []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, h.on(t).pieces(tt.iter))
		})
	}
}

func TestSplitIter_PiecesArePadded(t *testing.T) {
	h := newHarness(t)
	for _, p := range h.engine.Split(h.enc("a b", 0), Clear(" ")).Collect() {
		require.True(t, p.Value.Padded())
		require.Equal(t, 3, p.Value.Cap())
	}
}
