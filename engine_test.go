package fhestr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// harness pairs a plain backend with its engine and client key.
type harness struct {
	t      testing.TB
	plain  *PlainBackend
	client *ClientKey
	engine *Engine
}

func newHarness(t testing.TB, opts ...Option) *harness {
	t.Helper()
	p := NewPlainBackend()
	return &harness{
		t:      t,
		plain:  p,
		client: NewClientKey(p),
		engine: New(p, append([]Option{WithWorkers(1)}, opts...)...),
	}
}

// on returns a copy of h that reports failures to t.
func (h *harness) on(t testing.TB) *harness {
	c := *h
	c.t = t
	return &c
}

func (h *harness) enc(text string, pad int) EncryptedString {
	h.t.Helper()
	s, err := h.client.Encrypt(text, pad)
	require.NoError(h.t, err)
	return s
}

func (h *harness) dec(s EncryptedString) string {
	h.t.Helper()
	v, err := h.client.DecryptASCII(s)
	require.NoError(h.t, err)
	return v
}

func (h *harness) flag(f Flag) bool {
	h.t.Helper()
	v, err := h.client.DecryptFlag(f)
	require.NoError(h.t, err)
	return v
}

func (h *harness) num(n Number) int {
	h.t.Helper()
	v, err := h.client.DecryptNumber(n)
	require.NoError(h.t, err)
	return v
}

func (h *harness) count(n, max int) Count {
	h.t.Helper()
	c, err := h.client.EncryptCount(n, max)
	require.NoError(h.t, err)
	return c
}

func (h *harness) pieces(it *SplitIter) []string {
	h.t.Helper()
	out, err := h.client.DecryptPieces(it.Collect())
	require.NoError(h.t, err)
	return out
}

func TestEngine_ExampleString(t *testing.T) {
	h := newHarness(t)
	s := h.enc("aXbXXc", 2)

	require.Equal(t, []string{"a", "b", "", "c"}, h.pieces(h.engine.Split(s, Clear("X"))))
	require.Equal(t, []string{"c", "", "b", "a"}, h.pieces(h.engine.RSplit(s, Clear("X"))))
	require.Equal(t, "a-b--c", h.dec(h.engine.Replace(s, Clear("X"), Clear("-"))))
	require.True(t, h.flag(h.engine.Contains(s, h.enc("XX", 0))))
	require.False(t, h.flag(h.engine.Contains(s, h.enc("XXX", 0))))
	require.Equal(t, 6, h.num(h.engine.Len(s)))
}

func TestEngine_TrimStartKeepsCapacity(t *testing.T) {
	h := newHarness(t)
	s := h.enc(" ab", 2)

	out := h.engine.TrimStart(s)
	require.Equal(t, 5, out.Cap())
	require.True(t, out.Padded())
	require.Equal(t, "ab", h.dec(out))
}

func TestEngine_EmptyPadded(t *testing.T) {
	h := newHarness(t)
	s := h.enc("", 3)
	require.Equal(t, 3, s.Cap())

	require.True(t, h.flag(h.engine.IsEmpty(s)))
	require.Equal(t, 0, h.num(h.engine.Len(s)))
	require.True(t, h.flag(h.engine.Contains(s, Clear(""))))
	require.False(t, h.flag(h.engine.Contains(s, Clear("a"))))
	require.Equal(t, []string{""}, h.pieces(h.engine.Split(s, Clear("x"))))
	require.Empty(t, h.pieces(h.engine.SplitTerminator(s, Clear("x"))))

	idx, found := h.engine.RFind(s, Clear(""))
	require.True(t, h.flag(found))
	require.Equal(t, 0, h.num(idx))
}

func TestEngine_RepeatEncryptedCount(t *testing.T) {
	h := newHarness(t)
	s := h.enc("ab", 0)

	out := h.engine.Repeat(s, h.count(3, 5))
	require.Equal(t, 10, out.Cap())
	require.True(t, out.Padded())
	require.Equal(t, "ababab", h.dec(out))

	out = h.engine.Repeat(s, h.count(3, 5), WithMax(4))
	require.Equal(t, 8, out.Cap())
	require.Equal(t, "ababab", h.dec(out))

	out = h.engine.Repeat(h.enc("ab", 2), h.count(2, 3))
	require.Equal(t, 12, out.Cap())
	require.Equal(t, "abab", h.dec(out))
}

func TestEngine_ClearInputsCostNothing(t *testing.T) {
	h := newHarness(t)
	s := h.enc("hello", 0)

	before := h.plain.Calls()
	require.Equal(t, 5, h.num(h.engine.Len(s)))
	require.False(t, h.flag(h.engine.IsEmpty(s)))
	require.False(t, h.flag(h.engine.StartsWith(s, Clear("hello world"))))
	require.False(t, h.flag(h.engine.Eq(s, h.enc("hell", 0))))
	require.Equal(t, before, h.plain.Calls())
}

func TestEngine_WithPadding(t *testing.T) {
	h := newHarness(t)
	s := h.enc("Hello", 0)

	out := h.engine.ToUpper(s, WithPadding(3))
	require.Equal(t, 8, out.Cap())
	require.True(t, out.Padded())
	require.Equal(t, "HELLO", h.dec(out))

	out = h.engine.ToUpper(s)
	require.Equal(t, 5, out.Cap())
	require.False(t, out.Padded())

	out, found := h.engine.StripPrefix(s, Clear("x"), WithPadding(2))
	require.False(t, h.flag(found))
	require.Equal(t, 7, out.Cap())
	require.Equal(t, "Hello", h.dec(out))
}

func TestEngine_KeyValue(t *testing.T) {
	h := newHarness(t)
	s := h.enc("key=value", 0)

	lhs, rhs, found := h.engine.SplitOnce(s, Clear("="))
	require.True(t, h.flag(found))
	require.Equal(t, "key", h.dec(lhs))
	require.Equal(t, "value", h.dec(rhs))

	out, ok := h.engine.StripPrefix(s, Clear("key"))
	require.True(t, h.flag(ok))
	require.Equal(t, "=value", h.dec(out))
}

func TestEngine_EncryptTrivial(t *testing.T) {
	h := newHarness(t)
	s, err := h.engine.EncryptTrivial("abc")
	require.NoError(t, err)
	require.Equal(t, "abc", h.dec(s))
	require.False(t, s.Padded())

	_, err = h.engine.EncryptTrivial("a\x00")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.engine.EncryptTrivial(strings.Repeat("a", maxUint+1))
	require.ErrorIs(t, err, ErrCountOverflow)
}

// requirePanicsWith runs fn and expects it to panic with an error matching
// target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "want a panic with an error value")
		require.ErrorIs(t, err, target)
	}()
	fn()
}

func TestEngine_CapacityLimit(t *testing.T) {
	h := newHarness(t)
	wide := h.enc(strings.Repeat("a", 40000), 0)

	tests := []struct {
		name string
		fn   func()
	}{
		{"repeat", func() { h.engine.Repeat(wide, ClearCount(2)) }},
		{"repeat encrypted count", func() { h.engine.Repeat(h.enc("ab", 0), h.count(1, 40000)) }},
		{"concat", func() { h.engine.Concat(wide, Clear(strings.Repeat("b", 30000))) }},
		{"replace", func() { h.engine.Replace(wide, Clear("a"), Clear("bb")) }},
		{"replacen", func() { h.engine.ReplaceN(wide, Clear("a"), Clear("bb"), ClearCount(40000)) }},
		{"padding", func() { h.engine.ToUpper(h.enc("a", 0), WithPadding(maxUint)) }},
		{"padding unchanged", func() { h.engine.Replace(h.enc("a", 0), Clear("z"), Clear("y"), WithPadding(maxUint)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requirePanicsWith(t, ErrCountOverflow, tt.fn)
		})
	}

	// The widest string still evaluates and searches correctly.
	s := h.enc(strings.Repeat("a", maxUint-1)+"X", 0)
	idx, found := h.engine.Find(s, Clear("X"))
	require.True(t, h.flag(found))
	require.Equal(t, maxUint-1, h.num(idx))
	require.Equal(t, maxUint, h.engine.Concat(h.enc("a", 0), Clear(strings.Repeat("b", maxUint-1))).Cap())
}

func TestEngine_InvalidClearPatternPanics(t *testing.T) {
	h := newHarness(t)
	s := h.enc("abc", 0)
	require.Panics(t, func() { h.engine.Contains(s, Clear("\xff")) })
}

func TestEngine_Workers(t *testing.T) {
	serial := newHarness(t)
	parallel := newHarness(t, WithWorkers(8))

	for _, h := range []*harness{serial, parallel} {
		s := h.enc("  The Quick brown fox  ", 3)
		require.Equal(t, "the quick brown fox", h.dec(h.engine.ToLower(h.engine.Trim(s))))
		require.Equal(t, "The-Quick-brown-fox", h.dec(h.engine.Replace(h.engine.Trim(s), Clear(" "), h.enc("-", 1))))
	}
	require.Equal(t, serial.plain.CallsByOp(), parallel.plain.CallsByOp())
}

func TestEngine_DebugTrace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := newHarness(t, WithLogger(zap.New(core)))

	h.engine.Contains(h.enc("abc", 1), Clear("b"))

	entries := logs.FilterMessage("string operation").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "contains", fields["op"])
	require.Equal(t, "plain", fields["backend"])
	require.Equal(t, int64(4), fields["capacity"])
	require.Equal(t, true, fields["padded"])
	require.Contains(t, fields, "primitives")
}

func TestEngine_NoTraceAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newHarness(t, WithLogger(zap.New(core)))

	h.engine.Contains(h.enc("abc", 1), Clear("b"))
	require.Zero(t, logs.Len())
}
