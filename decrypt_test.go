package fhestr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientKey_Encrypt(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		text    string
		pad     int
		cap     int
		padded  bool
		wantErr error
	}{
		{"unpadded", "abc", 0, 3, false, nil},
		{"padded", "abc", 2, 5, true, nil},
		{"empty", "", 0, 0, false, nil},
		{"empty padded", "", 3, 3, true, nil},
		{"null byte", "a\x00b", 0, 0, false, ErrInvalidInput},
		{"non-ASCII", "caf\xc3\xa9", 0, 0, false, ErrInvalidInput},
		{"negative pad", "abc", -1, 0, false, ErrInvalidInput},
		{"widest capacity", "abc", maxUint - 3, maxUint, true, nil},
		{"text above 16 bits", strings.Repeat("a", 66000) + "X", 1, 0, false, ErrCountOverflow},
		{"pad above 16 bits", "abc", maxUint - 2, 0, false, ErrCountOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := h.client.Encrypt(tt.text, tt.pad)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.cap, s.Cap())
			require.Equal(t, tt.padded, s.Padded())
			require.Equal(t, tt.text, h.on(t).dec(s))
		})
	}
}

func TestClientKey_EncryptCount(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		n, max  int
		wantErr error
	}{
		{"within bound", 3, 5, nil},
		{"at bound", 5, 5, nil},
		{"zero", 0, 0, nil},
		{"above bound", 6, 5, ErrCountOverflow},
		{"max too wide", 1, maxUint + 1, ErrCountOverflow},
		{"negative", -1, 5, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := h.client.EncryptCount(tt.n, tt.max)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, c.Encrypted())
			require.Equal(t, tt.max, c.Max())
			n, err := h.client.DecryptCount(c)
			require.NoError(t, err)
			require.Equal(t, tt.n, n)
		})
	}
}

func TestClearCount(t *testing.T) {
	h := newHarness(t)
	c := ClearCount(7)
	require.False(t, c.Encrypted())
	require.Equal(t, 7, c.Max())
	n, err := h.client.DecryptCount(c)
	require.NoError(t, err)
	require.Equal(t, 7, n)
}

func TestClientKey_DecryptASCII_Validation(t *testing.T) {
	h := newHarness(t)
	bytesOf := func(raw string) []Byte {
		out := make([]Byte, len(raw))
		for i := 0; i < len(raw); i++ {
			out[i] = h.plain.EncryptByte(raw[i])
		}
		return out
	}

	tests := []struct {
		name    string
		raw     string
		padded  bool
		want    string
		wantErr error
	}{
		{"canonical padded", "ab\x00\x00", true, "ab", nil},
		{"padded without nulls", "ab", true, "ab", nil},
		{"all nulls", "\x00\x00", true, "", nil},
		{"null in unpadded", "a\x00", false, "", ErrNullInUnpadded},
		{"interior null", "a\x00b", true, "", ErrNonCanonical},
		{"leading null", "\x00ab", true, "", ErrNonCanonical},
		{"high byte", "a\x80", false, "", ErrNonASCII},
		{"high byte in padding", "a\x00\xff", true, "", ErrNonASCII},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.client.DecryptASCII(NewEncryptedString(bytesOf(tt.raw), tt.padded))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClientKey_DecryptForeignCiphertext(t *testing.T) {
	h := newHarness(t)
	key := newTestSealed(t)

	sealedString, err := NewClientKey(key).Encrypt("abc", 0)
	require.NoError(t, err)

	_, err = h.client.DecryptASCII(sealedString)
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestClientKey_DecryptOrdering(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name          string
		less, greater bool
		want          int
		wantErr       error
	}{
		{"less", true, false, -1, nil},
		{"greater", false, true, 1, nil},
		{"equal", false, false, 0, nil},
		{"both", true, true, 0, ErrNonCanonical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Ordering{
				Less:    Flag{ct: h.plain.EncryptBool(tt.less)},
				Greater: clearFlag(tt.greater),
			}
			got, err := h.client.DecryptOrdering(o)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClientKey_DecryptOptional(t *testing.T) {
	h := newHarness(t)
	s := h.enc("value", 1)

	v, ok, err := h.client.DecryptOptional(s, clearFlag(true))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value", v)

	v, ok, err = h.client.DecryptOptional(s, Flag{ct: h.plain.EncryptBool(false)})
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestFlagAndNumber_Accessors(t *testing.T) {
	h := newHarness(t)

	f := clearFlag(true)
	v, ok := f.Value()
	require.True(t, ok)
	require.True(t, v)
	require.False(t, f.Encrypted())
	require.Nil(t, f.Ciphertext())

	f = Flag{ct: h.plain.EncryptBool(true)}
	_, ok = f.Value()
	require.False(t, ok)
	require.True(t, f.Encrypted())
	require.NotNil(t, f.Ciphertext())

	n := clearNumber(4)
	i, ok := n.Value()
	require.True(t, ok)
	require.Equal(t, 4, i)

	n = Number{ct: h.plain.EncryptUint(4)}
	_, ok = n.Value()
	require.False(t, ok)
	require.True(t, n.Encrypted())
	require.Equal(t, 4, h.num(n))
}

func TestNewEncryptedString_Copies(t *testing.T) {
	h := newHarness(t)
	raw := []Byte{h.plain.EncryptByte('a'), h.plain.EncryptByte('b')}

	s := NewEncryptedString(raw, false)
	raw[0] = h.plain.EncryptByte('z')
	require.Equal(t, "ab", h.dec(s))
	require.Len(t, s.Bytes(), 2)
}
