package fhestr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeys_Deterministic(t *testing.T) {
	masterKey := []byte("01234567890123456789012345678901") // 32 bytes

	keys1, err := deriveKeys(masterKey)
	require.NoError(t, err)
	keys2, err := deriveKeys(masterKey)
	require.NoError(t, err)

	require.Equal(t, keys1.seal, keys2.seal)
}

func TestDeriveKeys_DifferentMasterKeys(t *testing.T) {
	keys1, err := deriveKeys([]byte("01234567890123456789012345678901"))
	require.NoError(t, err)
	keys2, err := deriveKeys([]byte("01234567890123456789012345678902"))
	require.NoError(t, err)

	require.NotEqual(t, keys1.seal, keys2.seal)
}

func TestDeriveKeys_NotMasterKey(t *testing.T) {
	masterKey := testKey("v1")
	keys, err := deriveKeys(masterKey)
	require.NoError(t, err)
	require.NotEqual(t, masterKey, keys.seal[:])
}

func TestDeriveKeys_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"empty", 0},
		{"too short", 16},
		{"too long", 64},
		{"31 bytes", 31},
		{"33 bytes", 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := deriveKeys(make([]byte, tt.keySize))
			require.ErrorIs(t, err, ErrInvalidKeySize)
		})
	}
}

func TestDerivedKeys_Zero(t *testing.T) {
	keys, err := deriveKeys(testKey("v1"))
	require.NoError(t, err)

	keys.zero()
	require.Equal(t, [32]byte{}, keys.seal)
}

func TestHKDFDerive_InfoSeparation(t *testing.T) {
	masterKey := testKey("v1")
	var a, b [32]byte
	require.NoError(t, hkdfDerive(masterKey, infoSeal, a[:]))
	require.NoError(t, hkdfDerive(masterKey, "other-purpose", b[:]))
	require.NotEqual(t, a, b)
}

func TestCloneBytes(t *testing.T) {
	src := testKey("v1")
	dst := cloneBytes(src)
	require.Equal(t, src, dst)

	zeroBytes(src)
	require.Equal(t, make([]byte, 32), src)
	require.Equal(t, testKey("v1"), dst)
}
