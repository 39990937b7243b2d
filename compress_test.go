package fhestr

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressor_RoundTrip(t *testing.T) {
	c := compressor{threshold: 1}

	tests := []struct {
		name string
		data []byte
	}{
		{"small text", []byte("hello world")},
		{"binary", []byte{0x00, 0x01, 0x02, 0xff, 0xfe}},
		{"large text", []byte(strings.Repeat("hello world ", 1000))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, data := c.pack(tt.data)
			got, err := c.unpack(frame, data)
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.data, got))
		})
	}
}

func TestCompressor_Pack(t *testing.T) {
	compressible := []byte(strings.Repeat("hello world ", 200)) // ~2.4KB

	tests := []struct {
		name      string
		data      []byte
		c         compressor
		wantFrame byte
	}{
		{"below threshold", []byte("small"), compressor{threshold: 1024}, frameRaw},
		{"above threshold", compressible, compressor{threshold: 1024}, frameZstd},
		{"disabled", compressible, compressor{threshold: 1024, disabled: true}, frameRaw},
		{"exact threshold", bytes.Repeat([]byte{'a'}, 1024), compressor{threshold: 1024}, frameZstd},
		{"just below threshold", bytes.Repeat([]byte{'a'}, 1023), compressor{threshold: 1024}, frameRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, data := tt.c.pack(tt.data)
			require.Equal(t, tt.wantFrame, frame)
			if frame == frameRaw {
				require.True(t, bytes.Equal(tt.data, data))
			} else {
				require.Less(t, len(data), len(tt.data))
			}
		})
	}
}

func TestCompressor_InsufficientSavings(t *testing.T) {
	data := make([]byte, 2000)
	for i := range data {
		data[i] = byte(i * 17 % 256)
	}

	frame, packed := compressor{threshold: 1024}.pack(data)
	if frame == frameRaw {
		require.True(t, bytes.Equal(data, packed))
		return
	}
	require.LessOrEqual(t, len(packed)*100, len(data)*(100-minSavingsPercent))
}

func TestCompressor_Unpack(t *testing.T) {
	original := []byte(strings.Repeat("test data for compression ", 10))
	c := compressor{threshold: 1}
	frame, compressed := c.pack(original)
	require.Equal(t, frameZstd, frame)

	tests := []struct {
		name    string
		frame   byte
		data    []byte
		want    []byte
		wantErr error
	}{
		{"raw", frameRaw, original, original, nil},
		{"zstd", frameZstd, compressed, original, nil},
		{"invalid zstd", frameZstd, []byte("not valid zstd data"), nil, ErrDecompressionFailed},
		{"unknown frame", 0xFF, original, nil, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.unpack(tt.frame, tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.want, got))
		})
	}
}

func TestCompressor_Concurrent(t *testing.T) {
	data := []byte(strings.Repeat("concurrent test data ", 100))
	c := compressor{threshold: 1}

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frame, packed := c.pack(data)
			got, err := c.unpack(frame, packed)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(data, got) {
				errs <- ErrDecompressionFailed
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent compression error: %v", err)
	}
}
