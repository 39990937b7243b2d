package fhestr

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	defaultCompressionThreshold = 1024 // 1KB

	// A compressed body is kept only when it is at most 90% of the raw one.
	minSavingsPercent = 10

	// maxDecompressedSize bounds an unpacked body (64MB) so a small frame
	// cannot expand to consume all available memory.
	maxDecompressedSize = 64 * 1024 * 1024
)

type zstdCoders struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// loadZstd builds the shared coders on first use. Both are safe for
// concurrent EncodeAll/DecodeAll, and single-threaded coders keep no
// background goroutines.
var loadZstd = sync.OnceValues(func() (*zstdCoders, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecompressedSize))
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &zstdCoders{enc: enc, dec: dec}, nil
})

// compressor chooses the frame of a string body.
type compressor struct {
	threshold int
	disabled  bool
}

func (e *Engine) compressor() compressor {
	return compressor{threshold: e.config.compressionThreshold, disabled: e.config.compressionDisabled}
}

// pack returns body compressed under frameZstd when it reaches the
// threshold and shrinks enough, and body itself under frameRaw otherwise.
// A coder failure falls back to frameRaw.
func (c compressor) pack(body []byte) (frame byte, data []byte) {
	if c.disabled || len(body) < c.threshold {
		return frameRaw, body
	}
	z, err := loadZstd()
	if err != nil {
		return frameRaw, body
	}
	packed := z.enc.EncodeAll(body, nil)
	if len(packed)*100 > len(body)*(100-minSavingsPercent) {
		return frameRaw, body
	}
	return frameZstd, packed
}

// unpack is the inverse of pack. Corrupt or oversized zstd data fails with
// ErrDecompressionFailed.
func (compressor) unpack(frame byte, data []byte) ([]byte, error) {
	switch frame {
	case frameRaw:
		return data, nil
	case frameZstd:
	default:
		return nil, ErrInvalidFormat
	}

	z, err := loadZstd()
	if err != nil {
		return nil, err
	}
	body, err := z.dec.DecodeAll(data, nil)
	if err != nil || len(body) > maxDecompressedSize {
		return nil, ErrDecompressionFailed
	}
	return body, nil
}
