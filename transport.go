package fhestr

import (
	"fmt"

	"go.uber.org/zap"
)

// MarshalString serializes s for transport. The backend must implement
// Codec. Bodies above the compression threshold are zstd-compressed when
// that saves at least 10%.
func (e *Engine) MarshalString(s EncryptedString) ([]byte, error) {
	codec, ok := e.b.(Codec)
	if !ok {
		return nil, ErrUnsupportedBackend
	}

	blobs := make([][]byte, len(s.bytes))
	for i, c := range s.bytes {
		blob, err := codec.EncodeByte(c)
		if err != nil {
			return nil, fmt.Errorf("byte %d: %w", i, err)
		}
		blobs[i] = blob
	}

	body := formatStringBody(s.padded, blobs)
	frame, data := e.compressor().pack(body)
	e.log.Debug("marshal string",
		zap.Int("capacity", s.Cap()),
		zap.Int("body", len(body)),
		zap.Bool("compressed", frame == frameZstd),
	)
	return formatStringFrame(frame, data), nil
}

// UnmarshalString is the inverse of MarshalString. Every byte is checked by
// the backend's decoder before it is accepted.
func (e *Engine) UnmarshalString(data []byte) (EncryptedString, error) {
	codec, ok := e.b.(Codec)
	if !ok {
		return EncryptedString{}, ErrUnsupportedBackend
	}
	frame, data, err := parseStringFrame(data)
	if err != nil {
		return EncryptedString{}, err
	}
	body, err := e.compressor().unpack(frame, data)
	if err != nil {
		return EncryptedString{}, err
	}
	padded, blobs, err := parseStringBody(body)
	if err != nil {
		return EncryptedString{}, err
	}

	bytes := make([]Byte, len(blobs))
	for i, blob := range blobs {
		c, err := codec.DecodeByte(blob)
		if err != nil {
			return EncryptedString{}, fmt.Errorf("byte %d: %w", i, err)
		}
		bytes[i] = c
	}
	return EncryptedString{bytes: bytes, padded: padded}, nil
}
