package fhestr

import (
	"fmt"
	"strings"
)

// DecryptASCII decrypts s and validates its canonical form. It fails if an
// unpadded string holds a null, if a padded string has content after a
// null, or if any byte lies outside 0x00..0x7F. Trailing nulls are
// stripped from the result.
func (k *ClientKey) DecryptASCII(s EncryptedString) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s.bytes))

	seenNull := false
	for i, c := range s.bytes {
		b, err := k.sk.DecryptByte(c)
		if err != nil {
			return "", fmt.Errorf("byte %d: %w", i, err)
		}
		if b > 0x7F {
			return "", fmt.Errorf("%w: 0x%02x at position %d", ErrNonASCII, b, i)
		}
		if b == 0 {
			if !s.padded {
				return "", fmt.Errorf("%w: position %d of %d", ErrNullInUnpadded, i, len(s.bytes))
			}
			seenNull = true
			continue
		}
		if seenNull {
			return "", fmt.Errorf("%w: 0x%02x at position %d", ErrNonCanonical, b, i)
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// DecryptFlag returns the value of f.
func (k *ClientKey) DecryptFlag(f Flag) (bool, error) {
	if f.ct == nil {
		return f.val, nil
	}
	return k.sk.DecryptBool(f.ct)
}

// DecryptNumber returns the value of n.
func (k *ClientKey) DecryptNumber(n Number) (int, error) {
	if n.ct == nil {
		return n.val, nil
	}
	v, err := k.sk.DecryptUint(n.ct)
	return int(v), err
}

// DecryptCount returns the value of n.
func (k *ClientKey) DecryptCount(n Count) (int, error) {
	if n.ct == nil {
		return n.n, nil
	}
	v, err := k.sk.DecryptUint(n.ct)
	return int(v), err
}

// DecryptOrdering returns -1, 0 or +1 as a is less than, equal to or greater
// than b.
func (k *ClientKey) DecryptOrdering(o Ordering) (int, error) {
	less, err := k.DecryptFlag(o.Less)
	if err != nil {
		return 0, err
	}
	greater, err := k.DecryptFlag(o.Greater)
	if err != nil {
		return 0, err
	}
	switch {
	case less && greater:
		return 0, fmt.Errorf("%w: ordering is both less and greater", ErrNonCanonical)
	case less:
		return -1, nil
	case greater:
		return 1, nil
	}
	return 0, nil
}

// DecryptOptional returns the value of a string guarded by a flag, with ok
// false when the flag is unset.
func (k *ClientKey) DecryptOptional(s EncryptedString, f Flag) (v string, ok bool, err error) {
	ok, err = k.DecryptFlag(f)
	if err != nil || !ok {
		return "", false, err
	}
	v, err = k.DecryptASCII(s)
	return v, err == nil, err
}

// DecryptPieces decrypts the existing pieces of a split in order. Every
// piece is validated, including those that do not exist.
func (k *ClientKey) DecryptPieces(pieces []Piece) ([]string, error) {
	out := make([]string, 0, len(pieces))
	for i, p := range pieces {
		v, err := k.DecryptASCII(p.Value)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		some, err := k.DecryptFlag(p.Some)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		if some {
			out = append(out, v)
		}
	}
	return out, nil
}
