package fhestr

// Rotate re-encrypts s with fresh randomness, under the current default key
// for key-versioned secret keys. The string is validated on the way and
// keeps its capacity and padding state.
func (k *ClientKey) Rotate(s EncryptedString) (EncryptedString, error) {
	text, err := k.DecryptASCII(s)
	if err != nil {
		return EncryptedString{}, err
	}
	out, err := k.Encrypt(text, s.Cap()-len(text))
	if err != nil {
		return EncryptedString{}, err
	}
	// A padded string without trailing nulls stays padded.
	out.padded = s.padded
	return out, nil
}

// NeedsRotation reports whether any byte of s was sealed under a key other
// than the default. Malformed bytes are reported as not needing rotation;
// use ExtractKeyIDs to detect them.
func (k *SealedKey) NeedsRotation(s EncryptedString) bool {
	for _, c := range s.bytes {
		blob, ok := c.(sealed)
		if !ok {
			continue
		}
		_, keyID, _, _, err := parseFormat(blob)
		if err != nil {
			continue
		}
		if keyID != k.state.defaultID {
			return true
		}
	}
	return false
}

// ExtractKeyIDs returns the distinct key IDs the bytes of s are sealed
// under, sorted alphabetically, without decrypting.
func (k *SealedKey) ExtractKeyIDs(s EncryptedString) ([]string, error) {
	ids := make(map[string]struct{})
	for _, c := range s.bytes {
		blob, ok := c.(sealed)
		if !ok {
			return nil, ErrKindMismatch
		}
		_, keyID, _, _, err := parseFormat(blob)
		if err != nil {
			return nil, err
		}
		ids[keyID] = struct{}{}
	}
	return sortedMapKeys(ids), nil
}
