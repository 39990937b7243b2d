package fhestr

import "fmt"

// KeyProvider supplies master keys from an external key store such as
// HashiCorp Vault or a cloud KMS.
type KeyProvider interface {
	// GetKey returns the 32-byte master key registered under keyID. The
	// caller owns the returned slice and wipes it after use.
	GetKey(keyID string) ([]byte, error)

	// DefaultKeyID returns the key ID new ciphertexts are sealed under,
	// including every ciphertext an Engine produces.
	DefaultKeyID() string

	// ActiveKeyIDs returns every key ID whose ciphertexts must still open.
	// While strings are being rotated this holds the old and new IDs.
	ActiveKeyIDs() []string
}

// NewSealedWithProvider creates a SealedKey from the active keys of a
// KeyProvider. Keys are fetched once; later changes in the provider need a
// new SealedKey.
func NewSealedWithProvider(provider KeyProvider) (*SealedKey, error) {
	ids := provider.ActiveKeyIDs()
	if len(ids) == 0 {
		return nil, ErrNoKeys
	}

	opts := make([]SealedOption, 0, len(ids)+1)
	for _, id := range ids {
		master, err := provider.GetKey(id)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", id, err)
		}
		// WithKey keeps its own copy, which NewSealed wipes.
		opts = append(opts, WithKey(id, master))
		zeroBytes(master)
	}
	return NewSealed(append(opts, WithDefaultKeyID(provider.DefaultKeyID()))...)
}

// StaticKeyProvider is an in-memory KeyProvider for tests and deployments
// without a key store.
type StaticKeyProvider struct {
	keys      map[string][]byte
	defaultID string
}

// NewStaticKeyProvider returns a provider over copies of keys.
func NewStaticKeyProvider(defaultKeyID string, keys map[string][]byte) *StaticKeyProvider {
	p := &StaticKeyProvider{
		keys:      make(map[string][]byte, len(keys)),
		defaultID: defaultKeyID,
	}
	for id, key := range keys {
		p.keys[id] = cloneBytes(key)
	}
	return p
}

// GetKey implements KeyProvider. The caller owns the returned copy.
func (p *StaticKeyProvider) GetKey(keyID string) ([]byte, error) {
	key, ok := p.keys[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return cloneBytes(key), nil
}

// DefaultKeyID implements KeyProvider.
func (p *StaticKeyProvider) DefaultKeyID() string { return p.defaultID }

// ActiveKeyIDs implements KeyProvider. IDs are sorted.
func (p *StaticKeyProvider) ActiveKeyIDs() []string { return sortedMapKeys(p.keys) }

// Close wipes the provider's keys. GetKey fails afterwards.
func (p *StaticKeyProvider) Close() {
	for _, key := range p.keys {
		zeroBytes(key)
	}
	p.keys = nil
}
