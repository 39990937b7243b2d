package fhestr

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"sort"
	"sync/atomic"

	"golang.org/x/crypto/nacl/secretbox"
)

// sealed is the ciphertext handle type of the sealed backend.
type sealed []byte

// SealedKey encrypts primitive values into XSalsa20-Poly1305 (NaCl secretbox)
// blobs tagged with their key ID. It is the SecretKey of the sealed backend.
// It is safe for concurrent use.
type SealedKey struct {
	state *sealedState
}

// SealedBackend evaluates primitives over sealed blobs. It shares key material
// with the SealedKey that created it: each primitive opens its operands,
// computes in the clear and seals the result under a fresh nonce.
//
// This simulates a homomorphic backend so the engine can be exercised end to
// end on opaque ciphertexts. It provides no confidentiality against whoever
// holds the SealedBackend.
type SealedBackend struct {
	callStats
	state *sealedState
}

type sealedState struct {
	keys      map[string]*derivedKeys // keyID -> derived keys (cached)
	defaultID string
	closed    atomic.Bool
}

// sealedConfig holds SealedKey configuration options.
type sealedConfig struct {
	keys         map[string][]byte // keyID -> master key (32 bytes)
	defaultKeyID string
}

// sortedMapKeys returns map keys sorted alphabetically.
func sortedMapKeys[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewSealed creates a SealedKey with the given options.
// At least one key must be provided via WithKey option.
//
// Example:
//
//	key, err := fhestr.NewSealed(
//	    fhestr.WithKey("v1", masterKey1),
//	    fhestr.WithKey("v2", masterKey2),
//	    fhestr.WithDefaultKeyID("v2"),
//	)
func NewSealed(opts ...SealedOption) (*SealedKey, error) {
	cfg := &sealedConfig{keys: make(map[string][]byte)}
	for _, opt := range opts {
		opt(cfg)
	}

	// Master keys are not needed once derived.
	defer func() {
		for _, key := range cfg.keys {
			zeroBytes(key)
		}
		cfg.keys = nil
	}()

	if len(cfg.keys) == 0 {
		return nil, ErrNoKeys
	}
	if _, ok := cfg.keys[cfg.defaultKeyID]; !ok {
		return nil, ErrDefaultKeyNotFound
	}
	for keyID := range cfg.keys {
		if len(keyID) == 0 || len(keyID) > 255 {
			return nil, ErrInvalidKeyID
		}
	}

	derived := make(map[string]*derivedKeys, len(cfg.keys))
	for keyID, masterKey := range cfg.keys {
		dk, err := deriveKeys(masterKey)
		if err != nil {
			return nil, err
		}
		derived[keyID] = dk
	}

	return &SealedKey{state: &sealedState{
		keys:      derived,
		defaultID: cfg.defaultKeyID,
	}}, nil
}

// Backend returns the evaluation backend bound to this key's material.
func (k *SealedKey) Backend() *SealedBackend {
	return &SealedBackend{state: k.state}
}

// DefaultKeyID returns the current default key identifier.
func (k *SealedKey) DefaultKeyID() string {
	return k.state.defaultID
}

// ActiveKeyIDs returns all registered key identifiers, sorted alphabetically.
func (k *SealedKey) ActiveKeyIDs() []string {
	return sortedMapKeys(k.state.keys)
}

// Close zeros out all key material from memory. The key and every backend
// derived from it are unusable afterwards.
func (k *SealedKey) Close() {
	s := k.state
	s.closed.Store(true)
	for _, dk := range s.keys {
		dk.zero()
	}
	s.keys = nil
}

// EncryptBool implements SecretKey.
func (k *SealedKey) EncryptBool(v bool) Bool {
	return k.state.mustSeal(kindBool, boolPayload(v))
}

// EncryptByte implements SecretKey.
func (k *SealedKey) EncryptByte(v byte) Byte {
	return k.state.mustSeal(kindByte, []byte{v})
}

// EncryptUint implements SecretKey.
func (k *SealedKey) EncryptUint(v uint16) Uint {
	return k.state.mustSeal(kindUint, uintPayload(v))
}

// DecryptBool implements SecretKey.
func (k *SealedKey) DecryptBool(c Bool) (bool, error) {
	p, err := k.state.open(kindBool, c)
	if err != nil {
		return false, err
	}
	return p[0] == 1, nil
}

// DecryptByte implements SecretKey.
func (k *SealedKey) DecryptByte(c Byte) (byte, error) {
	p, err := k.state.open(kindByte, c)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// DecryptUint implements SecretKey.
func (k *SealedKey) DecryptUint(c Uint) (uint16, error) {
	p, err := k.state.open(kindUint, c)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func boolPayload(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func uintPayload(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func payloadSize(kind byte) int {
	if kind == kindUint {
		return 2
	}
	return 1
}

// mustSeal encrypts a payload under the default key.
func (s *sealedState) mustSeal(kind byte, payload []byte) sealed {
	if s.closed.Load() {
		panic(ErrKeyClosed.Error())
	}
	keys := s.keys[s.defaultID]
	inner := formatInnerPlaintext(kind, s.defaultID, payload)
	nonce := generateNonce()
	encrypted := secretbox.Seal(nil, inner, &nonce, &keys.seal)
	return formatCiphertext(kind, s.defaultID, nonce, encrypted)
}

// open authenticates a ciphertext of the expected kind and returns its payload.
func (s *sealedState) open(kind byte, c any) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrKeyClosed
	}
	blob, ok := c.(sealed)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a sealed ciphertext", ErrKindMismatch, c)
	}

	outerKind, outerKeyID, nonce, encrypted, err := parseFormat(blob)
	if err != nil {
		return nil, err
	}
	if outerKind != kind {
		return nil, ErrKindMismatch
	}
	keys, ok := s.keys[outerKeyID]
	if !ok {
		return nil, ErrKeyNotFound
	}

	decrypted, ok := secretbox.Open(nil, encrypted, &nonce, &keys.seal)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	innerKind, innerKeyID, payload, err := parseInnerPlaintext(decrypted)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(innerKeyID), []byte(outerKeyID)) != 1 {
		return nil, ErrKeyIDMismatch
	}
	if innerKind != kind || len(payload) != payloadSize(kind) {
		return nil, ErrKindMismatch
	}
	return payload, nil
}

// mustOpen is open for evaluation, where ciphertexts have already been
// authenticated on entry and a failure means misuse.
func (s *sealedState) mustOpen(kind byte, c any) []byte {
	p, err := s.open(kind, c)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// generateNonce generates a cryptographically secure random 24-byte nonce.
// Panics if the system's random source fails (unrecoverable).
func generateNonce() [24]byte {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return nonce
}

func (b *SealedBackend) bit(c Bool) bool {
	return b.state.mustOpen(kindBool, c)[0] == 1
}

func (b *SealedBackend) byteOf(c Byte) byte {
	return b.state.mustOpen(kindByte, c)[0]
}

func (b *SealedBackend) uintOf(c Uint) uint16 {
	return binary.BigEndian.Uint16(b.state.mustOpen(kindUint, c))
}

func (b *SealedBackend) sealBool(v bool) Bool { return b.state.mustSeal(kindBool, boolPayload(v)) }
func (b *SealedBackend) sealByte(v byte) Byte { return b.state.mustSeal(kindByte, []byte{v}) }
func (b *SealedBackend) sealUint(v uint16) Uint {
	return b.state.mustSeal(kindUint, uintPayload(v))
}

// Name implements Backend.
func (b *SealedBackend) Name() string { return "sealed" }

// TrivialBool implements Backend.
func (b *SealedBackend) TrivialBool(v bool) Bool {
	b.inc(opTrivial)
	return b.sealBool(v)
}

// TrivialByte implements Backend.
func (b *SealedBackend) TrivialByte(v byte) Byte {
	b.inc(opTrivial)
	return b.sealByte(v)
}

// TrivialUint implements Backend.
func (b *SealedBackend) TrivialUint(v uint16) Uint {
	b.inc(opTrivial)
	return b.sealUint(v)
}

// Not implements Backend.
func (b *SealedBackend) Not(a Bool) Bool {
	b.inc(opNot)
	return b.sealBool(!b.bit(a))
}

// And implements Backend.
func (b *SealedBackend) And(x, y Bool) Bool {
	b.inc(opAnd)
	return b.sealBool(b.bit(x) && b.bit(y))
}

// Or implements Backend.
func (b *SealedBackend) Or(x, y Bool) Bool {
	b.inc(opOr)
	return b.sealBool(b.bit(x) || b.bit(y))
}

// SelectBool implements Backend.
func (b *SealedBackend) SelectBool(c, x, y Bool) Bool {
	b.inc(opSelectBool)
	if b.bit(c) {
		return b.sealBool(b.bit(x))
	}
	return b.sealBool(b.bit(y))
}

// EqByte implements Backend.
func (b *SealedBackend) EqByte(x, y Byte) Bool {
	b.inc(opEqByte)
	return b.sealBool(b.byteOf(x) == b.byteOf(y))
}

// EqByteClear implements Backend.
func (b *SealedBackend) EqByteClear(x Byte, v byte) Bool {
	b.inc(opEqByteClear)
	return b.sealBool(b.byteOf(x) == v)
}

// LtByte implements Backend.
func (b *SealedBackend) LtByte(x, y Byte) Bool {
	b.inc(opLtByte)
	return b.sealBool(b.byteOf(x) < b.byteOf(y))
}

// LtByteClear implements Backend.
func (b *SealedBackend) LtByteClear(x Byte, v byte) Bool {
	b.inc(opLtByteClear)
	return b.sealBool(b.byteOf(x) < v)
}

// GtByteClear implements Backend.
func (b *SealedBackend) GtByteClear(x Byte, v byte) Bool {
	b.inc(opGtByteClear)
	return b.sealBool(b.byteOf(x) > v)
}

// AddByteClear implements Backend.
func (b *SealedBackend) AddByteClear(x Byte, v byte) Byte {
	b.inc(opAddByteClear)
	return b.sealByte(b.byteOf(x) + v)
}

// SelectByte implements Backend.
func (b *SealedBackend) SelectByte(c Bool, x, y Byte) Byte {
	b.inc(opSelectByte)
	if b.bit(c) {
		return b.sealByte(b.byteOf(x))
	}
	return b.sealByte(b.byteOf(y))
}

// BoolToUint implements Backend.
func (b *SealedBackend) BoolToUint(c Bool) Uint {
	b.inc(opBoolToUint)
	if b.bit(c) {
		return b.sealUint(1)
	}
	return b.sealUint(0)
}

// AddUint implements Backend.
func (b *SealedBackend) AddUint(x, y Uint) Uint {
	b.inc(opAddUint)
	return b.sealUint(b.uintOf(x) + b.uintOf(y))
}

// AddUintClear implements Backend.
func (b *SealedBackend) AddUintClear(x Uint, v uint16) Uint {
	b.inc(opAddUintClear)
	return b.sealUint(b.uintOf(x) + v)
}

// SubUint implements Backend.
func (b *SealedBackend) SubUint(x, y Uint) Uint {
	b.inc(opSubUint)
	return b.sealUint(b.uintOf(x) - b.uintOf(y))
}

// EqUintClear implements Backend.
func (b *SealedBackend) EqUintClear(x Uint, v uint16) Bool {
	b.inc(opEqUintClear)
	return b.sealBool(b.uintOf(x) == v)
}

// LtUint implements Backend.
func (b *SealedBackend) LtUint(x, y Uint) Bool {
	b.inc(opLtUint)
	return b.sealBool(b.uintOf(x) < b.uintOf(y))
}

// LtUintClear implements Backend.
func (b *SealedBackend) LtUintClear(x Uint, v uint16) Bool {
	b.inc(opLtUintClear)
	return b.sealBool(b.uintOf(x) < v)
}

// SelectUint implements Backend.
func (b *SealedBackend) SelectUint(c Bool, x, y Uint) Uint {
	b.inc(opSelectUint)
	if b.bit(c) {
		return b.sealUint(b.uintOf(x))
	}
	return b.sealUint(b.uintOf(y))
}

// EncodeByte implements Codec.
func (b *SealedBackend) EncodeByte(c Byte) ([]byte, error) {
	blob, ok := c.(sealed)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a sealed ciphertext", ErrKindMismatch, c)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// DecodeByte implements Codec. The blob is authenticated before it is
// accepted, so evaluation never sees a forged ciphertext.
func (b *SealedBackend) DecodeByte(data []byte) (Byte, error) {
	blob := make(sealed, len(data))
	copy(blob, data)
	if _, err := b.state.open(kindByte, blob); err != nil {
		return nil, err
	}
	return blob, nil
}
