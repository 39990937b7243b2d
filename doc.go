// Package fhestr implements a string API over homomorphically encrypted ASCII
// strings.
//
// The Engine evaluates string operations on ciphertexts without ever holding
// a decryption key. Every operation is a fixed sequence of backend
// primitives: it never branches on an encrypted value, never indexes by one,
// and bounds every loop by clear sizes. Results are encrypted values, so a
// "not found" or an empty split piece is data, never an error.
//
// # Length Encodings
//
// An EncryptedString is either unpadded, where the true length equals the
// clear capacity, or padded, where trailing encrypted null bytes hide the
// true length. Padding is strictly trailing; every operation preserves this
// canonical form by construction. Unpadded operands unlock clear fast paths
// (Len of an unpadded string costs nothing), while padded outputs let the
// engine return results whose length depends on secret data.
//
// # Basic Usage
//
//	key, err := fhestr.NewSealed(
//	    fhestr.WithKey("v1", masterKey), // 32-byte key
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := fhestr.NewClientKey(key)
//	engine := fhestr.New(key.Backend())
//
//	s, _ := client.Encrypt("  Hello, World  ", 4) // 4 trailing nulls
//	trimmed := engine.Trim(s)
//	upper := engine.ToUpper(trimmed)
//	found := engine.Contains(upper, fhestr.Clear("WORLD"))
//
//	text, _ := client.DecryptASCII(upper) // "HELLO, WORLD"
//	ok, _ := client.DecryptFlag(found)    // true
//
// # Operands
//
// Operations take an EncryptedString as the subject and a Pattern for the
// other operands: another EncryptedString or a Clear string. Clear operands
// use cheaper ciphertext-to-clear comparisons. Repetition and limit
// arguments are Counts, either clear or encrypted with a clear max that
// sizes the output.
//
// # Backends
//
// PlainBackend computes on clear values and counts primitive calls; it is
// meant for tests and cost analysis. The sealed backend (NewSealed) keeps
// every value in an authenticated XSalsa20-Poly1305 box keyed by HKDF-SHA256
// derived keys, so the engine only ever handles opaque blobs. It simulates a
// homomorphic backend and is not secure against whoever holds the backend.
//
// # Key Rotation
//
// Multiple key versions are supported:
//
//	key, _ := fhestr.NewSealed(
//	    fhestr.WithKey("v1", oldKey),
//	    fhestr.WithKey("v2", newKey),
//	    fhestr.WithDefaultKeyID("v2"), // New encryptions use v2
//	)
//
//	if key.NeedsRotation(s) {
//	    s, _ = fhestr.NewClientKey(key).Rotate(s)
//	}
package fhestr
