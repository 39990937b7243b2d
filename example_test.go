package fhestr_test

import (
	"fmt"

	"github.com/ai8future/fhestr"
)

func Example() {
	// Create a 32-byte master key (in production, load from secure storage)
	masterKey := []byte("01234567890123456789012345678901")

	key, err := fhestr.NewSealed(fhestr.WithKey("v1", masterKey))
	if err != nil {
		panic(err)
	}
	defer key.Close()

	client := fhestr.NewClientKey(key)
	engine := fhestr.New(key.Backend())

	// Two trailing nulls hide the exact length from the evaluator.
	s, err := client.Encrypt("aXbXXc", 2)
	if err != nil {
		panic(err)
	}

	out := engine.Replace(s, fhestr.Clear("X"), fhestr.Clear("-"))
	text, err := client.DecryptASCII(out)
	if err != nil {
		panic(err)
	}

	fmt.Println(text)
	// Output: a-b--c
}

func Example_split() {
	backend := fhestr.NewPlainBackend()
	client := fhestr.NewClientKey(backend)
	engine := fhestr.New(backend)

	s, _ := client.Encrypt("a,b,,c", 0)
	it := engine.Split(s, fhestr.Clear(","))

	pieces, err := client.DecryptPieces(it.Collect())
	if err != nil {
		panic(err)
	}

	fmt.Println("Bound:", it.Bound())
	fmt.Printf("Pieces: %q\n", pieces)

	// Output:
	// Bound: 7
	// Pieces: ["a" "b" "" "c"]
}

func Example_encryptedCount() {
	backend := fhestr.NewPlainBackend()
	client := fhestr.NewClientKey(backend)
	engine := fhestr.New(backend)

	s, _ := client.Encrypt("ab", 0)

	// The count is secret; 3 bounds the output capacity.
	n, _ := client.EncryptCount(2, 3)
	out := engine.Repeat(s, n)

	text, _ := client.DecryptASCII(out)
	fmt.Println(text, out.Cap())

	// Output: abab 6
}

func Example_keyRotation() {
	oldKey := []byte("old-key-must-be-32-bytes-long!!!")
	newKey := []byte("new-key-must-be-32-bytes-long!!!")

	before, _ := fhestr.NewSealed(
		fhestr.WithKey("v1", oldKey),
		fhestr.WithKey("v2", newKey),
	)
	after, _ := fhestr.NewSealed(
		fhestr.WithKey("v1", oldKey),
		fhestr.WithKey("v2", newKey),
		fhestr.WithDefaultKeyID("v2"),
	)

	s, _ := fhestr.NewClientKey(before).Encrypt("secret", 0)
	fmt.Println("Needs rotation:", after.NeedsRotation(s))

	rotated, _ := fhestr.NewClientKey(after).Rotate(s)
	ids, _ := after.ExtractKeyIDs(rotated)
	fmt.Println("Key IDs:", ids)

	// Output:
	// Needs rotation: true
	// Key IDs: [v2]
}
