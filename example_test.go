package cipherbench_test

import (
	"fmt"

	"github.com/rbaliyan/cipherbench"
)

func ExampleNewBench() {
	b, err := cipherbench.NewBench()
	if err != nil {
		// Key generation or cipher setup failed; there is nothing to retry.
		panic(err)
	}

	w := b.NewWorker()
	defer w.Close()

	cached, err := w.Do(cipherbench.OpCached)
	if err != nil {
		panic(err)
	}
	fresh, err := w.Do(cipherbench.OpFresh)
	if err != nil {
		panic(err)
	}
	fmt.Println("Message size:", len(cipherbench.Message()))
	fmt.Println("Cached ciphertext size:", len(cached))
	fmt.Println("Fresh ciphertext size:", len(fresh))

	// Output:
	// Message size: 19
	// Cached ciphertext size: 32
	// Fresh ciphertext size: 32
}

func ExampleSlot_Acquire() {
	c := cipherbench.NewCache(nil)
	s := c.Slot()
	defer s.Release()

	h1, err := s.Acquire()
	if err != nil {
		panic(err)
	}
	h2, err := s.Acquire()
	if err != nil {
		panic(err)
	}
	fmt.Println("Same handle:", h1 == h2)
	fmt.Println("Handles built:", c.Constructions())
	fmt.Println("Transformation:", h1.Transformation())

	// Output:
	// Same handle: true
	// Handles built: 1
	// Transformation: AES/CBC/PKCS5Padding
}
