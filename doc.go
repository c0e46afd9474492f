// Package cipherbench measures what it costs to build an AES cipher per call
// compared with reusing one per worker.
//
// A Bench encrypts the fixed message "catch me if you can" with
// AES/CBC/PKCS5Padding under three strategies:
//
//   - OpCached: each Worker owns a Slot holding one handle, built on first use.
//   - OpFresh: every call looks up the transformation, expands the key and
//     draws an IV.
//   - OpPooled: handles are borrowed from a sync.Pool.
//
// The key comes from a KeyHolder, which generates it once into guarded
// memory (memguard) and hands back the same key on every call.
//
// This is a performance micro-benchmark, not a reference design. A cached
// handle restarts its CBC chain from the same IV on every call, so equal
// messages produce equal ciphertexts. Never reuse a handle this way to
// protect real data.
//
// Usage:
//
//	b, err := cipherbench.NewBench()
//	if err != nil {
//	    log.Fatal(err) // key or cipher setup failed; not retryable
//	}
//	w := b.NewWorker()
//	defer w.Close()
//	ct, err := w.Do(cipherbench.OpCached)
package cipherbench
