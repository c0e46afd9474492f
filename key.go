package cipherbench

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/awnumar/memguard"
)

// Key is an opaque symmetric key held in guarded memory.
// The raw bytes never leave this package.
type Key struct {
	buf *memguard.LockedBuffer
}

// Size returns the key length in bytes, or 0 once the key is destroyed.
func (k *Key) Size() int {
	if k == nil || !k.buf.IsAlive() {
		return 0
	}
	return k.buf.Size()
}

// Destroy wipes the key material. Handles built from the key keep their
// already expanded key schedule; new handles fail with ErrCipherInit.
func (k *Key) Destroy() {
	if k != nil {
		k.buf.Destroy()
	}
}

func (k *Key) bytes() []byte {
	if k == nil || !k.buf.IsAlive() {
		return nil
	}
	return k.buf.Bytes()
}

// KeyHolder lazily creates a single key and returns it on every call.
// It is safe for concurrent use.
//
// Only a failing random source is reported as ErrKeyGeneration. If the
// guarded buffer cannot be allocated or locked (RLIMIT_MEMLOCK exhausted),
// memguard panics and Key does not return.
type KeyHolder struct {
	once     sync.Once
	size     int
	random   io.Reader
	material []byte
	key      *Key
	err      error // deferred validation error from options, then generation error
}

// KeyOption configures a KeyHolder.
type KeyOption func(*KeyHolder)

// WithKeySize sets the size of the generated key in bytes: 16, 24 or 32.
func WithKeySize(n int) KeyOption {
	return func(h *KeyHolder) {
		if h.err != nil {
			return
		}
		if !validKeySize(n) {
			h.err = fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, n)
			return
		}
		h.size = n
	}
}

// WithRandom sets the source of key material. Defaults to crypto/rand.Reader.
func WithRandom(r io.Reader) KeyOption {
	return func(h *KeyHolder) {
		h.random = r
	}
}

// WithKeyMaterial uses the given bytes instead of generating a key.
// The bytes are copied; the caller may zero the original after construction.
func WithKeyMaterial(b []byte) KeyOption {
	return func(h *KeyHolder) {
		if h.err != nil {
			return
		}
		if !validKeySize(len(b)) {
			h.err = fmt.Errorf("%w: key material has %d bytes", ErrInvalidKeySize, len(b))
			return
		}
		h.material = append([]byte(nil), b...)
	}
}

// NewKeyHolder creates a holder. No key material is produced until the first Key call.
func NewKeyHolder(opts ...KeyOption) *KeyHolder {
	h := &KeyHolder{
		size:   defaultKeySize,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Key returns the holder's key, generating it on the first call.
// A failure is returned on every call; generation is attempted only once.
func (h *KeyHolder) Key() (*Key, error) {
	h.once.Do(h.init)
	return h.key, h.err
}

func (h *KeyHolder) init() {
	if h.err != nil {
		return
	}

	b := h.material
	h.material = nil
	if b == nil {
		b = make([]byte, h.size)
		if _, err := io.ReadFull(h.random, b); err != nil {
			clear(b)
			h.err = fmt.Errorf("%w: %v", ErrKeyGeneration, err)
			return
		}
	}

	// NewBufferFromBytes wipes b.
	buf := memguard.NewBufferFromBytes(b)
	buf.Freeze()
	h.key = &Key{buf: buf}
}

func validKeySize(n int) bool {
	return n == 16 || n == 24 || n == 32
}

var processKeys = NewKeyHolder()

// ProcessKey returns the process-wide AES-256 key, generating it on first use.
func ProcessKey() (*Key, error) {
	return processKeys.Key()
}

// ProcessKeyHolder returns the holder behind ProcessKey.
func ProcessKeyHolder() *KeyHolder {
	return processKeys
}
