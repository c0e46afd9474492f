package cipherbench

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Direction selects whether a handle encrypts or decrypts.
type Direction uint8

const (
	Encrypt Direction = iota + 1
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Handle is a cipher bound to a transformation, a key and a direction.
//
// Construction pays for the transformation lookup and the AES key schedule;
// Final only runs the block chain. Every Final restarts the chain from the
// IV the handle was built with, so one encrypting handle maps equal messages
// to equal ciphertexts. That reuse is what this package measures and is not
// safe for real traffic.
//
// A Handle is not safe for concurrent use.
type Handle struct {
	t     Transformation
	dir   Direction
	block cipher.Block
	mode  cipher.BlockMode
	iv    []byte
}

// HandleOption configures handle construction.
type HandleOption func(*handleConfig)

type handleConfig struct {
	transformation string
	iv             []byte
	ivSource       io.Reader
}

func newHandleConfig(opts []HandleOption) handleConfig {
	c := handleConfig{
		transformation: DefaultTransformation,
		ivSource:       rand.Reader,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithTransformation overrides DefaultTransformation. It only has effect
// where the transformation is not passed explicitly (Cache, Pool, Bench).
func WithTransformation(s string) HandleOption {
	return func(c *handleConfig) {
		c.transformation = s
	}
}

// WithIV fixes the initialization vector. Required for decryption; for
// encryption it makes output deterministic across handles. The slice is copied.
func WithIV(iv []byte) HandleOption {
	return func(c *handleConfig) {
		c.iv = append([]byte(nil), iv...)
	}
}

// WithIVSource sets where encrypting handles without a fixed IV draw one from.
// Defaults to crypto/rand.Reader.
func WithIVSource(r io.Reader) HandleOption {
	return func(c *handleConfig) {
		c.ivSource = r
	}
}

// NewHandle looks up transformation, expands key and initializes a handle for dir.
func NewHandle(key *Key, transformation string, dir Direction, opts ...HandleOption) (*Handle, error) {
	c := newHandleConfig(opts)
	c.transformation = transformation
	return newHandle(key, dir, c)
}

func newHandle(key *Key, dir Direction, c handleConfig) (*Handle, error) {
	t, err := LookupTransformation(c.transformation)
	if err != nil {
		return nil, err
	}
	if dir != Encrypt && dir != Decrypt {
		return nil, fmt.Errorf("%w: invalid direction %v", ErrCipherInit, dir)
	}

	raw := key.bytes()
	if !validKeySize(len(raw)) {
		return nil, fmt.Errorf("%w: %w: got %d bytes", ErrCipherInit, ErrInvalidKeySize, len(raw))
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCipherInit, err)
	}

	iv := c.iv
	switch {
	case iv == nil && dir == Decrypt:
		return nil, ErrMissingIV
	case iv == nil:
		iv = make([]byte, blockSize)
		if _, err := io.ReadFull(c.ivSource, iv); err != nil {
			return nil, fmt.Errorf("%w: failed to generate IV: %v", ErrCipherInit, err)
		}
	case len(iv) != blockSize:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidIV, len(iv))
	}

	h := &Handle{
		t:     t,
		dir:   dir,
		block: block,
		iv:    iv,
	}
	h.mode = h.newMode()
	return h, nil
}

func (h *Handle) newMode() cipher.BlockMode {
	if h.dir == Decrypt {
		return cipher.NewCBCDecrypter(h.block, h.iv)
	}
	return cipher.NewCBCEncrypter(h.block, h.iv)
}

// ivSetter is implemented by the standard library CBC modes.
type ivSetter interface {
	SetIV([]byte)
}

// reset restarts the chain from the handle's IV.
func (h *Handle) reset() {
	if m, ok := h.mode.(ivSetter); ok {
		m.SetIV(h.iv)
		return
	}
	h.mode = h.newMode()
}

// Final transforms a whole message in one call and resets the chain.
// in is never modified.
func (h *Handle) Final(in []byte) ([]byte, error) {
	defer h.reset()

	if h.dir == Decrypt {
		return h.decrypt(in)
	}

	var out []byte
	if h.t.Padding == NoPadding {
		if len(in)%blockSize != 0 {
			return nil, fmt.Errorf("%w: got %d bytes", ErrNotFullBlocks, len(in))
		}
		out = append([]byte(nil), in...)
	} else {
		out = pad(in)
	}
	h.mode.CryptBlocks(out, out)
	return out, nil
}

func (h *Handle) decrypt(in []byte) ([]byte, error) {
	if len(in)%blockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrNotFullBlocks, len(in))
	}
	out := make([]byte, len(in))
	h.mode.CryptBlocks(out, in)
	if h.t.Padding == NoPadding {
		return out, nil
	}
	return unpad(out)
}

// Transformation returns the handle's parsed transformation.
func (h *Handle) Transformation() Transformation {
	return h.t
}

// Direction returns the handle's direction.
func (h *Handle) Direction() Direction {
	return h.dir
}

// IV returns a copy of the handle's initialization vector.
func (h *Handle) IV() []byte {
	return append([]byte(nil), h.iv...)
}
