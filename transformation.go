package cipherbench

import (
	"crypto/aes"
	"fmt"
	"strings"
)

// Transformation constants.
const (
	// DefaultTransformation is the transformation every operation uses unless overridden.
	DefaultTransformation = "AES/CBC/PKCS5Padding"

	// blockSize is the AES block size in bytes.
	blockSize = aes.BlockSize

	// defaultKeySize is the key size generated by a KeyHolder (AES-256).
	defaultKeySize = 32
)

// Padding identifies how a handle fills the final block.
type Padding uint8

const (
	// PKCS5 pads with N bytes of value N, 1 <= N <= block size.
	PKCS5 Padding = iota + 1
	// NoPadding requires whole-block input.
	NoPadding
)

// String returns the canonical padding name.
func (p Padding) String() string {
	switch p {
	case PKCS5:
		return "PKCS5Padding"
	case NoPadding:
		return "NoPadding"
	default:
		return fmt.Sprintf("Padding(%d)", uint8(p))
	}
}

// Transformation is a parsed algorithm/mode/padding triple.
type Transformation struct {
	Algorithm string
	Mode      string
	Padding   Padding
}

// String returns the canonical "ALG/MODE/PADDING" form.
func (t Transformation) String() string {
	return t.Algorithm + "/" + t.Mode + "/" + t.Padding.String()
}

// paddings maps accepted padding names to their scheme. PKCS7Padding is an
// alias: with a 16-byte block the two schemes are the same.
var paddings = map[string]Padding{
	"PKCS5PADDING": PKCS5,
	"PKCS7PADDING": PKCS5,
	"NOPADDING":    NoPadding,
}

// LookupTransformation parses s and checks it against the supported table.
// Names are matched case-insensitively. A bare algorithm ("AES") selects CBC
// with PKCS5 padding.
func LookupTransformation(s string) (Transformation, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	switch len(parts) {
	case 1:
		parts = append(parts, "CBC", "PKCS5Padding")
	case 3:
	default:
		return Transformation{}, fmt.Errorf("%w: %q", ErrUnknownTransformation, s)
	}

	alg := strings.ToUpper(parts[0])
	if alg != "AES" {
		return Transformation{}, fmt.Errorf("%w: unsupported algorithm %q", ErrUnknownTransformation, parts[0])
	}
	mode := strings.ToUpper(parts[1])
	if mode != "CBC" {
		return Transformation{}, fmt.Errorf("%w: unsupported mode %q", ErrUnknownTransformation, parts[1])
	}
	padding, ok := paddings[strings.ToUpper(parts[2])]
	if !ok {
		return Transformation{}, fmt.Errorf("%w: unsupported padding %q", ErrUnknownTransformation, parts[2])
	}

	return Transformation{Algorithm: alg, Mode: mode, Padding: padding}, nil
}

// CiphertextSize returns the ciphertext length for a plaintext of n bytes.
// With padding this is the next multiple of the block size strictly greater
// than n; without padding n itself.
func (t Transformation) CiphertextSize(n int) int {
	if t.Padding == NoPadding {
		return n
	}
	return (n/blockSize + 1) * blockSize
}
