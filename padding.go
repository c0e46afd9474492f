package cipherbench

import (
	"crypto/subtle"
	"fmt"
)

// pad appends PKCS#7 padding to in, returning a new slice of length
// CiphertextSize(len(in)). The input is not modified.
func pad(in []byte) []byte {
	n := blockSize - len(in)%blockSize
	out := make([]byte, len(in)+n)
	copy(out, in)
	for i := len(in); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// unpad strips PKCS#7 padding, returning a subslice of in.
// The padding bytes are compared in constant time.
func unpad(in []byte) ([]byte, error) {
	if len(in) == 0 || len(in)%blockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrNotFullBlocks, len(in))
	}
	n := int(in[len(in)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad length %d", ErrInvalidPadding, n)
	}
	want := make([]byte, n)
	for i := range want {
		want[i] = byte(n)
	}
	if subtle.ConstantTimeCompare(in[len(in)-n:], want) != 1 {
		return nil, ErrInvalidPadding
	}
	return in[:len(in)-n], nil
}
