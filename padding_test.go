package cipherbench

import (
	"bytes"
	"testing"
)

func TestPadLength(t *testing.T) {
	for n := 0; n <= 3*blockSize; n++ {
		in := bytes.Repeat([]byte{'x'}, n)
		out := pad(in)
		want := (n/blockSize + 1) * blockSize
		if len(out) != want {
			t.Errorf("pad(%d bytes): got %d bytes, want %d", n, len(out), want)
		}
		if len(out) <= n {
			t.Errorf("pad(%d bytes) did not grow the input", n)
		}
	}
}

func TestPadDoesNotModifyInput(t *testing.T) {
	in := []byte("catch me if you can")
	orig := append([]byte(nil), in...)
	_ = pad(in)
	if !bytes.Equal(in, orig) {
		t.Error("pad modified its input")
	}
}

func TestUnpadInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"zero pad byte", append(bytes.Repeat([]byte{1}, 15), 0)},
		{"pad longer than block", append(bytes.Repeat([]byte{1}, 15), 17)},
		{"inconsistent pad bytes", append(bytes.Repeat([]byte{1}, 13), 2, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unpad(tt.in)
			if !IsInvalidPadding(err) {
				t.Errorf("expected ErrInvalidPadding, got %v", err)
			}
		})
	}
}

func TestUnpadNotFullBlocks(t *testing.T) {
	for _, in := range [][]byte{nil, make([]byte, 15), make([]byte, 17)} {
		if _, err := unpad(in); err == nil {
			t.Errorf("unpad(%d bytes): expected error", len(in))
		}
	}
}

func FuzzPadRoundTrip(f *testing.F) {
	f.Add([]byte("catch me if you can"))
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0x10}, blockSize))

	f.Fuzz(func(t *testing.T, in []byte) {
		padded := pad(in)
		if len(padded)%blockSize != 0 || len(padded) <= len(in) || len(padded)-len(in) > blockSize {
			t.Fatalf("pad(%d bytes): bad length %d", len(in), len(padded))
		}
		out, err := unpad(padded)
		if err != nil {
			t.Fatalf("unpad: %v", err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round trip mismatch")
		}
	})
}

func FuzzUnpad(f *testing.F) {
	f.Add(pad([]byte("catch me if you can")))
	f.Add(make([]byte, blockSize))

	f.Fuzz(func(t *testing.T, in []byte) {
		out, err := unpad(in)
		if err != nil {
			return
		}
		if len(in)-len(out) < 1 || len(in)-len(out) > blockSize {
			t.Fatalf("unpad stripped %d bytes", len(in)-len(out))
		}
	})
}
