//go:build tools

package cipherbench

// OSS-Fuzz rewrites the native fuzz targets (FuzzPadRoundTrip, FuzzUnpad)
// against this package when building libFuzzer binaries.
import _ "github.com/AdamKorcz/go-118-fuzz-build/testing"
