package cipherbench

import "errors"

var (
	// ErrKeyGeneration is returned when the random source cannot produce key material.
	// It is fatal: the key holder reports it once and never retries.
	ErrKeyGeneration = errors.New("cipherbench: key generation failed")

	// ErrInvalidKeySize is returned when a key is not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("cipherbench: invalid key size, must be 16, 24 or 32 bytes")

	// ErrUnknownTransformation is returned when a transformation string does not
	// name a supported algorithm/mode/padding triple.
	ErrUnknownTransformation = errors.New("cipherbench: unknown transformation")

	// ErrCipherInit is returned when a cipher handle cannot be constructed.
	ErrCipherInit = errors.New("cipherbench: cipher initialization failed")

	// ErrMissingIV is returned when a decrypting handle is built without an IV.
	ErrMissingIV = errors.New("cipherbench: missing IV")

	// ErrInvalidIV is returned when an IV is not exactly one block long.
	ErrInvalidIV = errors.New("cipherbench: invalid IV size")

	// ErrNotFullBlocks is returned when input to an unpadded or decrypting
	// handle is not a multiple of the block size.
	ErrNotFullBlocks = errors.New("cipherbench: input not full blocks")

	// ErrInvalidPadding is returned when decrypted data carries malformed padding.
	ErrInvalidPadding = errors.New("cipherbench: invalid padding")

	// ErrUnknownOperation is returned when a worker is asked to run an operation it does not know.
	ErrUnknownOperation = errors.New("cipherbench: unknown operation")
)

// IsKeyGeneration returns true if the error is or wraps ErrKeyGeneration.
func IsKeyGeneration(err error) bool {
	return errors.Is(err, ErrKeyGeneration)
}

// IsInvalidKeySize returns true if the error is or wraps ErrInvalidKeySize.
func IsInvalidKeySize(err error) bool {
	return errors.Is(err, ErrInvalidKeySize)
}

// IsUnknownTransformation returns true if the error is or wraps ErrUnknownTransformation.
func IsUnknownTransformation(err error) bool {
	return errors.Is(err, ErrUnknownTransformation)
}

// IsInvalidPadding returns true if the error is or wraps ErrInvalidPadding.
func IsInvalidPadding(err error) bool {
	return errors.Is(err, ErrInvalidPadding)
}

// IsFatal reports whether err is a setup failure that must abort a run.
// Setup failures stem from the environment (no entropy, unsupported
// transformation, bad key) and are never retried.
func IsFatal(err error) bool {
	return errors.Is(err, ErrKeyGeneration) ||
		errors.Is(err, ErrInvalidKeySize) ||
		errors.Is(err, ErrUnknownTransformation) ||
		errors.Is(err, ErrCipherInit)
}
