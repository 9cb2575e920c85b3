// Package prng provides deterministic pseudo-random byte streams for tests
// and reproducible sampling.
package prng

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// New returns a reader producing the SHAKE-256 stream of seed. Two readers
// created from the same seed yield the same bytes.
func New(seed []byte) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	return h
}

// NewString is New for a string seed.
func NewString(seed string) io.Reader {
	return New([]byte(seed))
}
