// Package hasher turns plaintext passwords into the digests kept in the
// local credential record and checks candidates against them.
package hasher

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm names accepted by New.
const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2id = "argon2id"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	ErrMalformedDigest  = errors.New("malformed password digest")
)

// Hasher produces and verifies password digests.
// Verify returns false, nil for a well-formed digest that does not match.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// New returns the hasher used for new digests. Verification of existing
// digests is always format-dispatched, so switching the algorithm on a
// device does not lock out the stored record.
func New(algorithm string) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmSHA256:
		return &Auto{Primary: SHA256{}}, nil
	case AlgorithmArgon2id:
		return &Auto{Primary: NewArgon2id(DefaultArgon2Params)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// Auto hashes with Primary and verifies with whichever hasher matches the
// digest's format.
type Auto struct {
	Primary Hasher
}

func (a *Auto) Hash(plaintext string) (string, error) {
	return a.Primary.Hash(plaintext)
}

func (a *Auto) Verify(plaintext, digest string) (bool, error) {
	if strings.HasPrefix(digest, "$"+AlgorithmArgon2id+"$") {
		return NewArgon2id(DefaultArgon2Params).Verify(plaintext, digest)
	}
	return SHA256{}.Verify(plaintext, digest)
}
