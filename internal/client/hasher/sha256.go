package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256 is the unsalted lowercase-hex SHA-256 digest. It is the default for
// compatibility with records written by earlier clients.
type SHA256 struct{}

func (SHA256) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256) Verify(plaintext, digest string) (bool, error) {
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) != sha256.Size {
		return false, ErrMalformedDigest
	}
	sum := sha256.Sum256([]byte(plaintext))
	return subtle.ConstantTimeCompare(sum[:], want) == 1, nil
}
