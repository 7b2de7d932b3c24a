package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetSecret returns a hex-encoded random secret for the password
// reset channel. nBytes defaults to 32 (256 bits of entropy).
func NewResetSecret(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashResetSecret digests a reset secret for storage and lookup. The
// secret carries enough entropy that a plain sha256 suffices; the
// deterministic digest is what makes the consume-time conditional
// update possible.
func HashResetSecret(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
