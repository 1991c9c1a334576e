package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// 160 bits of entropy, hex encoded to 40 characters.
const resetTokenBytes = 20

// newResetToken returns the raw secret handed to the user and the digest that
// is persisted. Only the digest ever reaches the store.
func newResetToken() (raw, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, digestResetToken(raw), nil
}

func digestResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
