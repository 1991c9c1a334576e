// Package password is the credential hashing collaborator used by the user
// record: every stored credential goes through Hash, every check through Matches.
package password

import (
	"errors"
	"net/http"

	"hris-account/internal/shared/apperror"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest secret bcrypt accepts.
const MaxBytes = 72

var ErrTooLong = apperror.New(
	apperror.CodeInvalidInput,
	"Password must be at most 72 bytes",
	http.StatusBadRequest,
)

// Hash hashes plaintext using bcrypt. Secrets over MaxBytes yield ErrTooLong.
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(hashed), nil
}

// Matches reports whether plain is the secret behind hash. A malformed hash
// counts as a mismatch.
func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
