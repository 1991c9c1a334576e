package password_test

import (
	"net/http"
	"strings"
	"testing"

	"hris-account/internal/shared/apperror"
	"hris-account/internal/shared/password"

	"github.com/stretchr/testify/assert"
)

func TestHashAndMatches(t *testing.T) {
	hash, err := password.Hash("secret123")

	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, password.Matches(hash, "secret123"))
	assert.False(t, password.Matches(hash, "secret124"))
	assert.False(t, password.Matches("not-a-bcrypt-hash", "secret123"))
}

func TestHash_TooLong(t *testing.T) {
	t.Run("ascii over the limit", func(t *testing.T) {
		hash, err := password.Hash(strings.Repeat("a", password.MaxBytes+1))

		assert.Empty(t, hash)
		assert.ErrorIs(t, err, password.ErrTooLong)
		appErr, ok := apperror.As(err)
		if assert.True(t, ok) {
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		}
	})

	t.Run("multibyte runes over the byte limit", func(t *testing.T) {
		// 40 runes, 80 bytes
		_, err := password.Hash(strings.Repeat("é", 40))

		assert.ErrorIs(t, err, password.ErrTooLong)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		plain := strings.Repeat("a", password.MaxBytes)
		hash, err := password.Hash(plain)

		assert.NoError(t, err)
		assert.True(t, password.Matches(hash, plain))
	})
}
