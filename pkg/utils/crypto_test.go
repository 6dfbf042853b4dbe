package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), hash)
	assert.NotEqual(t, "p", hash)

	again, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salt should differ between hashes")
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 72))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestHashPassword_Verifies(t *testing.T) {
	hash, err := HashPassword("use-the-force")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("use-the-force")))
	assert.ErrorIs(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("use-the-farce")), bcrypt.ErrMismatchedHashAndPassword)
}
