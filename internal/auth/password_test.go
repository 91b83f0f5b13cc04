package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "rahasia123", hash)

	assert.True(t, CheckPassword("rahasia123", hash))
	assert.False(t, CheckPassword("salah", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("rahasia123")
	require.NoError(t, err)
	h2, err := HashPassword("rahasia123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("rahasia123", h1))
	assert.True(t, CheckPassword("rahasia123", h2))
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("rahasia123", "not-a-bcrypt-hash"))
}
