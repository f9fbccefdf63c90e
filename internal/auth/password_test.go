package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.True(t, VerifyPassword("secret123", hash))
	require.False(t, VerifyPassword("secret124", hash))
	require.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	// A corrupt stored hash must read as a mismatch, not an error.
	require.False(t, VerifyPassword("secret123", "not-a-bcrypt-hash"))
	require.False(t, VerifyPassword("secret123", ""))
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
	require.True(t, VerifyPassword("secret123", h1))
	require.True(t, VerifyPassword("secret123", h2))
}
