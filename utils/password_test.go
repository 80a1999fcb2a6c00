package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret@123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret@123", hash)

	match, err := CheckPasswordHash("Secret@123", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPasswordHash("wrong@123", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordEmptySecret(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestCheckPasswordHashMalformedDigest(t *testing.T) {
	_, err := CheckPasswordHash("Secret@123", "not-a-bcrypt-digest")
	assert.Error(t, err)
}

func TestHashPasswordDistinctDigests(t *testing.T) {
	first, err := HashPassword("Secret@123")
	require.NoError(t, err)
	second, err := HashPassword("Secret@123")
	require.NoError(t, err)

	// bcrypt salts every digest
	assert.NotEqual(t, first, second)
}
