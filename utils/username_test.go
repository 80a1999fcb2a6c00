package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usernamePattern = regexp.MustCompile(`^[a-z]{3}[0-9]{3}$`)

func neverExists(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func TestGenerateUsernameFormat(t *testing.T) {
	username, err := GenerateUsername(context.Background(), "Vignesh", "9876543210", neverExists)
	require.NoError(t, err)

	assert.Regexp(t, usernamePattern, username)
	assert.Equal(t, "vig10", username[:5])
}

func TestGenerateUsernameShortNameFallback(t *testing.T) {
	username, err := GenerateUsername(context.Background(), "Jo", "9876543210", neverExists)
	require.NoError(t, err)

	assert.Equal(t, "usr10", username[:5])
}

func TestGenerateUsernameRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, username string) (bool, error) {
		calls++
		return calls < 3, nil
	}

	username, err := GenerateUsername(context.Background(), "Vignesh", "9876543210", exists)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Regexp(t, usernamePattern, username)
}

func TestGenerateUsernameFallbackAfterExhaustion(t *testing.T) {
	exists := func(ctx context.Context, username string) (bool, error) {
		return true, nil
	}

	username, err := GenerateUsername(context.Background(), "Vignesh", "9876543210", exists)
	require.NoError(t, err)

	// Ten collisions switch to the epoch-millis suffix.
	assert.Equal(t, "vig10", username[:5])
	assert.Len(t, username, 9)
}

func TestGenerateUsernameProbeError(t *testing.T) {
	exists := func(ctx context.Context, username string) (bool, error) {
		return false, errors.New("connection lost")
	}

	_, err := GenerateUsername(context.Background(), "Vignesh", "9876543210", exists)
	assert.Error(t, err)
}

func TestGenerateUsernameMostlyUnique(t *testing.T) {
	seen := map[string]bool{}
	exists := func(ctx context.Context, username string) (bool, error) {
		return seen[username], nil
	}

	for i := 0; i < 1000; i++ {
		username, err := GenerateUsername(context.Background(), "Vignesh", "9876543210", exists)
		require.NoError(t, err)
		seen[username] = true
	}

	// Only ten candidates exist per base, so most of the thousand runs land
	// on the timestamp fallback. Every result must still be non-empty and
	// prefixed correctly.
	for username := range seen {
		assert.Equal(t, "vig10", username[:5])
	}
}
