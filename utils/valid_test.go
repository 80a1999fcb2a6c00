package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Secret@123", false},
		{"too short", "S@1abcd", true},
		{"no digit", "Secret@abc", true},
		{"no letter", "12345678@", true},
		{"no special", "Secret1234", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultPasswordPolicy.Validate(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Vignesh@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "vignesh@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("two words@example.com")
	assert.Error(t, err)
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("user@example.com"))
	assert.False(t, IsEmail("9876543210"))
	assert.False(t, IsEmail("user@"))
}

func TestIsMobileNumber(t *testing.T) {
	assert.True(t, IsMobileNumber("9876543210"))
	assert.False(t, IsMobileNumber("987654321"))
	assert.False(t, IsMobileNumber("98765432100"))
	assert.False(t, IsMobileNumber("98765abcde"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Vignesh Kumar"))
	assert.False(t, IsValidName("Vignesh3161"))
	assert.False(t, IsValidName(""))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Vignesh Kumar", FormatName("  vigNESH   kuMAR "))
	assert.Equal(t, "Jo", FormatName("jo"))
	assert.Equal(t, "", FormatName("   "))
}
