// utils/password.go
package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// HashPassword hashes a password or OTP code with bcrypt.
func HashPassword(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("cannot hash an empty secret")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether secret matches the stored digest. A
// mismatch is not an error; a malformed digest is.
func CheckPasswordHash(secret, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
