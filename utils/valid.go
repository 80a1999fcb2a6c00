// utils/valid.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
	nameRegex   = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// PasswordPolicy describes the strength requirements enforced on signup and
// password changes.
type PasswordPolicy struct {
	MinLength      int
	RequireLetter  bool
	RequireDigit   bool
	RequireSpecial bool
}

// DefaultPasswordPolicy matches the published account requirements.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:      8,
	RequireLetter:  true,
	RequireDigit:   true,
	RequireSpecial: true,
}

// Validate checks a password against the policy.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if p.RequireLetter && !hasLetter {
		return errors.New("password must contain at least one letter")
	}
	if p.RequireDigit && !hasDigit {
		return errors.New("password must contain at least one number")
	}
	if p.RequireSpecial && !hasSpecial {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

// SanitizeEmail lowercases, trims and validates an email address.
func SanitizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", errors.New("invalid email format")
	}
	return email, nil
}

// IsEmail reports whether the identifier looks like an email address.
func IsEmail(identifier string) bool {
	return emailRegex.MatchString(identifier)
}

// IsMobileNumber reports whether the identifier is exactly ten digits.
func IsMobileNumber(identifier string) bool {
	return mobileRegex.MatchString(identifier)
}

// IsValidName reports whether a name contains only letters and spaces.
func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// FormatName normalizes a name to title case, collapsing repeated spaces.
func FormatName(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
