// Package hash wraps bcrypt credential hashing.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const cost = 12

// Hash returns the bcrypt hash of a password. Passwords shorter than eight
// characters are rejected before hashing.
func Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Compare returns nil when the password matches the stored hash.
func Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
