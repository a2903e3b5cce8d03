// Package hashing wraps bcrypt behind the two operations the rest of the
// system is allowed to perform on passwords: one-way hashing at registration
// and verification at login.
package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns a salted bcrypt hash of rawPassword. Hashing the same password
// twice yields different strings; equality is only meaningful through Verify.
func Hash(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether rawPassword matches hashedPassword. A well-formed
// hash that simply does not match returns (false, nil); an error is returned
// only when hashedPassword is not a structurally valid bcrypt hash.
func Verify(rawPassword, hashedPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(rawPassword))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}
