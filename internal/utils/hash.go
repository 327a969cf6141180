package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned by HashPassword when the plaintext is empty.
var ErrEmptyPassword = errors.New("empty password provided")

// HashPassword derives a salted one-way bcrypt hash from the given plaintext
// password using the library's default cost.
//
// bcrypt generates a random salt internally, so hashing the same plaintext
// twice produces different hash strings; only VerifyPassword can compare them.
//
// Returns ErrEmptyPassword for empty input; any other failure comes from the
// bcrypt library itself (e.g. plaintext longer than 72 bytes).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext password matches the stored bcrypt
// hash. The comparison is constant-time inside the bcrypt library.
//
// It never returns an error: a mismatch, an empty input, or a malformed hash
// all yield false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
