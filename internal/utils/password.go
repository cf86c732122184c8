package utils

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest password accepted at registration.
const MinPasswordLen = 8

var ErrWeakPassword = errors.New("password must be at least 8 characters")

// CheckPassword enforces the registration policy.  bcrypt ignores input
// past 72 bytes, so longer passwords are rejected too.
func CheckPassword(plain string) error {
	if utf8.RuneCountInString(plain) < MinPasswordLen || len(plain) > 72 {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
