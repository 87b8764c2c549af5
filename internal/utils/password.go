package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier abstracts how passwords are stored and checked, so the
// scheme can be upgraded without touching the login contract.
type PasswordVerifier interface {
	// Hash prepares a plaintext password for storage.
	Hash(password string) (string, error)
	// Verify compares a plaintext password against its stored form.
	Verify(password, stored string) bool
}

// PlainVerifier stores and compares passwords verbatim. This is the historical
// scheme and remains the default so existing credentials keep working.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlainVerifier) Verify(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptVerifier stores passwords as bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func (BcryptVerifier) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordVerifier selects a verifier by scheme name. Anything other than
// "bcrypt" falls back to the plain scheme.
func NewPasswordVerifier(scheme string) PasswordVerifier {
	if scheme == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlainVerifier{}
}
