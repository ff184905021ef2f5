package password

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum accepted password length
	MinLength = 8
)

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a bcrypt hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsHashed reports whether the stored form is a bcrypt hash.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// VerifyAny verifies a candidate password against a stored credential
// that may still be in a legacy form. Legacy forms are the raw
// plaintext and base64(plaintext), left behind by earlier releases.
// legacy=true means the caller must re-hash and persist the credential.
func VerifyAny(password, stored string) (ok, legacy bool) {
	if IsHashed(stored) {
		return Verify(password, stored), false
	}
	if equalConstantTime(stored, password) {
		return true, true
	}
	if decoded, err := base64.StdEncoding.DecodeString(stored); err == nil {
		if equalConstantTime(string(decoded), password) {
			return true, true
		}
	}
	return false, false
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	return len(password) >= MinLength
}

func equalConstantTime(a, b string) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
