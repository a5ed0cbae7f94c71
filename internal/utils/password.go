package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash for storage. Only the hash is
// ever persisted; the plaintext never leaves the request path.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
